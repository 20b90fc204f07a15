package model

import "gorm.io/gorm"

// Section is a named roster of roll numbers. Rolls behave as a set:
// adding an existing roll is a no-op.
type Section struct {
	gorm.Model
	Name  string   `json:"name" gorm:"unique;not null"`
	Rolls []string `json:"rolls" gorm:"serializer:json"`
}

func (s *Section) HasRoll(roll string) bool {
	for _, r := range s.Rolls {
		if r == roll {
			return true
		}
	}
	return false
}
