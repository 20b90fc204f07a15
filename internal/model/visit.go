package model

import (
	"time"

	"gorm.io/gorm"
)

// Visit is one clinic check-in. A nil ExitTime means the student is still
// in the clinic ("active"). A student may have many visits over time.
type Visit struct {
	gorm.Model
	Name      string     `json:"name" gorm:"not null"`
	StudentID string     `json:"id" gorm:"column:student_id;index;not null"`
	Symptoms  string     `json:"symptoms"`
	EntryTime time.Time  `json:"entryTime"`
	ExitTime  *time.Time `json:"exitTime"`
	LoggedBy  string     `json:"loggedBy"`
}

func (v *Visit) Active() bool {
	return v.ExitTime == nil
}
