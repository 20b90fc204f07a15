package repository

import (
	"campus-clinic-backend/internal/model"

	"gorm.io/gorm"
)

type SectionRepository interface {
	Create(section *model.Section) error
	GetByName(name string) (*model.Section, error)
	List() ([]model.Section, error)
	// AddRoll adds a roll to the named section, creating the section when it
	// does not exist. Adding an existing roll is a no-op (set semantics).
	AddRoll(name, roll string) (*model.Section, error)
}

type sectionRepository struct {
	db *gorm.DB
}

func NewSectionRepository(db *gorm.DB) SectionRepository {
	return &sectionRepository{db}
}

func (r *sectionRepository) Create(section *model.Section) error {
	return r.db.Create(section).Error
}

func (r *sectionRepository) GetByName(name string) (*model.Section, error) {
	var section model.Section
	err := r.db.Where("name = ?", name).First(&section).Error
	if err != nil {
		return nil, err
	}
	return &section, nil
}

func (r *sectionRepository) List() ([]model.Section, error) {
	var list []model.Section
	err := r.db.Order("name asc").Find(&list).Error
	return list, err
}

func (r *sectionRepository) AddRoll(name, roll string) (*model.Section, error) {
	section, err := r.GetByName(name)
	if err == gorm.ErrRecordNotFound {
		section = &model.Section{Name: name, Rolls: []string{roll}}
		if err := r.db.Create(section).Error; err != nil {
			return nil, err
		}
		return section, nil
	}
	if err != nil {
		return nil, err
	}
	if section.HasRoll(roll) {
		return section, nil
	}
	section.Rolls = append(section.Rolls, roll)
	if err := r.db.Save(section).Error; err != nil {
		return nil, err
	}
	return section, nil
}
