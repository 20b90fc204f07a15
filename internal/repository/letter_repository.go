package repository

import (
	"campus-clinic-backend/internal/model"

	"gorm.io/gorm"
)

type LetterRepository interface {
	Create(letter *model.Letter) error
	GetByID(id uint) (*model.Letter, error)
	ListByUser(userID string) ([]model.Letter, error)
	List() ([]model.Letter, error)
	Update(letter *model.Letter) error
}

type letterRepository struct {
	db *gorm.DB
}

func NewLetterRepository(db *gorm.DB) LetterRepository {
	return &letterRepository{db}
}

func (r *letterRepository) Create(letter *model.Letter) error {
	return r.db.Create(letter).Error
}

func (r *letterRepository) GetByID(id uint) (*model.Letter, error) {
	var letter model.Letter
	err := r.db.First(&letter, id).Error
	if err != nil {
		return nil, err
	}
	return &letter, nil
}

func (r *letterRepository) ListByUser(userID string) ([]model.Letter, error) {
	var list []model.Letter
	err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&list).Error
	return list, err
}

func (r *letterRepository) List() ([]model.Letter, error) {
	var list []model.Letter
	err := r.db.Order("created_at desc").Find(&list).Error
	return list, err
}

func (r *letterRepository) Update(letter *model.Letter) error {
	return r.db.Save(letter).Error
}
