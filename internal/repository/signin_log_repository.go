package repository

import (
	"campus-clinic-backend/internal/model"

	"gorm.io/gorm"
)

type SignInLogRepository interface {
	Create(log *model.SignInLog) error
	Recent(limit int) ([]model.SignInLog, error)
}

type signInLogRepository struct {
	db *gorm.DB
}

func NewSignInLogRepository(db *gorm.DB) SignInLogRepository {
	return &signInLogRepository{db}
}

func (r *signInLogRepository) Create(log *model.SignInLog) error {
	return r.db.Create(log).Error
}

func (r *signInLogRepository) Recent(limit int) ([]model.SignInLog, error) {
	var list []model.SignInLog
	err := r.db.Order("created_at desc").Limit(limit).Find(&list).Error
	return list, err
}
