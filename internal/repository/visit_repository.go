package repository

import (
	"campus-clinic-backend/internal/model"

	"gorm.io/gorm"
)

type VisitRepository interface {
	Create(visit *model.Visit) error
	// LatestActiveByStudent returns the most recent visit for the student
	// that has no exit time yet.
	LatestActiveByStudent(studentID string) (*model.Visit, error)
	Update(visit *model.Visit) error
	Recent(limit int) ([]model.Visit, error)
	ByStudent(studentID string) ([]model.Visit, error)
	// Active returns all visits without an exit time, newest entry first.
	Active() ([]model.Visit, error)
}

type visitRepository struct {
	db *gorm.DB
}

func NewVisitRepository(db *gorm.DB) VisitRepository {
	return &visitRepository{db}
}

func (r *visitRepository) Create(visit *model.Visit) error {
	return r.db.Create(visit).Error
}

func (r *visitRepository) LatestActiveByStudent(studentID string) (*model.Visit, error) {
	var visit model.Visit
	err := r.db.Where("student_id = ? AND exit_time IS NULL", studentID).
		Order("entry_time desc").
		First(&visit).Error
	if err != nil {
		return nil, err
	}
	return &visit, nil
}

func (r *visitRepository) Update(visit *model.Visit) error {
	return r.db.Save(visit).Error
}

func (r *visitRepository) Recent(limit int) ([]model.Visit, error) {
	var list []model.Visit
	err := r.db.Order("entry_time desc").Limit(limit).Find(&list).Error
	return list, err
}

func (r *visitRepository) ByStudent(studentID string) ([]model.Visit, error) {
	var list []model.Visit
	err := r.db.Where("student_id = ?", studentID).Order("entry_time desc").Find(&list).Error
	return list, err
}

func (r *visitRepository) Active() ([]model.Visit, error) {
	var list []model.Visit
	err := r.db.Where("exit_time IS NULL").Order("entry_time desc").Find(&list).Error
	return list, err
}
