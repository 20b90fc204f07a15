package repository

import (
	"campus-clinic-backend/internal/model"

	"gorm.io/gorm"
)

type GatePassRepository interface {
	Create(gp *model.GatePass) error
	GetByID(id uint) (*model.GatePass, error)
	List() ([]model.GatePass, error)
	// ListByUser matches on userId OR studentEmail (logical OR).
	ListByUser(key string) ([]model.GatePass, error)
	// FindApprovedByRoll returns an approved pass for the roll other than
	// excludeID, or gorm.ErrRecordNotFound when there is none.
	FindApprovedByRoll(roll string, excludeID uint) (*model.GatePass, error)
	Update(gp *model.GatePass) error
	Delete(id uint) error
}

type gatePassRepository struct {
	db *gorm.DB
}

func NewGatePassRepository(db *gorm.DB) GatePassRepository {
	return &gatePassRepository{db}
}

func (r *gatePassRepository) Create(gp *model.GatePass) error {
	return r.db.Create(gp).Error
}

func (r *gatePassRepository) GetByID(id uint) (*model.GatePass, error) {
	var gp model.GatePass
	err := r.db.First(&gp, id).Error
	if err != nil {
		return nil, err
	}
	return &gp, nil
}

func (r *gatePassRepository) List() ([]model.GatePass, error) {
	var list []model.GatePass
	err := r.db.Order("created_at desc").Find(&list).Error
	return list, err
}

func (r *gatePassRepository) ListByUser(key string) ([]model.GatePass, error) {
	var list []model.GatePass
	err := r.db.Where("user_id = ? OR student_email = ?", key, key).
		Order("created_at desc").
		Find(&list).Error
	return list, err
}

func (r *gatePassRepository) FindApprovedByRoll(roll string, excludeID uint) (*model.GatePass, error) {
	var gp model.GatePass
	err := r.db.Where("student_roll = ? AND status = ? AND id <> ?", roll, model.StatusApproved, excludeID).
		First(&gp).Error
	if err != nil {
		return nil, err
	}
	return &gp, nil
}

func (r *gatePassRepository) Update(gp *model.GatePass) error {
	return r.db.Save(gp).Error
}

func (r *gatePassRepository) Delete(id uint) error {
	// Hard delete, used by the bulk clear flow.
	return r.db.Unscoped().Delete(&model.GatePass{}, id).Error
}
