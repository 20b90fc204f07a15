package repository

import (
	"campus-clinic-backend/internal/model"

	"gorm.io/gorm"
)

type AttendanceRepository interface {
	// Upsert stores one record per (date, section). An existing record for
	// the key is fully replaced, not merged.
	Upsert(rec *model.Attendance) (*model.Attendance, error)
	GetBySectionAndDate(section, date string) (*model.Attendance, error)
	// LatestBySection ignores dates and returns the newest snapshot.
	LatestBySection(section string) (*model.Attendance, error)
}

type attendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db}
}

func (r *attendanceRepository) Upsert(rec *model.Attendance) (*model.Attendance, error) {
	var existing model.Attendance
	err := r.db.Where("date = ? AND section = ?", rec.Date, rec.Section).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		if err := r.db.Create(rec).Error; err != nil {
			return nil, err
		}
		return rec, nil
	}
	if err != nil {
		return nil, err
	}
	existing.Records = rec.Records
	existing.By = rec.By
	if err := r.db.Save(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

func (r *attendanceRepository) GetBySectionAndDate(section, date string) (*model.Attendance, error) {
	var rec model.Attendance
	err := r.db.Where("section = ? AND date = ?", section, date).First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *attendanceRepository) LatestBySection(section string) (*model.Attendance, error) {
	var rec model.Attendance
	err := r.db.Where("section = ?", section).
		Order("date desc, updated_at desc").
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
