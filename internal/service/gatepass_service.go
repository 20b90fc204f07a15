package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"campus-clinic-backend/internal/metrics"
	"campus-clinic-backend/internal/model"
	"campus-clinic-backend/internal/repository"

	"gorm.io/gorm"
)

// GatePassService owns the approval state machine:
//
//	create -> pending_approval -> approved | declined
//
// with the supersede rule: approving a pass auto-declines any other approved
// pass for the same roll, so at most one approved pass exists per roll.
type GatePassService struct {
	passes   repository.GatePassRepository
	sections repository.SectionRepository
}

func NewGatePassService(passes repository.GatePassRepository, sections repository.SectionRepository) *GatePassService {
	return &GatePassService{passes: passes, sections: sections}
}

func (s *GatePassService) Create(gp *model.GatePass) error {
	gp.ID = 0
	gp.Status = model.StatusPendingApproval
	gp.ApprovedAt = nil
	gp.DeclinedAt = nil
	gp.DeclineReason = ""
	if err := s.passes.Create(gp); err != nil {
		return err
	}
	metrics.GatePassTransitions.WithLabelValues(model.StatusPendingApproval).Inc()
	return nil
}

// Approve marks the pass approved and, when it names a section (hodSectionId,
// falling back to department) and a roll, enrolls the roll in that section's
// roster. The two writes are not atomic; an enrollment failure is logged and
// the approval stands.
func (s *GatePassService) Approve(id uint, hodUserID string) (*model.GatePass, error) {
	gp, err := s.passes.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	// Supersede: an already-approved pass for the same roll flips to
	// declined so the new approval can proceed without a conflict, keeping
	// an audit trail on the old record.
	if gp.StudentRoll != "" {
		already, err := s.passes.FindApprovedByRoll(gp.StudentRoll, gp.ID)
		if err == nil && already != nil {
			now := time.Now()
			already.Status = model.StatusDeclined
			already.DeclinedAt = &now
			already.DeclineReason = model.DeclineReasonSuperseded
			if err := s.passes.Update(already); err != nil {
				log.Printf("failed to auto-decline superseded gate pass %d: %v", already.ID, err)
			} else {
				log.Printf("auto-declined previous approved gate pass %d for roll %s", already.ID, gp.StudentRoll)
				metrics.GatePassTransitions.WithLabelValues(model.StatusDeclined).Inc()
			}
		}
	}

	now := time.Now()
	gp.Status = model.StatusApproved
	gp.ApprovedAt = &now
	if hodUserID != "" {
		gp.HodUserID = hodUserID
	}
	if err := s.passes.Update(gp); err != nil {
		return nil, err
	}
	metrics.GatePassTransitions.WithLabelValues(model.StatusApproved).Inc()

	// Approval doubles as roster enrollment.
	secName := gp.HodSectionID
	if secName == "" {
		secName = gp.Department
	}
	if gp.StudentRoll != "" && secName != "" {
		if _, err := s.sections.AddRoll(secName, gp.StudentRoll); err != nil {
			log.Printf("failed to add roll %s to section %s on approval: %v", gp.StudentRoll, secName, err)
		}
	}

	return gp, nil
}

func (s *GatePassService) Decline(id uint, reason, hodUserID string) (*model.GatePass, error) {
	gp, err := s.passes.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	now := time.Now()
	gp.Status = model.StatusDeclined
	gp.DeclinedAt = &now
	if reason != "" {
		gp.DeclineReason = reason
	}
	if hodUserID != "" {
		gp.HodUserID = hodUserID
	}
	if err := s.passes.Update(gp); err != nil {
		return nil, err
	}
	metrics.GatePassTransitions.WithLabelValues(model.StatusDeclined).Inc()
	return gp, nil
}

func (s *GatePassService) Get(id uint) (*model.GatePass, error) {
	gp, err := s.passes.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return gp, err
}

func (s *GatePassService) List() ([]model.GatePass, error) {
	return s.passes.List()
}

// ListForUser matches on userId OR studentEmail.
func (s *GatePassService) ListForUser(key string) ([]model.GatePass, error) {
	return s.passes.ListByUser(key)
}

// Patch is the partial update applied by the generic PUT route. Only set
// (non-nil) fields are written. A status value outside the closed enumeration
// is rejected; the dedicated Approve/Decline paths remain the only ones that
// stamp transition timestamps.
type Patch struct {
	StudentName  *string    `json:"studentName"`
	StudentYear  *string    `json:"studentYear"`
	Department   *string    `json:"department"`
	Reason       *string    `json:"reason"`
	TimeOut      *string    `json:"timeOut"`
	Status       *string    `json:"status"`
	HodSectionID *string    `json:"hodSectionId"`
	HodUserID    *string    `json:"hodUserId"`
	DownloadedAt *time.Time `json:"downloadedAt"`
}

func (s *GatePassService) Update(id uint, patch Patch) (*model.GatePass, error) {
	if patch.Status != nil && !model.ValidStatus(*patch.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, *patch.Status)
	}
	gp, err := s.passes.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if patch.StudentName != nil {
		gp.StudentName = *patch.StudentName
	}
	if patch.StudentYear != nil {
		gp.StudentYear = *patch.StudentYear
	}
	if patch.Department != nil {
		gp.Department = *patch.Department
	}
	if patch.Reason != nil {
		gp.Reason = *patch.Reason
	}
	if patch.TimeOut != nil {
		gp.TimeOut = *patch.TimeOut
	}
	if patch.Status != nil {
		gp.Status = *patch.Status
	}
	if patch.HodSectionID != nil {
		gp.HodSectionID = *patch.HodSectionID
	}
	if patch.HodUserID != nil {
		gp.HodUserID = *patch.HodUserID
	}
	if patch.DownloadedAt != nil {
		gp.DownloadedAt = patch.DownloadedAt
	}
	if err := s.passes.Update(gp); err != nil {
		return nil, err
	}
	return gp, nil
}

func (s *GatePassService) Delete(id uint) error {
	return s.passes.Delete(id)
}
