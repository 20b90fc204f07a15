package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"campus-clinic-backend/internal/model"
	"campus-clinic-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LetterService manages issued letters (sick-leave notes, notices):
// draft -> issued -> acknowledged, with a derived expired state.
type LetterService struct {
	letters repository.LetterRepository
}

func NewLetterService(letters repository.LetterRepository) *LetterService {
	return &LetterService{letters: letters}
}

func (s *LetterService) CreateDraft(letter *model.Letter) error {
	if letter.UserID == "" || letter.LetterType == "" {
		return fmt.Errorf("%w: userId and letterType are required", ErrValidation)
	}
	letter.ID = 0
	letter.Status = model.LetterDraft
	letter.LetterNumber = newLetterNumber()
	letter.IssuedAt = nil
	letter.AcknowledgedAt = nil
	return s.letters.Create(letter)
}

func newLetterNumber() string {
	// Short, unique, human-quotable: LTR-<year>-<8 hex chars>.
	suffix := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return fmt.Sprintf("LTR-%d-%s", time.Now().Year(), strings.ToUpper(suffix))
}

func (s *LetterService) Issue(id uint, issuerUserID string, expiresAt *time.Time) (*model.Letter, error) {
	letter, err := s.get(id)
	if err != nil {
		return nil, err
	}
	if letter.Status != model.LetterDraft {
		return nil, fmt.Errorf("%w: letter is %s, only drafts can be issued", ErrConflict, letter.Status)
	}
	now := time.Now()
	letter.Status = model.LetterIssued
	letter.IssuedAt = &now
	letter.ExpiresAt = expiresAt
	if issuerUserID != "" {
		letter.IssuerUserID = issuerUserID
	}
	if err := s.letters.Update(letter); err != nil {
		return nil, err
	}
	return letter, nil
}

func (s *LetterService) Acknowledge(id uint) (*model.Letter, error) {
	letter, err := s.get(id)
	if err != nil {
		return nil, err
	}
	if letter.Status != model.LetterIssued {
		return nil, fmt.Errorf("%w: letter is %s, only issued letters can be acknowledged", ErrConflict, letter.Status)
	}
	now := time.Now()
	letter.Status = model.LetterAcknowledged
	letter.AcknowledgedAt = &now
	if err := s.letters.Update(letter); err != nil {
		return nil, err
	}
	return letter, nil
}

func (s *LetterService) Get(id uint) (*model.Letter, error) {
	return s.get(id)
}

func (s *LetterService) ListByUser(userID string) ([]model.Letter, error) {
	return s.applyExpiry(s.letters.ListByUser(userID))
}

func (s *LetterService) List() ([]model.Letter, error) {
	return s.applyExpiry(s.letters.List())
}

// applyExpiry reports expired letters as such without persisting the state;
// expiry is derived from expiresAt.
func (s *LetterService) applyExpiry(list []model.Letter, err error) ([]model.Letter, error) {
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].Status == model.LetterIssued && list[i].Expired() {
			list[i].Status = model.LetterExpired
		}
	}
	return list, nil
}

func (s *LetterService) get(id uint) (*model.Letter, error) {
	letter, err := s.letters.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return letter, nil
}
