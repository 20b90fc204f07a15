package model

import (
	"time"

	"gorm.io/gorm"
)

// Letter lifecycle. Drafts are created by faculty/admin, issued to a user,
// and acknowledged by the recipient. Expiry is a derived property.
const (
	LetterDraft        = "draft"
	LetterIssued       = "issued"
	LetterAcknowledged = "acknowledged"
	LetterExpired      = "expired"
)

type Letter struct {
	gorm.Model
	UserID         string     `json:"userId" gorm:"index"`
	SectionID      string     `json:"sectionId"`
	LetterNumber   string     `json:"letterNumber" gorm:"unique"`
	LetterType     string     `json:"letterType"` // sick-leave, permission, notice, ...
	Title          string     `json:"title"`
	Content        string     `json:"content"`
	Status         string     `json:"status" gorm:"default:draft"`
	IssuedAt       *time.Time `json:"issuedAt"`
	ExpiresAt      *time.Time `json:"expiresAt"`
	AcknowledgedAt *time.Time `json:"acknowledgedAt"`
	IssuerUserID   string     `json:"issuerUserId"`
	ApproverUserID string     `json:"approverUserId"`
	Remarks        string     `json:"remarks"`
}

func (l *Letter) Expired() bool {
	return l.ExpiresAt != nil && time.Now().After(*l.ExpiresAt)
}
