package model

import (
	"time"

	"gorm.io/gorm"
)

// Gate pass statuses. The server only ever writes one of these three; the
// client additionally keeps a local-only "generated" draft state and treats
// "active" as a synonym of approved in views.
const (
	StatusPendingApproval = "pending_approval"
	StatusApproved        = "approved"
	StatusDeclined        = "declined"
)

// DeclineReasonSuperseded is stamped on a previously approved pass when a
// newer pass for the same roll is approved.
const DeclineReasonSuperseded = "Superseded by a newer approval"

// ValidStatus reports whether s is one of the statuses the server accepts.
func ValidStatus(s string) bool {
	return s == StatusPendingApproval || s == StatusApproved || s == StatusDeclined
}

// GatePass is a student's request for permission to leave campus, routed to
// the HOD for approval.
type GatePass struct {
	gorm.Model
	StudentEmail  string     `json:"studentEmail" gorm:"index"`
	StudentName   string     `json:"studentName"`
	StudentRoll   string     `json:"studentRoll" gorm:"index"`
	StudentYear   string     `json:"studentYear"`
	Department    string     `json:"department"`
	Reason        string     `json:"reason"`
	TimeOut       string     `json:"timeOut"`
	Status        string     `json:"status" gorm:"default:pending_approval;index"`
	UserID        string     `json:"userId"`
	HodSectionID  string     `json:"hodSectionId"`
	HodUserID     string     `json:"hodUserId"`
	ApprovedAt    *time.Time `json:"approvedAt"`
	DeclinedAt    *time.Time `json:"declinedAt"`
	DeclineReason string     `json:"declineReason"`
	DownloadedAt  *time.Time `json:"downloadedAt"`
}
