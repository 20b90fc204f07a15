package model

import "gorm.io/gorm"

// Per-roll attendance statuses. "sick" is derived from the visit ledger
// (an active visit wins over a manual absent mark).
const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceSick    = "sick"
)

// Attendance holds one submission per (date, section). A resubmission for
// the same key replaces the whole Records map, it does not merge.
type Attendance struct {
	gorm.Model
	Date    string            `json:"date" gorm:"index"` // yyyy-mm-dd
	Section string            `json:"section" gorm:"index"`
	Records map[string]string `json:"records" gorm:"serializer:json"` // roll -> present/absent/sick
	By      string            `json:"by"`
}
