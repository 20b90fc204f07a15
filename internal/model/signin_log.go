package model

import "gorm.io/gorm"

// SignInLog records every authentication attempt. Diagnostic only.
type SignInLog struct {
	gorm.Model
	Email     string `json:"email" gorm:"index;not null"`
	RoleTried string `json:"roleTried"`
	Success   bool   `json:"success"`
	IP        string `json:"ip"`
	UserAgent string `json:"userAgent"`
}
