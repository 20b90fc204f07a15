package repository

import "gorm.io/gorm"

// Repos bundles one repository per store so main and the tests can swap the
// whole persistence layer at once (MySQL vs in-memory SKIP_DB mode).
type Repos struct {
	Users      UserRepository
	Sections   SectionRepository
	Visits     VisitRepository
	GatePasses GatePassRepository
	Attendance AttendanceRepository
	SignIns    SignInLogRepository
	Letters    LetterRepository
}

func NewGormRepos(db *gorm.DB) *Repos {
	return &Repos{
		Users:      NewUserRepository(db),
		Sections:   NewSectionRepository(db),
		Visits:     NewVisitRepository(db),
		GatePasses: NewGatePassRepository(db),
		Attendance: NewAttendanceRepository(db),
		SignIns:    NewSignInLogRepository(db),
		Letters:    NewLetterRepository(db),
	}
}

func NewMemoryRepos() *Repos {
	return &Repos{
		Users:      NewMemoryUserRepository(),
		Sections:   NewMemorySectionRepository(),
		Visits:     NewMemoryVisitRepository(),
		GatePasses: NewMemoryGatePassRepository(),
		Attendance: NewMemoryAttendanceRepository(),
		SignIns:    NewMemorySignInLogRepository(),
		Letters:    NewMemoryLetterRepository(),
	}
}
