package repository

import (
	"sort"
	"sync"
	"time"

	"campus-clinic-backend/internal/model"

	"gorm.io/gorm"
)

// In-memory implementations used when SKIP_DB=true so the app can run
// without a MySQL instance, and by the test suite. They mirror the gorm
// implementations' query semantics.

type memoryUserRepository struct {
	mu    sync.Mutex
	seq   uint
	users []model.User
}

func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{}
}

func (r *memoryUserRepository) Create(user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	user.ID = r.seq
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users = append(r.users, *user)
	return nil
}

func (r *memoryUserRepository) GetByEmail(email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].Email == email {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memoryUserRepository) List() ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.User, 0, len(r.users))
	for i := len(r.users) - 1; i >= 0; i-- {
		out = append(out, r.users[i])
	}
	return out, nil
}

func (r *memoryUserRepository) ListByRole(role string) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

type memorySectionRepository struct {
	mu       sync.Mutex
	seq      uint
	sections []model.Section
}

func NewMemorySectionRepository() SectionRepository {
	return &memorySectionRepository{}
}

func (r *memorySectionRepository) Create(section *model.Section) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	section.ID = r.seq
	section.CreatedAt = time.Now()
	section.UpdatedAt = section.CreatedAt
	r.sections = append(r.sections, *section)
	return nil
}

func (r *memorySectionRepository) GetByName(name string) (*model.Section, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.getByNameLocked(name)
}

func (r *memorySectionRepository) getByNameLocked(name string) (*model.Section, error) {
	for i := range r.sections {
		if r.sections[i].Name == name {
			s := r.sections[i]
			s.Rolls = append([]string(nil), r.sections[i].Rolls...)
			return &s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memorySectionRepository) List() ([]model.Section, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append([]model.Section(nil), r.sections...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memorySectionRepository) AddRoll(name, roll string) (*model.Section, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.sections {
		if r.sections[i].Name == name {
			if !r.sections[i].HasRoll(roll) {
				r.sections[i].Rolls = append(r.sections[i].Rolls, roll)
				r.sections[i].UpdatedAt = time.Now()
			}
			return r.getByNameLocked(name)
		}
	}
	r.seq++
	now := time.Now()
	r.sections = append(r.sections, model.Section{
		Model: gorm.Model{ID: r.seq, CreatedAt: now, UpdatedAt: now},
		Name:  name,
		Rolls: []string{roll},
	})
	return r.getByNameLocked(name)
}

type memoryVisitRepository struct {
	mu     sync.Mutex
	seq    uint
	visits []model.Visit
}

func NewMemoryVisitRepository() VisitRepository {
	return &memoryVisitRepository{}
}

func (r *memoryVisitRepository) Create(visit *model.Visit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	visit.ID = r.seq
	visit.CreatedAt = time.Now()
	visit.UpdatedAt = visit.CreatedAt
	r.visits = append(r.visits, *visit)
	return nil
}

func (r *memoryVisitRepository) LatestActiveByStudent(studentID string) (*model.Visit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var found *model.Visit
	for i := range r.visits {
		v := &r.visits[i]
		if v.StudentID != studentID || v.ExitTime != nil {
			continue
		}
		if found == nil || v.EntryTime.After(found.EntryTime) {
			found = v
		}
	}
	if found == nil {
		return nil, gorm.ErrRecordNotFound
	}
	out := *found
	return &out, nil
}

func (r *memoryVisitRepository) Update(visit *model.Visit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.visits {
		if r.visits[i].ID == visit.ID {
			visit.UpdatedAt = time.Now()
			r.visits[i] = *visit
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *memoryVisitRepository) Recent(limit int) ([]model.Visit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.sortedByEntryDesc()
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memoryVisitRepository) ByStudent(studentID string) ([]model.Visit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Visit
	for _, v := range r.sortedByEntryDesc() {
		if v.StudentID == studentID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *memoryVisitRepository) Active() ([]model.Visit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Visit
	for _, v := range r.sortedByEntryDesc() {
		if v.ExitTime == nil {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *memoryVisitRepository) sortedByEntryDesc() []model.Visit {
	out := append([]model.Visit(nil), r.visits...)
	sort.Slice(out, func(i, j int) bool { return out[i].EntryTime.After(out[j].EntryTime) })
	return out
}

type memoryGatePassRepository struct {
	mu     sync.Mutex
	seq    uint
	passes []model.GatePass
}

func NewMemoryGatePassRepository() GatePassRepository {
	return &memoryGatePassRepository{}
}

func (r *memoryGatePassRepository) Create(gp *model.GatePass) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	gp.ID = r.seq
	gp.CreatedAt = time.Now()
	gp.UpdatedAt = gp.CreatedAt
	if gp.Status == "" {
		gp.Status = model.StatusPendingApproval
	}
	r.passes = append(r.passes, *gp)
	return nil
}

func (r *memoryGatePassRepository) GetByID(id uint) (*model.GatePass, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.passes {
		if r.passes[i].ID == id {
			gp := r.passes[i]
			return &gp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memoryGatePassRepository) List() ([]model.GatePass, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.GatePass, 0, len(r.passes))
	for i := len(r.passes) - 1; i >= 0; i-- {
		out = append(out, r.passes[i])
	}
	return out, nil
}

func (r *memoryGatePassRepository) ListByUser(key string) ([]model.GatePass, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.GatePass
	for i := len(r.passes) - 1; i >= 0; i-- {
		gp := r.passes[i]
		if gp.UserID == key || gp.StudentEmail == key {
			out = append(out, gp)
		}
	}
	return out, nil
}

func (r *memoryGatePassRepository) FindApprovedByRoll(roll string, excludeID uint) (*model.GatePass, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.passes {
		gp := r.passes[i]
		if gp.StudentRoll == roll && gp.Status == model.StatusApproved && gp.ID != excludeID {
			return &gp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memoryGatePassRepository) Update(gp *model.GatePass) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.passes {
		if r.passes[i].ID == gp.ID {
			gp.UpdatedAt = time.Now()
			r.passes[i] = *gp
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *memoryGatePassRepository) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.passes {
		if r.passes[i].ID == id {
			r.passes = append(r.passes[:i], r.passes[i+1:]...)
			return nil
		}
	}
	return nil
}

type memoryAttendanceRepository struct {
	mu      sync.Mutex
	seq     uint
	records []model.Attendance
}

func NewMemoryAttendanceRepository() AttendanceRepository {
	return &memoryAttendanceRepository{}
}

func (r *memoryAttendanceRepository) Upsert(rec *model.Attendance) (*model.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.records {
		if r.records[i].Date == rec.Date && r.records[i].Section == rec.Section {
			r.records[i].Records = rec.Records
			r.records[i].By = rec.By
			r.records[i].UpdatedAt = time.Now()
			out := r.records[i]
			return &out, nil
		}
	}
	r.seq++
	rec.ID = r.seq
	rec.CreatedAt = time.Now()
	rec.UpdatedAt = rec.CreatedAt
	r.records = append(r.records, *rec)
	out := *rec
	return &out, nil
}

func (r *memoryAttendanceRepository) GetBySectionAndDate(section, date string) (*model.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.records {
		if r.records[i].Section == section && r.records[i].Date == date {
			out := r.records[i]
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memoryAttendanceRepository) LatestBySection(section string) (*model.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var found *model.Attendance
	for i := range r.records {
		rec := &r.records[i]
		if rec.Section != section {
			continue
		}
		if found == nil || rec.Date > found.Date ||
			(rec.Date == found.Date && rec.UpdatedAt.After(found.UpdatedAt)) {
			found = rec
		}
	}
	if found == nil {
		return nil, gorm.ErrRecordNotFound
	}
	out := *found
	return &out, nil
}

type memorySignInLogRepository struct {
	mu   sync.Mutex
	seq  uint
	logs []model.SignInLog
}

func NewMemorySignInLogRepository() SignInLogRepository {
	return &memorySignInLogRepository{}
}

func (r *memorySignInLogRepository) Create(log *model.SignInLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	log.ID = r.seq
	log.CreatedAt = time.Now()
	log.UpdatedAt = log.CreatedAt
	r.logs = append(r.logs, *log)
	return nil
}

func (r *memorySignInLogRepository) Recent(limit int) ([]model.SignInLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.SignInLog, 0, len(r.logs))
	for i := len(r.logs) - 1; i >= 0; i-- {
		out = append(out, r.logs[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

type memoryLetterRepository struct {
	mu      sync.Mutex
	seq     uint
	letters []model.Letter
}

func NewMemoryLetterRepository() LetterRepository {
	return &memoryLetterRepository{}
}

func (r *memoryLetterRepository) Create(letter *model.Letter) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	letter.ID = r.seq
	letter.CreatedAt = time.Now()
	letter.UpdatedAt = letter.CreatedAt
	r.letters = append(r.letters, *letter)
	return nil
}

func (r *memoryLetterRepository) GetByID(id uint) (*model.Letter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.letters {
		if r.letters[i].ID == id {
			l := r.letters[i]
			return &l, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memoryLetterRepository) ListByUser(userID string) ([]model.Letter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Letter
	for i := len(r.letters) - 1; i >= 0; i-- {
		if r.letters[i].UserID == userID {
			out = append(out, r.letters[i])
		}
	}
	return out, nil
}

func (r *memoryLetterRepository) List() ([]model.Letter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Letter, 0, len(r.letters))
	for i := len(r.letters) - 1; i >= 0; i-- {
		out = append(out, r.letters[i])
	}
	return out, nil
}

func (r *memoryLetterRepository) Update(letter *model.Letter) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.letters {
		if r.letters[i].ID == letter.ID {
			letter.UpdatedAt = time.Now()
			r.letters[i] = *letter
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}
