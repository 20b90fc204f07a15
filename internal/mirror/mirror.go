package mirror

import (
	"sort"
	"sync"
	"time"

	"campus-clinic-backend/internal/model"
)

// Entry is one mirrored gate pass. LocalOnly marks mutations that never
// reached the server; they survive until a canonical server record with the
// same id overwrites them.
type Entry struct {
	model.GatePass
	LocalOnly bool `json:"localOnly"`
}

// Mirror is the client-side cache of gate-pass and visit data, the analog of
// the browser's localStorage copy. It is best-effort and eventually
// consistent: server responses are merged in as canonical, failed mutations
// are recorded locally, and every write publishes an advisory marker.
type Mirror struct {
	mu      sync.Mutex
	passes  map[uint]Entry
	visits  []model.Visit
	nextLoc uint
	by      string
	notes   *Notifier
}

const markerGatePasses = "gatepasses"
const markerVisits = "visits"

// Local ids are provisional until the server assigns a real one; they start
// far above any plausible server id so the two ranges never collide.
const localIDBase = 1 << 30

func NewMirror(by string, notes *Notifier) *Mirror {
	return &Mirror{
		passes:  map[uint]Entry{},
		nextLoc: localIDBase,
		by:      by,
		notes:   notes,
	}
}

// Merge stores a canonical server record, clearing any local-only flag.
func (m *Mirror) Merge(gp model.GatePass) {
	m.mu.Lock()
	m.passes[gp.ID] = Entry{GatePass: gp}
	m.mu.Unlock()
	m.publish(markerGatePasses)
}

// ApplyLocal records a mutation that could not reach the server. When the
// pass has no server id yet a provisional local id is assigned.
func (m *Mirror) ApplyLocal(gp model.GatePass) Entry {
	m.mu.Lock()
	if gp.ID == 0 {
		m.nextLoc++
		gp.ID = m.nextLoc
	}
	if gp.CreatedAt.IsZero() {
		gp.CreatedAt = time.Now()
	}
	e := Entry{GatePass: gp, LocalOnly: true}
	m.passes[gp.ID] = e
	m.mu.Unlock()
	m.publish(markerGatePasses)
	return e
}

// SetStatusLocal patches just the status of a mirrored pass, marking the
// entry local-only. Returns false when the id is not mirrored.
func (m *Mirror) SetStatusLocal(id uint, status string) bool {
	m.mu.Lock()
	e, ok := m.passes[id]
	if ok {
		e.Status = status
		e.LocalOnly = true
		m.passes[id] = e
	}
	m.mu.Unlock()
	if ok {
		m.publish(markerGatePasses)
	}
	return ok
}

func (m *Mirror) Remove(id uint) {
	m.mu.Lock()
	delete(m.passes, id)
	m.mu.Unlock()
	m.publish(markerGatePasses)
}

// GatePasses returns all mirrored passes, newest first.
func (m *Mirror) GatePasses() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Entry, 0, len(m.passes))
	for _, e := range m.passes {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (m *Mirror) OwnedBy(id Identity) []Entry {
	var out []Entry
	for _, e := range m.GatePasses() {
		if id.Owns(e.GatePass) {
			out = append(out, e)
		}
	}
	return out
}

// AddVisit records a clinic check-in that could not reach the server.
func (m *Mirror) AddVisit(v model.Visit) {
	m.mu.Lock()
	if v.EntryTime.IsZero() {
		v.EntryTime = time.Now()
	}
	m.visits = append(m.visits, v)
	m.mu.Unlock()
	m.publish(markerVisits)
}

// ActiveVisits returns mirrored visits with no exit time.
func (m *Mirror) ActiveVisits() []model.Visit {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Visit
	for _, v := range m.visits {
		if v.ExitTime == nil {
			out = append(out, v)
		}
	}
	return out
}

func (m *Mirror) publish(key string) {
	if m.notes != nil {
		m.notes.Publish(Marker{Key: key, UpdatedAt: time.Now(), By: m.by})
	}
}
