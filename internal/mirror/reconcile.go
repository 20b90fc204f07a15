package mirror

import (
	"sort"

	"campus-clinic-backend/internal/model"
)

// Reconcile merges the server view of a user's gate passes with the local
// mirror. The server view wins whenever it has entries; only when it is
// empty (offline, auth hiccup) are the mirror's entries owned by the current
// identity shown instead. Availability over consistency.
func Reconcile(server []model.GatePass, local []Entry, identity Identity) []model.GatePass {
	if len(server) > 0 {
		return server
	}
	var out []model.GatePass
	for _, e := range local {
		if identity.Owns(e.GatePass) {
			out = append(out, e.GatePass)
		}
	}
	return out
}

// MergeActiveVisits deduplicates active-visit data from the server and the
// local mirror: one entry per student id, keeping the most recent entryTime.
// Result is newest first.
func MergeActiveVisits(server, local []model.Visit) []model.Visit {
	latest := map[string]model.Visit{}
	for _, v := range append(append([]model.Visit{}, server...), local...) {
		cur, ok := latest[v.StudentID]
		if !ok || v.EntryTime.After(cur.EntryTime) {
			latest[v.StudentID] = v
		}
	}
	out := make([]model.Visit, 0, len(latest))
	for _, v := range latest {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EntryTime.After(out[j].EntryTime) })
	return out
}

// ComputeAttendance builds the per-roll status map submitted for a section:
// sick when the roll has an active clinic visit (active-visit status takes
// precedence over a manual absent mark), else absent when manually marked,
// else present.
func ComputeAttendance(rolls, activeIDs, manualAbsent []string) map[string]string {
	active := map[string]bool{}
	for _, id := range activeIDs {
		active[id] = true
	}
	absent := map[string]bool{}
	for _, r := range manualAbsent {
		absent[r] = true
	}
	records := make(map[string]string, len(rolls))
	for _, roll := range rolls {
		switch {
		case active[roll]:
			records[roll] = model.AttendanceSick
		case absent[roll]:
			records[roll] = model.AttendanceAbsent
		default:
			records[roll] = model.AttendancePresent
		}
	}
	return records
}
