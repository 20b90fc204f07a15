package mirror_test

import (
	"testing"
	"time"

	"campus-clinic-backend/internal/mirror"
	"campus-clinic-backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestReconcileServerWins(t *testing.T) {
	me := mirror.Identity{Email: "student@klh.edu.in", Roll: "R1"}
	server := []model.GatePass{{StudentRoll: "R1", Status: model.StatusApproved}}
	local := []mirror.Entry{
		{GatePass: model.GatePass{StudentRoll: "R1", Status: model.StatusPendingApproval}, LocalOnly: true},
	}

	got := mirror.Reconcile(server, local, me)
	assert.Equal(t, server, got)
}

func TestReconcileFallsBackToOwnedLocalEntries(t *testing.T) {
	me := mirror.Identity{Email: "student@klh.edu.in", Roll: "R1"}
	local := []mirror.Entry{
		{GatePass: model.GatePass{StudentEmail: "student@klh.edu.in", StudentRoll: "R1"}, LocalOnly: true},
		{GatePass: model.GatePass{StudentEmail: "other@klh.edu.in", StudentRoll: "R2"}},
	}

	got := mirror.Reconcile(nil, local, me)
	assert.Len(t, got, 1)
	assert.Equal(t, "R1", got[0].StudentRoll)
}

func TestIdentityOwnsMatchesEmailCaseInsensitive(t *testing.T) {
	me := mirror.Identity{Email: "Student@KLH.edu.in"}
	assert.True(t, me.Owns(model.GatePass{StudentEmail: "student@klh.edu.in"}))
	assert.False(t, me.Owns(model.GatePass{StudentEmail: "someone@klh.edu.in"}))
}

func TestMergeActiveVisitsKeepsLatestPerStudent(t *testing.T) {
	base := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	server := []model.Visit{
		{StudentID: "R1", Name: "Asha", EntryTime: base},
		{StudentID: "R2", Name: "Ben", EntryTime: base.Add(10 * time.Minute)},
	}
	local := []model.Visit{
		{StudentID: "R1", Name: "Asha", EntryTime: base.Add(30 * time.Minute)},
	}

	got := mirror.MergeActiveVisits(server, local)
	assert.Len(t, got, 2)
	// newest first, and R1 resolved to the later local check-in
	assert.Equal(t, "R1", got[0].StudentID)
	assert.Equal(t, base.Add(30*time.Minute), got[0].EntryTime)
	assert.Equal(t, "R2", got[1].StudentID)
}

func TestComputeAttendancePrecedence(t *testing.T) {
	rolls := []string{"R1", "R2", "R3", "R4"}
	activeIDs := []string{"R2", "R3"}
	manualAbsent := []string{"R3", "R4"}

	got := mirror.ComputeAttendance(rolls, activeIDs, manualAbsent)

	assert.Equal(t, map[string]string{
		"R1": model.AttendancePresent,
		"R2": model.AttendanceSick,
		"R3": model.AttendanceSick, // active visit outranks the manual absent mark
		"R4": model.AttendanceAbsent,
	}, got)
}
