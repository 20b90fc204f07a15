package mirror

import (
	"fmt"
	"strings"

	"campus-clinic-backend/internal/model"
)

// Client implements the sync contract: every mutation is attempted against
// the server first; on success the canonical record is merged into the
// mirror, on failure the mutation lands in the mirror only and the caller is
// told it succeeded "locally". Reads prefer server data and fall back to the
// mirror's owned entries.
type Client struct {
	api     API
	session *Session
}

func NewClient(api API, session *Session) *Client {
	return &Client{api: api, session: session}
}

// SubmitGatePass validates required fields, then sends the request. The
// returned bool is true when the pass only exists locally.
func (c *Client) SubmitGatePass(gp model.GatePass) (model.GatePass, bool, error) {
	if err := validateGatePass(gp); err != nil {
		return model.GatePass{}, false, err
	}
	identity := c.session.Identity()
	if gp.StudentEmail == "" {
		gp.StudentEmail = identity.Email
	}
	if gp.UserID == "" {
		gp.UserID = identity.UserID
	}
	gp.Status = model.StatusPendingApproval

	created, err := c.api.CreateGatePass(gp)
	if err != nil {
		entry := c.session.Mirror().ApplyLocal(gp)
		return entry.GatePass, true, nil
	}
	c.session.Mirror().Merge(*created)
	return *created, false, nil
}

func validateGatePass(gp model.GatePass) error {
	var missing []string
	if gp.StudentName == "" {
		missing = append(missing, "Name")
	}
	if gp.StudentYear == "" {
		missing = append(missing, "Year")
	}
	if gp.StudentRoll == "" {
		missing = append(missing, "Roll")
	}
	if gp.Reason == "" {
		missing = append(missing, "Reason")
	}
	if gp.TimeOut == "" {
		missing = append(missing, "Time Out")
	}
	if len(missing) > 0 {
		return fmt.Errorf("please fill all required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// SetGatePassStatus is the HOD-side status update. Local-only fallback when
// the server is unreachable, so a student on the same device still sees the
// decision.
func (c *Client) SetGatePassStatus(id uint, status string) (bool, error) {
	updated, err := c.api.SetGatePassStatus(id, status)
	if err != nil {
		if c.session.Mirror().SetStatusLocal(id, status) {
			return true, nil
		}
		return false, err
	}
	c.session.Mirror().Merge(*updated)
	return false, nil
}

// MyGatePasses fetches the current user's passes, reconciling with the
// mirror per the documented precedence rules.
func (c *Client) MyGatePasses() []model.GatePass {
	identity := c.session.Identity()
	key := identity.UserID
	if key == "" {
		key = identity.Email
	}
	server, err := c.api.GatePassesForUser(key)
	if err != nil {
		server = nil
	}
	for _, gp := range server {
		c.session.Mirror().Merge(gp)
	}
	return Reconcile(server, c.session.Mirror().GatePasses(), identity)
}

// ClearMyGatePasses enumerates the user's passes and deletes each — the
// bulk "clear my requests" flow. Entries the server no longer knows about
// are still dropped from the mirror.
func (c *Client) ClearMyGatePasses() int {
	cleared := 0
	for _, gp := range c.MyGatePasses() {
		if err := c.api.DeleteGatePass(gp.ID); err == nil {
			cleared++
		}
		c.session.Mirror().Remove(gp.ID)
	}
	return cleared
}

// LogVisit attempts a clinic check-in; falls back to the mirror when the
// server is unreachable.
func (c *Client) LogVisit(v model.Visit) (bool, error) {
	created, err := c.api.CreateVisit(v)
	if err != nil {
		c.session.Mirror().AddVisit(v)
		return true, nil
	}
	_ = created
	return false, nil
}

// ActivePatients merges server and mirrored active visits, one entry per
// student id keeping the most recent check-in.
func (c *Client) ActivePatients() []model.Visit {
	server, err := c.api.ActiveVisits()
	if err != nil {
		server = nil
	}
	return MergeActiveVisits(server, c.session.Mirror().ActiveVisits())
}
