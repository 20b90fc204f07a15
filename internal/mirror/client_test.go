package mirror_test

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"campus-clinic-backend/internal/mirror"
	"campus-clinic-backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI simulates the backend; set down to true to make every call fail
// as if the server were unreachable.
type fakeAPI struct {
	down    bool
	nextID  uint
	passes  map[uint]model.GatePass
	visits  []model.Visit
	deleted []uint
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{passes: map[uint]model.GatePass{}}
}

var errDown = errors.New("connection refused")

func (f *fakeAPI) CreateGatePass(gp model.GatePass) (*model.GatePass, error) {
	if f.down {
		return nil, errDown
	}
	f.nextID++
	gp.ID = f.nextID
	gp.Status = model.StatusPendingApproval
	gp.CreatedAt = time.Now()
	f.passes[gp.ID] = gp
	return &gp, nil
}

func (f *fakeAPI) GatePassesForUser(key string) ([]model.GatePass, error) {
	if f.down {
		return nil, errDown
	}
	var out []model.GatePass
	for _, gp := range f.passes {
		if gp.UserID == key || gp.StudentEmail == key {
			out = append(out, gp)
		}
	}
	return out, nil
}

func (f *fakeAPI) SetGatePassStatus(id uint, status string) (*model.GatePass, error) {
	if f.down {
		return nil, errDown
	}
	gp, ok := f.passes[id]
	if !ok {
		return nil, errors.New("not found")
	}
	gp.Status = status
	f.passes[id] = gp
	return &gp, nil
}

func (f *fakeAPI) DeleteGatePass(id uint) error {
	if f.down {
		return errDown
	}
	delete(f.passes, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeAPI) CreateVisit(v model.Visit) (*model.Visit, error) {
	if f.down {
		return nil, errDown
	}
	f.visits = append(f.visits, v)
	return &v, nil
}

func (f *fakeAPI) ActiveVisits() ([]model.Visit, error) {
	if f.down {
		return nil, errDown
	}
	var out []model.Visit
	for _, v := range f.visits {
		if v.ExitTime == nil {
			out = append(out, v)
		}
	}
	return out, nil
}

func studentSession() *mirror.Session {
	return mirror.NewSession(mirror.Identity{
		UserID: "u1",
		Email:  "student@klh.edu.in",
		Roll:   "2410030001",
	})
}

func validPass() model.GatePass {
	return model.GatePass{
		StudentName: "Asha",
		StudentYear: "2nd",
		StudentRoll: "2410030001",
		Reason:      "Medical appointment",
		TimeOut:     "14:30",
	}
}

func TestSubmitGatePassServerFirst(t *testing.T) {
	api := newFakeAPI()
	session := studentSession()
	defer session.Close()
	client := mirror.NewClient(api, session)

	created, localOnly, err := client.SubmitGatePass(validPass())
	require.NoError(t, err)
	assert.False(t, localOnly)
	assert.Equal(t, model.StatusPendingApproval, created.Status)
	assert.Equal(t, "student@klh.edu.in", created.StudentEmail)
	assert.Len(t, api.passes, 1)
}

func TestSubmitGatePassFallsBackToMirrorWhenServerDown(t *testing.T) {
	api := newFakeAPI()
	api.down = true
	session := studentSession()
	defer session.Close()
	client := mirror.NewClient(api, session)

	created, localOnly, err := client.SubmitGatePass(validPass())
	require.NoError(t, err)
	assert.True(t, localOnly)
	assert.NotZero(t, created.ID)
	assert.Empty(t, api.passes)

	entries := session.Mirror().GatePasses()
	require.Len(t, entries, 1)
	assert.True(t, entries[0].LocalOnly)
}

func TestSubmitGatePassRejectsMissingFields(t *testing.T) {
	api := newFakeAPI()
	session := studentSession()
	defer session.Close()
	client := mirror.NewClient(api, session)

	gp := validPass()
	gp.Reason = ""
	gp.TimeOut = ""
	_, _, err := client.SubmitGatePass(gp)
	require.Error(t, err)
	assert.Equal(t, "please fill all required fields: Reason, Time Out", err.Error())
	assert.Empty(t, session.Mirror().GatePasses())
}

func TestSetGatePassStatusLocalFallback(t *testing.T) {
	api := newFakeAPI()
	session := studentSession()
	defer session.Close()
	client := mirror.NewClient(api, session)

	created, _, err := client.SubmitGatePass(validPass())
	require.NoError(t, err)

	api.down = true
	localOnly, err := client.SetGatePassStatus(created.ID, model.StatusApproved)
	require.NoError(t, err)
	assert.True(t, localOnly)

	entries := session.Mirror().GatePasses()
	require.Len(t, entries, 1)
	assert.Equal(t, model.StatusApproved, entries[0].Status)
	assert.True(t, entries[0].LocalOnly)

	// unknown id with the server down surfaces the transport error
	_, err = client.SetGatePassStatus(999, model.StatusDeclined)
	assert.Error(t, err)
}

func TestMyGatePassesPrefersServerView(t *testing.T) {
	api := newFakeAPI()
	session := studentSession()
	defer session.Close()
	client := mirror.NewClient(api, session)

	created, _, err := client.SubmitGatePass(validPass())
	require.NoError(t, err)

	// HOD approves out of band
	_, err = api.SetGatePassStatus(created.ID, model.StatusApproved)
	require.NoError(t, err)

	mine := client.MyGatePasses()
	require.Len(t, mine, 1)
	assert.Equal(t, model.StatusApproved, mine[0].Status)

	// server gone: the mirrored copy still answers
	api.down = true
	mine = client.MyGatePasses()
	require.Len(t, mine, 1)
	assert.Equal(t, created.ID, mine[0].ID)
}

func TestClearMyGatePasses(t *testing.T) {
	api := newFakeAPI()
	session := studentSession()
	defer session.Close()
	client := mirror.NewClient(api, session)

	_, _, err := client.SubmitGatePass(validPass())
	require.NoError(t, err)

	cleared := client.ClearMyGatePasses()
	assert.Equal(t, 1, cleared)
	assert.Empty(t, api.passes)
	assert.Empty(t, session.Mirror().GatePasses())
}

func TestLogVisitAndActivePatientsMergeMirror(t *testing.T) {
	api := newFakeAPI()
	session := studentSession()
	defer session.Close()
	client := mirror.NewClient(api, session)

	localOnly, err := client.LogVisit(model.Visit{Name: "Asha", StudentID: "R1", EntryTime: time.Now()})
	require.NoError(t, err)
	assert.False(t, localOnly)

	api.down = true
	localOnly, err = client.LogVisit(model.Visit{Name: "Ben", StudentID: "R2", EntryTime: time.Now()})
	require.NoError(t, err)
	assert.True(t, localOnly)

	api.down = false
	patients := client.ActivePatients()
	ids := []string{patients[0].StudentID, patients[1].StudentID}
	assert.ElementsMatch(t, []string{"R1", "R2"}, ids)
}

func TestNotifierPublishesMarkerOnMirrorWrite(t *testing.T) {
	session := studentSession()
	defer session.Close()

	ch, cancel := session.Notifier().Subscribe()
	defer cancel()

	session.Mirror().ApplyLocal(validPass())

	select {
	case m := <-ch:
		assert.Equal(t, "gatepasses", m.Key)
		assert.Equal(t, "student@klh.edu.in", m.By)
		assert.False(t, m.UpdatedAt.IsZero())
	case <-time.After(time.Second):
		t.Fatal("no marker published")
	}
}

func TestSessionCloseStopsPollers(t *testing.T) {
	session := studentSession()

	var ticks atomic.Int32
	done := make(chan struct{}, 1)
	p := session.Poll(5*time.Millisecond, func() {
		ticks.Add(1)
		select {
		case done <- struct{}{}:
		default:
		}
	})
	require.NotNil(t, p)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller never ticked")
	}

	session.Close()
	after := ticks.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, ticks.Load())

	// a closed session refuses new pollers
	assert.Nil(t, session.Poll(time.Millisecond, func() {}))
}
