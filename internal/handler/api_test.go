package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"campus-clinic-backend/internal/mailer"
	"campus-clinic-backend/internal/model"
	"campus-clinic-backend/internal/repository"
	"campus-clinic-backend/internal/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp() *fiber.App {
	app := fiber.New()
	repos := repository.NewMemoryRepos()
	routes.SetupAuthRoutes(app, repos)
	routes.SetupVisitRoutes(app, repos)
	routes.SetupSectionRoutes(app, repos)
	routes.SetupAttendanceRoutes(app, repos)
	routes.SetupGatePassRoutes(app, repos, mailer.NewFromEnv())
	routes.SetupLetterRoutes(app, repos)
	routes.SetupHealthRoutes(app, nil)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]interface{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func doJSONList(t *testing.T, app *fiber.App, path string) []map[string]interface{} {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	return list
}

func TestRegisterAndLoginEndpoints(t *testing.T) {
	app := newTestApp()

	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/register", fiber.Map{
		"email": "clinic@klh.edu.in", "password": "clinic123", "role": "clinic",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "clinic@klh.edu.in", body["email"])
	assert.Nil(t, body["passwordHash"])

	resp, body = doJSON(t, app, http.MethodPost, "/api/auth/register", fiber.Map{
		"email": "clinic@klh.edu.in", "password": "other", "role": "clinic",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "User already exists", body["error"])

	resp, _ = doJSON(t, app, http.MethodPost, "/api/auth/register", fiber.Map{
		"email": "x@klh.edu.in", "password": "p", "role": "janitor",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodPost, "/api/auth/login", fiber.Map{
		"email": "clinic@klh.edu.in", "password": "clinic123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "clinic", user["role"])

	resp, body = doJSON(t, app, http.MethodPost, "/api/auth/login", fiber.Map{
		"email": "clinic@klh.edu.in", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid credentials", body["error"])

	// both attempts, including the failure, are in the audit log
	logs := doJSONList(t, app, "/api/auth/signins")
	assert.Len(t, logs, 2)
}

func TestGatePassLifecycleOverHTTP(t *testing.T) {
	app := newTestApp()

	newPass := func(roll string) uint {
		resp, body := doJSON(t, app, http.MethodPost, "/api/gatepasses", fiber.Map{
			"studentName": "Asha",
			"studentRoll": roll,
			"studentYear": "2nd",
			"reason":      "Medical appointment",
			"timeOut":     "14:30",
			"department":  "CSE",
			"hodSectionId": "CSE-A1",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, model.StatusPendingApproval, body["status"])
		return uint(body["ID"].(float64))
	}

	first := newPass("2410030001")
	second := newPass("2410030001")

	resp, body := doJSON(t, app, http.MethodPatch, fmt.Sprintf("/api/gatepasses/%d/approve", first), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, model.StatusApproved, body["status"])
	assert.NotNil(t, body["approvedAt"])

	// approving the newer pass supersedes the first
	resp, body = doJSON(t, app, http.MethodPatch, fmt.Sprintf("/api/gatepasses/%d/approve", second), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, model.StatusApproved, body["status"])

	resp, body = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/gatepasses/%d", first), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, model.StatusDeclined, body["status"])
	assert.Equal(t, model.DeclineReasonSuperseded, body["declineReason"])

	// approval enrolled the roll into the HOD's section
	sections := doJSONList(t, app, "/api/sections")
	require.Len(t, sections, 1)
	assert.Equal(t, "CSE-A1", sections[0]["name"])
	assert.Contains(t, sections[0]["rolls"], "2410030001")

	resp, body = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/gatepasses/%d", second), fiber.Map{
		"status": "on_hold",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["error"], "unknown status")

	resp, _ = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/gatepasses/%d", second), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/gatepasses/%d", second), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGatePassDeclineWithQueryReason(t *testing.T) {
	app := newTestApp()

	resp, body := doJSON(t, app, http.MethodPost, "/api/gatepasses", fiber.Map{
		"studentName": "Ben", "studentRoll": "R9", "studentYear": "3rd",
		"reason": "Family function", "timeOut": "16:00",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := uint(body["ID"].(float64))

	resp, body = doJSON(t, app, http.MethodPatch,
		fmt.Sprintf("/api/gatepasses/%d/decline?reason=Exams+next+week", id), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, model.StatusDeclined, body["status"])
	assert.Equal(t, "Exams next week", body["declineReason"])
	assert.NotNil(t, body["declinedAt"])
}

func TestGatePassCreateValidation(t *testing.T) {
	app := newTestApp()
	resp, body := doJSON(t, app, http.MethodPost, "/api/gatepasses", fiber.Map{
		"studentName": "Asha",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.NotEmpty(t, body["error"])
}

func TestVisitFlowOverHTTP(t *testing.T) {
	app := newTestApp()

	resp, _ := doJSON(t, app, http.MethodPost, "/api/visits", fiber.Map{
		"name": "Asha", "id": "2410030001", "reason": "Fever",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	active := doJSONList(t, app, "/api/visits/active")
	require.Len(t, active, 1)
	assert.Equal(t, "2410030001", active[0]["id"])
	assert.Nil(t, active[0]["exitTime"])

	resp, body := doJSON(t, app, http.MethodPatch, "/api/visits/exit/2410030001", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotNil(t, body["exitTime"])

	resp, body = doJSON(t, app, http.MethodPatch, "/api/visits/exit/2410030001", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "No active visit found", body["error"])

	active = doJSONList(t, app, "/api/visits/active")
	assert.Empty(t, active)
}

func TestVisitCreateRequiresNameAndID(t *testing.T) {
	app := newTestApp()
	resp, body := doJSON(t, app, http.MethodPost, "/api/visits", fiber.Map{"name": "Asha"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "name and id are required", body["error"])
}

func TestAttendanceUpsertOverHTTP(t *testing.T) {
	app := newTestApp()

	resp, _ := doJSON(t, app, http.MethodPost, "/api/attendance", fiber.Map{
		"date": "2026-08-30", "section": "CSE-A1",
		"records": fiber.Map{"R1": "present", "R2": "absent"},
		"by":      "faculty@klh.edu.in",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/attendance", fiber.Map{
		"date": "2026-08-30", "section": "CSE-A1",
		"records": fiber.Map{"R1": "sick"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodGet, "/api/attendance/section/CSE-A1/date/2026-08-30", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	records := body["records"].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{"R1": "sick"}, records)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/attendance/section/CSE-A9/date/2026-08-30", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSectionEndpoints(t *testing.T) {
	app := newTestApp()

	resp, _ := doJSON(t, app, http.MethodPost, "/api/sections", fiber.Map{"name": "CSE-A1"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodPost, "/api/sections", fiber.Map{"name": "CSE-A1"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Section exists", body["error"])

	for i := 0; i < 2; i++ {
		resp, _ = doJSON(t, app, http.MethodPost, "/api/sections/CSE-A1/rolls", fiber.Map{"roll": "R1"})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
	sections := doJSONList(t, app, "/api/sections")
	require.Len(t, sections, 1)
	assert.Equal(t, []interface{}{"R1"}, sections[0]["rolls"])
}

func TestHealthEndpoint(t *testing.T) {
	app := newTestApp()
	resp, body := doJSON(t, app, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["ok"])
	assert.NotEmpty(t, body["time"])

	resp, body = doJSON(t, app, http.MethodGet, "/api/health/db", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["skip_db"])
}
