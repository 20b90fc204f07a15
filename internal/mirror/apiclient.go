package mirror

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"campus-clinic-backend/internal/model"
)

// API is what the offline-capable client needs from the server. APIClient is
// the real HTTP implementation; tests substitute a fake.
type API interface {
	CreateGatePass(gp model.GatePass) (*model.GatePass, error)
	GatePassesForUser(key string) ([]model.GatePass, error)
	SetGatePassStatus(id uint, status string) (*model.GatePass, error)
	DeleteGatePass(id uint) error
	CreateVisit(v model.Visit) (*model.Visit, error)
	ActiveVisits() ([]model.Visit, error)
}

type APIClient struct {
	BaseURL string
	HTTP    *http.Client
}

func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *APIClient) CreateGatePass(gp model.GatePass) (*model.GatePass, error) {
	var out model.GatePass
	if err := c.do(http.MethodPost, "/api/gatepasses", gp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) GatePassesForUser(key string) ([]model.GatePass, error) {
	var out []model.GatePass
	err := c.do(http.MethodGet, "/api/gatepasses/user/"+url.PathEscape(key), nil, &out)
	return out, err
}

func (c *APIClient) SetGatePassStatus(id uint, status string) (*model.GatePass, error) {
	var out model.GatePass
	body := map[string]string{"status": status}
	if err := c.do(http.MethodPut, fmt.Sprintf("/api/gatepasses/%d", id), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) DeleteGatePass(id uint) error {
	return c.do(http.MethodDelete, fmt.Sprintf("/api/gatepasses/%d", id), nil, nil)
}

func (c *APIClient) CreateVisit(v model.Visit) (*model.Visit, error) {
	var out model.Visit
	body := map[string]string{
		"name":     v.Name,
		"id":       v.StudentID,
		"symptoms": v.Symptoms,
		"loggedBy": v.LoggedBy,
	}
	if err := c.do(http.MethodPost, "/api/visits", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) ActiveVisits() ([]model.Visit, error) {
	var out []model.Visit
	err := c.do(http.MethodGet, "/api/visits/active", nil, &out)
	return out, err
}

func (c *APIClient) do(method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("server request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Error != "" {
			return fmt.Errorf("server error %s: %s", resp.Status, apiErr.Error)
		}
		return fmt.Errorf("server error %s", resp.Status)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
