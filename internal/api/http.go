package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/javiermolinar/aula/internal/timetable"
)

const defaultTimeout = 15 * time.Second

// HTTPClient implements Client against the school backend's JSON API.
type HTTPClient struct {
	baseURL string
	token   string
	http    *http.Client
	log     *zap.Logger
}

// Options configures the HTTP client.
type Options struct {
	BaseURL string
	Token   string
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewHTTPClient creates a client for the given backend.
func NewHTTPClient(opts Options) (*HTTPClient, error) {
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("api base URL is required")
	}
	if _, err := url.Parse(opts.BaseURL); err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &HTTPClient{
		baseURL: opts.BaseURL,
		token:   opts.Token,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}, nil
}

// LoadTimetable fetches one timetable with slots and entries.
func (c *HTTPClient) LoadTimetable(ctx context.Context, id int64) (*Timetable, error) {
	var tt Timetable
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/timetables/%d", id), nil, &tt); err != nil {
		return nil, err
	}
	for i := range tt.Slots {
		tt.Slots[i].Normalize()
	}
	return &tt, nil
}

// ListSectionSubjects returns the section's subjects with teacher rosters.
func (c *HTTPClient) ListSectionSubjects(ctx context.Context, classID, sectionID int64) ([]timetable.Subject, error) {
	var subjects []timetable.Subject
	path := fmt.Sprintf("/api/classes/%d/sections/%d/subjects", classID, sectionID)
	if err := c.do(ctx, http.MethodGet, path, nil, &subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}

// ListTeachers returns the full school teacher roster.
func (c *HTTPClient) ListTeachers(ctx context.Context) ([]timetable.Teacher, error) {
	var teachers []timetable.Teacher
	if err := c.do(ctx, http.MethodGet, "/api/teachers", nil, &teachers); err != nil {
		return nil, err
	}
	return teachers, nil
}

// CheckSlotConflict runs the single-slot teacher conflict check.
func (c *HTTPClient) CheckSlotConflict(ctx context.Context, req ConflictCheckRequest) (*timetable.ConflictResult, error) {
	var result timetable.ConflictResult
	if err := c.do(ctx, http.MethodPost, "/api/timetables/check-conflict", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ValidateTimetable runs the whole-grid validation.
func (c *HTTPClient) ValidateTimetable(ctx context.Context, req ValidateRequest) (*timetable.ValidationResult, error) {
	var result timetable.ValidationResult
	if err := c.do(ctx, http.MethodPost, "/api/timetables/validate", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SaveTimetable persists the timetable as draft or final.
func (c *HTTPClient) SaveTimetable(ctx context.Context, req SaveRequest) (*SaveResponse, error) {
	var resp SaveResponse
	if err := c.do(ctx, http.MethodPost, "/api/timetables", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// do executes one JSON request/response cycle. No retries: a failed request
// surfaces to the caller, who may re-invoke manually.
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug("request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode >= 400 {
		return c.statusError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func (c *HTTPClient) statusError(resp *http.Response) error {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&payload)
	msg := payload.Message
	if msg == "" {
		msg = payload.Error
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrTimetableNotFound, resp.Request.URL.Path)
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	default:
		return &APIError{Status: resp.StatusCode, Message: msg}
	}
}
