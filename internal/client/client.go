// Package client is the HTTP client for the Nocturne API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/templui/nocturne/internal/model"
)

const defaultTimeout = 15 * time.Second

// Session is a signed-in user as returned by signup, login and session.
type Session struct {
	Token     string         `json:"token,omitempty"`
	ExpiresAt *time.Time     `json:"expires_at,omitempty"`
	User      *model.User    `json:"user"`
	Profile   *model.Profile `json:"profile"`
}

type Dashboard struct {
	Greeting    string          `json:"greeting"`
	Name        string          `json:"name"`
	LastSleep   *model.SleepLog `json:"last_sleep"`
	PinnedNotes []*model.Note   `json:"pinned_notes"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken sets the bearer token sent with every request.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/health", nil, nil)
}

// Auth

func (c *Client) Signup(ctx context.Context, email, password, fullName string) (*Session, error) {
	return c.authenticate(ctx, "/api/auth/signup", map[string]string{
		"email":     email,
		"password":  password,
		"full_name": fullName,
	})
}

func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	return c.authenticate(ctx, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

func (c *Client) authenticate(ctx context.Context, path string, body map[string]string) (*Session, error) {
	var session Session
	err := c.do(ctx, http.MethodPost, path, body, &session)
	if err != nil {
		return nil, err
	}
	c.SetToken(session.Token)
	return &session, nil
}

// Logout ends the server session and forgets the token.
func (c *Client) Logout(ctx context.Context) error {
	defer c.SetToken("")
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

func (c *Client) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	body := map[string]string{
		"current_password": currentPassword,
		"new_password":     newPassword,
	}
	return c.do(ctx, http.MethodPut, "/api/account/password", body, nil)
}

// DeleteAccount removes the account and forgets the token once the server
// has confirmed.
func (c *Client) DeleteAccount(ctx context.Context) error {
	err := c.do(ctx, http.MethodDelete, "/api/account", nil, nil)
	if err != nil {
		return err
	}
	c.SetToken("")
	return nil
}

func (c *Client) Session(ctx context.Context) (*Session, error) {
	var session Session
	err := c.do(ctx, http.MethodGet, "/api/auth/session", nil, &session)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Profile

func (c *Client) Profile(ctx context.Context) (*model.Profile, error) {
	var profile model.Profile
	err := c.do(ctx, http.MethodGet, "/api/profile", nil, &profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) UpdateProfile(ctx context.Context, update model.ProfileUpdate) (*model.Profile, error) {
	var profile model.Profile
	err := c.do(ctx, http.MethodPatch, "/api/profile", update, &profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Dashboard fetches the overview; tz is an optional IANA zone name.
func (c *Client) Dashboard(ctx context.Context, tz string) (*Dashboard, error) {
	path := "/api/dashboard"
	if tz != "" {
		path += "?tz=" + url.QueryEscape(tz)
	}

	var dashboard Dashboard
	err := c.do(ctx, http.MethodGet, path, nil, &dashboard)
	if err != nil {
		return nil, err
	}
	return &dashboard, nil
}

// Sleep logs

func (c *Client) SleepLogs(ctx context.Context) ([]*model.SleepLog, error) {
	var logs []*model.SleepLog
	err := c.do(ctx, http.MethodGet, "/api/sleep-logs", nil, &logs)
	return logs, err
}

// StartSleep opens a session; a nil start lets the server use its clock.
func (c *Client) StartSleep(ctx context.Context, start *time.Time) (*model.SleepLog, error) {
	body := map[string]*time.Time{}
	if start != nil {
		body["sleep_start"] = start
	}

	var log model.SleepLog
	err := c.do(ctx, http.MethodPost, "/api/sleep-logs", body, &log)
	if err != nil {
		return nil, err
	}
	return &log, nil
}

func (c *Client) StopSleep(ctx context.Context) (*model.SleepLog, error) {
	var log model.SleepLog
	err := c.do(ctx, http.MethodPost, "/api/sleep-logs/stop", nil, &log)
	if err != nil {
		return nil, err
	}
	return &log, nil
}

func (c *Client) UpdateSleepLog(ctx context.Context, id string, update model.SleepLogUpdate) (*model.SleepLog, error) {
	var log model.SleepLog
	err := c.do(ctx, http.MethodPatch, "/api/sleep-logs/"+url.PathEscape(id), update, &log)
	if err != nil {
		return nil, err
	}
	return &log, nil
}

func (c *Client) DeleteSleepLog(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/sleep-logs/"+url.PathEscape(id), nil, nil)
}

// Notes

func (c *Client) Notes(ctx context.Context) ([]*model.Note, error) {
	var notes []*model.Note
	err := c.do(ctx, http.MethodGet, "/api/notes", nil, &notes)
	return notes, err
}

func (c *Client) PinnedNotes(ctx context.Context, limit int) ([]*model.Note, error) {
	path := "/api/notes/pinned"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}

	var notes []*model.Note
	err := c.do(ctx, http.MethodGet, path, nil, &notes)
	return notes, err
}

func (c *Client) Note(ctx context.Context, id string) (*model.Note, error) {
	var note model.Note
	err := c.do(ctx, http.MethodGet, "/api/notes/"+url.PathEscape(id), nil, &note)
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) NoteHTML(ctx context.Context, id string) (string, error) {
	var out struct {
		HTML string `json:"html"`
	}
	err := c.do(ctx, http.MethodGet, "/api/notes/"+url.PathEscape(id)+"/html", nil, &out)
	return out.HTML, err
}

func (c *Client) CreateNote(ctx context.Context, input model.NewNote) (*model.Note, error) {
	var note model.Note
	err := c.do(ctx, http.MethodPost, "/api/notes", input, &note)
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) UpdateNote(ctx context.Context, id string, update model.NoteUpdate) (*model.Note, error) {
	var note model.Note
	err := c.do(ctx, http.MethodPatch, "/api/notes/"+url.PathEscape(id), update, &note)
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) DeleteNote(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/notes/"+url.PathEscape(id), nil, nil)
}

// ImportNote uploads a markdown document as a multipart form.
func (c *Client) ImportNote(ctx context.Context, filename string, source io.Reader) (*model.Note, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	_, err = io.Copy(part, source)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	err = form.Close()
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/notes/import", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	var note model.Note
	err = c.send(req, &note)
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := c.newRequest(ctx, method, path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

func (c *Client) send(req *http.Request, out any) error {
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	slog.Debug("api request",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode >= 300 {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	err = json.NewDecoder(resp.Body).Decode(out)
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	var body struct {
		Error string `json:"error"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if json.Unmarshal(data, &body) == nil {
		apiErr.Message = body.Error
	}
	return apiErr
}
