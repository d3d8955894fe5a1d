package garmin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrAuthenticationFailed marks a failure to establish a usable session.
var ErrAuthenticationFailed = errors.New("garmin authentication failed")

// Activity is the read-only view of an existing Garmin activity used for
// duplicate comparison. StartTimeLocal carries no offset.
type Activity struct {
	ActivityID     int64  `json:"activityId"`
	ActivityName   string `json:"activityName"`
	StartTimeLocal string `json:"startTimeLocal"`
}

// ManualActivity is the payload for creating a manual activity entry.
type ManualActivity struct {
	Name            string
	TypeID          int
	TypeKey         string
	StartTime       string // pre-formatted wall clock with trailing Z
	DurationSeconds int
	Calories        int // omitted from the request when zero
	Description     string
}

// API is the Garmin Connect surface consumed by the sync pipeline.
type API interface {
	ActivitiesByDate(ctx context.Context, date string) ([]Activity, error)
	AddManualActivity(ctx context.Context, act ManualActivity) (int64, error)
}

// HTTPDoer describes the HTTP client used for Garmin Connect calls.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client provides access to the Garmin Connect API. It must be authenticated
// through one of the auth strategies before the activity endpoints are used.
type Client struct {
	baseURL    string
	authURL    string
	httpClient HTTPDoer
	session    Session
}

var _ API = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client HTTPDoer) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the request timeout on the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// New creates a Garmin Connect client.
func New(baseURL, authURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("garmin base url required")
	}
	authURL = strings.TrimRight(strings.TrimSpace(authURL), "/")
	if authURL == "" {
		return nil, errors.New("garmin auth url required")
	}
	client := &Client{
		baseURL:    baseURL,
		authURL:    authURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Login authenticates with email and password and installs the resulting
// session on the client.
func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return Session{}, fmt.Errorf("%w: email and password required", ErrAuthenticationFailed)
	}

	body, err := json.Marshal(map[string]string{
		"username": email,
		"password": password,
	})
	if err != nil {
		return Session{}, fmt.Errorf("encode login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.authURL+"/sso/signin", bytes.NewReader(body))
	if err != nil {
		return Session{}, fmt.Errorf("build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return Session{}, fmt.Errorf("%w: login returned %d: %s",
			ErrAuthenticationFailed, resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	var session Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return Session{}, fmt.Errorf("%w: decode login response: %v", ErrAuthenticationFailed, err)
	}
	if session.Token == "" {
		return Session{}, fmt.Errorf("%w: login response carried no token", ErrAuthenticationFailed)
	}

	c.session = session
	return session, nil
}

// Resume installs a previously established session on the client.
func (c *Client) Resume(session Session) error {
	if strings.TrimSpace(session.Token) == "" {
		return fmt.Errorf("%w: session carries no token", ErrAuthenticationFailed)
	}
	c.session = session
	return nil
}

// ActivitiesByDate returns the activities recorded on a single calendar day
// (date formatted as 2006-01-02).
func (c *Client) ActivitiesByDate(ctx context.Context, date string) ([]Activity, error) {
	endpoint, err := url.Parse(c.baseURL + "/activitylist-service/activities/search/activities")
	if err != nil {
		return nil, fmt.Errorf("parse activities url: %w", err)
	}
	params := url.Values{}
	params.Set("startDate", date)
	params.Set("endDate", date)
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build activities request: %w", err)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch activities: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("activities query returned %d: %s",
			resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	var activities []Activity
	if err := json.NewDecoder(resp.Body).Decode(&activities); err != nil {
		return nil, fmt.Errorf("decode activities response: %w", err)
	}
	return activities, nil
}

type activityTypeDTO struct {
	TypeID  int    `json:"typeId"`
	TypeKey string `json:"typeKey"`
}

type summaryDTO struct {
	StartTimeLocal string `json:"startTimeLocal"`
	Duration       int    `json:"duration"`
	Calories       *int   `json:"calories,omitempty"`
}

type manualActivityRequest struct {
	ActivityName    string          `json:"activityName"`
	Description     string          `json:"description,omitempty"`
	ActivityTypeDTO activityTypeDTO `json:"activityTypeDTO"`
	SummaryDTO      summaryDTO      `json:"summaryDTO"`
}

// AddManualActivity creates a manual activity entry and returns its id.
func (c *Client) AddManualActivity(ctx context.Context, act ManualActivity) (int64, error) {
	payload := manualActivityRequest{
		ActivityName: act.Name,
		Description:  act.Description,
		ActivityTypeDTO: activityTypeDTO{
			TypeID:  act.TypeID,
			TypeKey: act.TypeKey,
		},
		SummaryDTO: summaryDTO{
			StartTimeLocal: act.StartTime,
			Duration:       act.DurationSeconds,
		},
	}
	if act.Calories > 0 {
		calories := act.Calories
		payload.SummaryDTO.Calories = &calories
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("encode manual activity: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/activity-service/activity", bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("build create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("create activity: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		responseBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return 0, fmt.Errorf("create activity returned %d: %s",
			resp.StatusCode, strings.TrimSpace(string(responseBody)))
	}

	var created struct {
		ActivityID int64 `json:"activityId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return 0, fmt.Errorf("decode create response: %w", err)
	}
	return created.ActivityID, nil
}

func (c *Client) authorize(req *http.Request) {
	if c.session.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}
}
