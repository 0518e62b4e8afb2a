package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const DefaultBaseURL = "https://api.twilio.com"

// Client sends SMS through the Twilio Messages REST API. Sends are never
// retried; a failed send is reported to the caller as-is.
type Client struct {
	httpClient *http.Client
	baseURL    string
	accountSID string
	authToken  string
	from       string
	enabled    bool

	mutex       sync.RWMutex
	totalSent   int64
	totalFailed int64
}

type NotificationError struct {
	Type       string
	StatusCode int
	Code       int
	Underlying error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("sms send failed [%s]: %v", e.Type, e.Underlying)
}

func (e *NotificationError) Unwrap() error {
	return e.Underlying
}

type messageResponse struct {
	SID    string `json:"sid"`
	Status string `json:"status"`
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewClient returns a client for the given account. An empty baseURL means
// the public Twilio API. The client is disabled when any credential is empty.
func NewClient(baseURL, accountSID, authToken, from string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		accountSID: accountSID,
		authToken:  authToken,
		from:       from,
		enabled:    accountSID != "" && authToken != "" && from != "",
	}
}

func (c *Client) Enabled() bool {
	return c.enabled
}

// SendSMS delivers body to the number to and returns the provider message SID.
func (c *Client) SendSMS(ctx context.Context, to, body string) (string, error) {
	if !c.enabled {
		return "", &NotificationError{
			Type:       "disabled",
			Underlying: fmt.Errorf("sms credentials are not configured"),
		}
	}

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", c.baseURL, url.PathEscape(c.accountSID))
	form := url.Values{}
	form.Set("To", to)
	form.Set("From", c.from)
	form.Set("Body", body)

	log.Debug().
		Str("to", to).
		Int("body_length", len(body)).
		Msg("Sending SMS")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", &NotificationError{Type: "client", Underlying: err}
	}
	req.SetBasicAuth(c.accountSID, c.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recordFailure()
		return "", &NotificationError{Type: "network", Underlying: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.recordFailure()
		return "", &NotificationError{Type: "network", StatusCode: resp.StatusCode, Underlying: err}
	}

	if resp.StatusCode >= 400 {
		c.recordFailure()
		var apiErr errorResponse
		if jsonErr := json.Unmarshal(raw, &apiErr); jsonErr != nil || apiErr.Message == "" {
			apiErr.Message = resp.Status
		}
		return "", &NotificationError{
			Type:       categorizeHTTPError(resp.StatusCode),
			StatusCode: resp.StatusCode,
			Code:       apiErr.Code,
			Underlying: fmt.Errorf("%s", apiErr.Message),
		}
	}

	var msg messageResponse
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.recordFailure()
		return "", &NotificationError{Type: "decode", StatusCode: resp.StatusCode, Underlying: err}
	}

	c.recordSuccess()
	log.Info().
		Str("sid", msg.SID).
		Str("status", msg.Status).
		Msg("SMS sent")
	return msg.SID, nil
}

func (c *Client) recordSuccess() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.totalSent++
}

func (c *Client) recordFailure() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.totalFailed++
}

// GetMetrics returns the number of sent and failed messages.
func (c *Client) GetMetrics() (sent, failed int64) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.totalSent, c.totalFailed
}

func categorizeHTTPError(statusCode int) string {
	switch {
	case statusCode == 401 || statusCode == 403:
		return "auth"
	case statusCode == 429:
		return "rate_limit"
	case statusCode >= 400 && statusCode < 500:
		return "client"
	case statusCode >= 500:
		return "server"
	default:
		return "unknown"
	}
}

// FormatReminder builds the SMS body for a scheduled reminder.
func FormatReminder(message, dateTime string) string {
	return message + "\nScheduled for: " + dateTime
}
