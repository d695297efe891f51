// Package webhook posts milestone events to a user-configured endpoint.
package webhook

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// timeout is the timeout for webhook request. Default to 30 seconds.
var timeout = 30 * time.Second

// MilestonePayload is the body posted when a user crosses new milestone
// thresholds.
type MilestonePayload struct {
	URL     string   `json:"-"`
	UserID  int32    `json:"user_id"`
	Rewards []string `json:"rewards"`
}

// Post posts the milestone payload to the webhook endpoint.
func Post(payload *MilestonePayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal webhook request to %s", payload.URL)
	}

	req, err := http.NewRequest(http.MethodPost, payload.URL, bytes.NewBuffer(body))
	if err != nil {
		return errors.Wrapf(err, "failed to construct webhook request to %s", payload.URL)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "failed to post webhook to %s", payload.URL)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(resp.Body)
		return errors.Errorf("failed to post webhook %s, status code: %d, response body: %s", payload.URL, resp.StatusCode, b)
	}
	return nil
}

// PostAsync posts the payload asynchronously and only logs failures.
func PostAsync(payload *MilestonePayload) {
	go func() {
		if err := Post(payload); err != nil {
			slog.Warn("failed to dispatch webhook asynchronously",
				slog.String("url", payload.URL),
				slog.Any("err", err))
		}
	}()
}
