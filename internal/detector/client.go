package detector

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/Harissh-lab/arm-scout/internal/domain"
)

const DefaultTimeout = 5 * time.Second

// StreamResult is the body returned by the detector's stream endpoint.
// Confidence is a percentage with two decimals.
type StreamResult struct {
	Detected   bool    `json:"detected"`
	Type       string  `json:"type,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
	Timestamp  float64 `json:"timestamp,omitempty"`
	Error      string  `json:"error,omitempty"`
}

type HealthResult struct {
	Status  string            `json:"status"`
	Model   string            `json:"model"`
	Classes map[string]string `json:"classes"`
}

// Client talks to the on-vehicle camera classifier over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Detect asks the classifier to grab a frame and classify it. The bool is
// false when nothing was detected or the class is not a known hazard type.
func (c *Client) Detect(ctx context.Context) (domain.DetectionInput, bool, error) {
	url := fmt.Sprintf("%s/detect/stream", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return domain.DetectionInput{}, false, fmt.Errorf("detector: failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.DetectionInput{}, false, fmt.Errorf("detector: request failed: %w", err)
	}
	defer resp.Body.Close()

	var res StreamResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return domain.DetectionInput{}, false, fmt.Errorf("detector: failed to decode response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK || res.Error != "" {
		return domain.DetectionInput{}, false, fmt.Errorf("detector: status %d: %s", resp.StatusCode, res.Error)
	}
	if !res.Detected {
		return domain.DetectionInput{}, false, nil
	}

	t, ok := HazardTypeFor(res.Type)
	if !ok {
		return domain.DetectionInput{}, false, nil
	}
	return domain.DetectionInput{
		Type:       t,
		Confidence: clampConfidence(res.Confidence),
	}, true, nil
}

func (c *Client) Health(ctx context.Context) (HealthResult, error) {
	url := fmt.Sprintf("%s/health", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return HealthResult{}, fmt.Errorf("detector: failed to create health request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return HealthResult{}, fmt.Errorf("detector: health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return HealthResult{}, fmt.Errorf("detector: health check returned status %d", resp.StatusCode)
	}

	var h HealthResult
	if err := json.NewDecoder(resp.Body).Decode(&h); err != nil {
		return HealthResult{}, fmt.Errorf("detector: failed to decode health: %w", err)
	}
	return h, nil
}

// HazardTypeFor maps a classifier label such as "Potholes" onto a hazard type.
func HazardTypeFor(label string) (domain.HazardType, bool) {
	l := strings.ToLower(strings.TrimSpace(label))
	if t := domain.HazardType(l); t.Valid() {
		return t, true
	}
	if t := domain.HazardType(strings.TrimSuffix(l, "s")); t.Valid() {
		return t, true
	}
	return "", false
}

func clampConfidence(c float64) int {
	n := int(math.Round(c))
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
