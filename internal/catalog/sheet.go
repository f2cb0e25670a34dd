package catalog

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"lab-pricing/internal/model"
)

// ErrTestNotFound is returned when a lookup finds no catalog row.
var ErrTestNotFound = errors.New("test not found in catalog")

// SheetClient fetches a lab's tab from a published Google Sheet through the
// gviz CSV endpoint. Each tab holds one lab's test catalog.
type SheetClient struct {
	SheetID string
	BaseURL string
	Labs    []string
	Client  *http.Client
}

// NewSheetClient creates a catalog client for one spreadsheet. If baseURL is
// empty, defaults to "https://docs.google.com".
func NewSheetClient(sheetID, baseURL string, labs []string) *SheetClient {
	if baseURL == "" {
		baseURL = "https://docs.google.com"
	}
	return &SheetClient{
		SheetID: sheetID,
		BaseURL: baseURL,
		Labs:    labs,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SheetError represents a failed catalog fetch.
type SheetError struct {
	StatusCode int
	Code       string
	Message    string
	RetryAfter string // for rate limit errors
}

func (e *SheetError) Error() string {
	return e.Message
}

// FetchLab downloads and parses one lab tab.
//
// If caching is enabled (ENABLE_SHEET_CACHE=true), responses may be reused
// for the cache TTL; see cache.go.
func (c *SheetClient) FetchLab(lab string) ([]Test, error) {
	if c.SheetID == "" {
		return nil, &SheetError{Code: "MISSING_SHEET_ID", Message: "sheet id is required"}
	}
	if strings.TrimSpace(lab) == "" {
		return nil, &SheetError{Code: "MISSING_LAB", Message: "lab name is required"}
	}

	cache := GetCache()
	if cache != nil {
		key := cacheKey(c.SheetID, lab)
		if cached, found := cache.Get(key); found {
			log.Printf("[Sheet] Cache hit: %d tests (sheet=%s, lab=%s)", len(cached), c.SheetID, lab)
			return cached, nil
		}
	}

	u, err := url.Parse(fmt.Sprintf("%s/spreadsheets/d/%s/gviz/tq", c.BaseURL, c.SheetID))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	q := u.Query()
	q.Set("tqx", "out:csv")
	q.Set("sheet", lab)
	u.RawQuery = q.Encode()

	log.Printf("[Sheet] Request: GET %s (sheet=%s, lab=%s)", u.Path, c.SheetID, lab)

	req, err := http.NewRequest(http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/csv")

	start := time.Now()
	resp, err := c.Client.Do(req)
	duration := time.Since(start)
	if err != nil {
		log.Printf("[Sheet] Request failed: %v (duration: %v)", err, duration)
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	log.Printf("[Sheet] Response: %d %s (duration: %v, lab=%s)", resp.StatusCode, resp.Status, duration, lab)

	switch resp.StatusCode {
	case http.StatusOK:
		// Success, continue
	case http.StatusForbidden, http.StatusUnauthorized:
		return nil, &SheetError{
			StatusCode: resp.StatusCode,
			Code:       "SHEET_FORBIDDEN",
			Message:    "sheet is not published or access is restricted",
		}
	case http.StatusNotFound:
		return nil, &SheetError{
			StatusCode: resp.StatusCode,
			Code:       "SHEET_NOT_FOUND",
			Message:    fmt.Sprintf("sheet %s or tab %q not found", c.SheetID, lab),
		}
	case http.StatusTooManyRequests:
		retryAfter := resp.Header.Get("Retry-After")
		return nil, &SheetError{
			StatusCode: resp.StatusCode,
			Code:       "RATE_LIMIT_EXCEEDED",
			Message:    fmt.Sprintf("rate limit exceeded. Retry after: %s", retryAfter),
			RetryAfter: retryAfter,
		}
	default:
		return nil, &SheetError{
			StatusCode: resp.StatusCode,
			Code:       "SHEET_ERROR",
			Message:    fmt.Sprintf("sheet endpoint returned status %d: %s", resp.StatusCode, resp.Status),
		}
	}

	tests, err := ParseCatalogCSV(resp.Body, lab)
	if err != nil {
		log.Printf("[Sheet] Error parsing response: %v (lab=%s)", err, lab)
		return nil, fmt.Errorf("failed to parse catalog CSV: %w", err)
	}

	log.Printf("[Sheet] Success: %d tests (sheet=%s, lab=%s)", len(tests), c.SheetID, lab)

	if cache := GetCache(); cache != nil {
		cache.Set(cacheKey(c.SheetID, lab), tests)
	}

	return tests, nil
}

// GetTest looks a test up by lab and name (case-insensitive).
func (c *SheetClient) GetTest(lab, name string) (model.TestEconomics, error) {
	tests, err := c.FetchLab(lab)
	if err != nil {
		return model.TestEconomics{}, err
	}
	for _, t := range tests {
		if strings.EqualFold(t.Name, name) {
			return t.Economics, nil
		}
	}
	return model.TestEconomics{}, fmt.Errorf("%w: %s/%s", ErrTestNotFound, lab, name)
}

func (c *SheetClient) ListTests(lab string) ([]Test, error) {
	return c.FetchLab(lab)
}

func (c *SheetClient) ListLabs() ([]string, error) {
	return c.Labs, nil
}
