package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"nk-catalog/config"
	"nk-catalog/metrics"
	"nk-catalog/models"
)

const nkService = "national_catalog"

// Attribute types accepted by /v3/attributes
const (
	AttrTypeAll       = "a"
	AttrTypeMandatory = "m"
)

// NKService handles national catalog API operations
type NKService struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewNKService creates a new NKService instance
func NewNKService(cfg config.NKConfig) *NKService {
	return &NKService{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
	}
}

// Ensure NKService implements NKServiceInterface
var _ NKServiceInterface = (*NKService)(nil)

type resultEnvelope struct {
	Result json.RawMessage `json:"result"`
}

// do sends a request with the API key and returns the body of a 200 response
func (s *NKService) do(ctx context.Context, method, path string, query url.Values, payload any) (body []byte, err error) {
	start := time.Now()
	defer func() { metrics.ObserveUpstream(nkService, start, err) }()

	if query == nil {
		query = url.Values{}
	}
	query.Set("apikey", s.apiKey)

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	// preset URLs come back absolute, possibly with their own query
	target := s.baseURL + path
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		target = path
	}
	sep := "?"
	if strings.Contains(target, "?") {
		sep = "&"
	}

	req, err := http.NewRequestWithContext(ctx, method, target+sep+query.Encode(), reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("❌ National catalog %s %s: status %d: %s", method, path, resp.StatusCode, body)
		return nil, &APIError{Service: nkService, StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

// result unwraps the {"result": ...} envelope into v
func (s *NKService) result(body []byte, v any) error {
	var envelope resultEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if len(envelope.Result) == 0 || string(envelope.Result) == "null" {
		return nil
	}
	if err := json.Unmarshal(envelope.Result, v); err != nil {
		return fmt.Errorf("failed to decode result: %w", err)
	}
	return nil
}

func (s *NKService) categories(ctx context.Context, tnved string) ([]models.NKCategory, error) {
	body, err := s.do(ctx, http.MethodGet, "/v3/categories", url.Values{"tnved": {tnved}}, nil)
	if err != nil {
		return nil, err
	}

	var cats []models.NKCategory
	if err := s.result(body, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// GetCategoriesByTnved returns the categories containing a TN VED code.
// A 10-digit code is looked up by its 4-digit group first.
func (s *NKService) GetCategoriesByTnved(ctx context.Context, tnved string) ([]models.NKCategory, error) {
	log.Printf("🔍 Requesting national catalog categories for TN VED %s", tnved)

	if len(tnved) == 10 {
		group := tnved[:4]
		cats, err := s.categories(ctx, group)
		if err != nil {
			// fall through to the full code
			log.Printf("⚠️  Category lookup by group %s failed: %v", group, err)
		}
		if err == nil && len(cats) > 0 {
			log.Printf("✅ Found %d categories by group %s", len(cats), group)
			return cats, nil
		}
	}

	cats, err := s.categories(ctx, tnved)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories for %s: %w", tnved, err)
	}
	if len(cats) == 0 {
		log.Printf("⚠️  No categories found for TN VED %s", tnved)
	}
	return cats, nil
}

// GetAttributes returns the attribute definitions of a category
func (s *NKService) GetAttributes(ctx context.Context, catID int, attrType string) ([]models.NKAttribute, error) {
	query := url.Values{
		"cat_id":    {strconv.Itoa(catID)},
		"attr_type": {attrType},
	}

	body, err := s.do(ctx, http.MethodGet, "/v3/attributes", query, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get attributes for category %d: %w", catID, err)
	}

	var attrs []models.NKAttribute
	if err := s.result(body, &attrs); err != nil {
		return nil, err
	}
	return attrs, nil
}

// GetPreset returns the allowed values published at an attribute's preset_url
func (s *NKService) GetPreset(ctx context.Context, presetURL string) ([]string, error) {
	body, err := s.do(ctx, http.MethodGet, presetURL, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get preset %s: %w", presetURL, err)
	}

	var values []string
	if err := s.result(body, &values); err != nil {
		return nil, err
	}
	return values, nil
}

// SendCard posts a card as a new feed
func (s *NKService) SendCard(ctx context.Context, card models.NKCard) (*models.FeedResult, error) {
	body, err := s.do(ctx, http.MethodPost, "/v3/feed", nil, card)
	if err != nil {
		return nil, fmt.Errorf("failed to send card: %w", err)
	}

	result := &models.FeedResult{}
	if err := s.result(body, result); err != nil {
		return nil, err
	}

	log.Printf("✅ Card %q sent, feed_id=%s", card.GoodName, result.FeedID)
	return result, nil
}

// CheckFeedStatus returns the raw feed-status response
func (s *NKService) CheckFeedStatus(ctx context.Context, feedID string) (json.RawMessage, error) {
	body, err := s.do(ctx, http.MethodGet, "/v3/feed-status", url.Values{"feed_id": {feedID}}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check feed %s: %w", feedID, err)
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("failed to decode feed status: invalid JSON")
	}
	return json.RawMessage(body), nil
}
