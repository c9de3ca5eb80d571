package service

import (
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

const moySkladService = "moysklad"

// MoySkladService handles МойСклад JSON API operations
type MoySkladService struct {
	client    *http.Client
	baseURL   string
	token     string
	pageLimit int
}

// NewMoySkladService creates a new MoySkladService instance
func NewMoySkladService(cfg config.MoySkladConfig) *MoySkladService {
	return &MoySkladService{
		client:    &http.Client{Timeout: cfg.Timeout},
		baseURL:   strings.TrimSuffix(cfg.BaseURL, "/"),
		token:     cfg.Token,
		pageLimit: cfg.PageLimit,
	}
}

// Ensure MoySkladService implements MoySkladServiceInterface
var _ MoySkladServiceInterface = (*MoySkladService)(nil)

// TokenPresent reports whether an API token is configured
func (s *MoySkladService) TokenPresent() bool {
	return s.token != ""
}

func (s *MoySkladService) get(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	endpoint := s.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Accept", "application/json;charset=utf-8")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to request %s: %w", path, err)
	}
	return resp, nil
}

// TestConnection checks the token against the employee context endpoint
func (s *MoySkladService) TestConnection(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveUpstream(moySkladService, start, err) }()

	resp, err := s.get(ctx, "/context/employee", nil)
	if err != nil {
		log.Printf("❌ TestConnection: %v", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		log.Printf("❌ TestConnection: authorization failed with status %d", resp.StatusCode)
		return &APIError{Service: moySkladService, StatusCode: resp.StatusCode, Body: string(body)}
	}

	log.Printf("✅ TestConnection: authorization successful")
	return nil
}

// GetAssortment fetches one page of the assortment with attributes and characteristics expanded
func (s *MoySkladService) GetAssortment(ctx context.Context, limit, offset int) (page *models.AssortmentResponse, err error) {
	start := time.Now()
	defer func() { metrics.ObserveUpstream(moySkladService, start, err) }()

	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))
	query.Set("expand", "attributes,characteristics")

	resp, err := s.get(ctx, "/entity/assortment", query)
	if err != nil {
		log.Printf("❌ GetAssortment: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		log.Printf("❌ GetAssortment: unauthorized, check MS_TOKEN")
		return nil, ErrUnauthorized
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		log.Printf("❌ GetAssortment: status %d: %s", resp.StatusCode, body)
		return nil, &APIError{Service: moySkladService, StatusCode: resp.StatusCode, Body: string(body)}
	}

	page = &models.AssortmentResponse{}
	if err := json.NewDecoder(resp.Body).Decode(page); err != nil {
		return nil, fmt.Errorf("failed to decode assortment: %w", err)
	}

	log.Printf("📦 GetAssortment: offset=%d received %d rows", offset, len(page.Rows))
	return page, nil
}

// GetAllAssortment tests the connection, then fetches every page until a short page
func (s *MoySkladService) GetAllAssortment(ctx context.Context) ([]models.AssortmentItem, error) {
	if err := s.TestConnection(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to МойСклад: %w", err)
	}

	var items []models.AssortmentItem
	for offset := 0; ; offset += s.pageLimit {
		page, err := s.GetAssortment(ctx, s.pageLimit, offset)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch assortment page at offset %d: %w", offset, err)
		}

		items = append(items, page.Rows...)
		if len(page.Rows) < s.pageLimit {
			break
		}
	}

	log.Printf("📦 GetAllAssortment: loaded %d rows", len(items))
	return items, nil
}
