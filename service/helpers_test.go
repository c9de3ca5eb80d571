package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"nk-catalog/config"
	"nk-catalog/models"
)

func jsonUnmarshal(data string, v any) error {
	return json.Unmarshal([]byte(data), v)
}

func testSettings(t *testing.T) *config.CatalogSettings {
	t.Helper()
	settings, err := config.DefaultCatalogSettings()
	require.NoError(t, err)
	return settings
}

type mockMoySklad struct {
	mock.Mock
}

func (m *mockMoySklad) TokenPresent() bool {
	return m.Called().Bool(0)
}

func (m *mockMoySklad) TestConnection(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockMoySklad) GetAssortment(ctx context.Context, limit, offset int) (*models.AssortmentResponse, error) {
	args := m.Called(ctx, limit, offset)
	page, _ := args.Get(0).(*models.AssortmentResponse)
	return page, args.Error(1)
}

func (m *mockMoySklad) GetAllAssortment(ctx context.Context) ([]models.AssortmentItem, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]models.AssortmentItem)
	return items, args.Error(1)
}

type mockNK struct {
	mock.Mock
}

func (m *mockNK) GetCategoriesByTnved(ctx context.Context, tnved string) ([]models.NKCategory, error) {
	args := m.Called(ctx, tnved)
	cats, _ := args.Get(0).([]models.NKCategory)
	return cats, args.Error(1)
}

func (m *mockNK) GetAttributes(ctx context.Context, catID int, attrType string) ([]models.NKAttribute, error) {
	args := m.Called(ctx, catID, attrType)
	attrs, _ := args.Get(0).([]models.NKAttribute)
	return attrs, args.Error(1)
}

func (m *mockNK) GetPreset(ctx context.Context, presetURL string) ([]string, error) {
	args := m.Called(ctx, presetURL)
	values, _ := args.Get(0).([]string)
	return values, args.Error(1)
}

func (m *mockNK) SendCard(ctx context.Context, card models.NKCard) (*models.FeedResult, error) {
	args := m.Called(ctx, card)
	result, _ := args.Get(0).(*models.FeedResult)
	return result, args.Error(1)
}

func (m *mockNK) CheckFeedStatus(ctx context.Context, feedID string) (json.RawMessage, error) {
	args := m.Called(ctx, feedID)
	raw, _ := args.Get(0).(json.RawMessage)
	return raw, args.Error(1)
}

type mockProductSource struct {
	mock.Mock
}

func (m *mockProductSource) CatalogProducts(ctx context.Context) (models.CatalogPage, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.CatalogPage), args.Error(1)
}

func (m *mockProductSource) AllProducts(ctx context.Context, limit int) (models.CatalogPage, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).(models.CatalogPage), args.Error(1)
}

func (m *mockProductSource) ProductAt(ctx context.Context, index int) (models.Product, error) {
	args := m.Called(ctx, index)
	return args.Get(0).(models.Product), args.Error(1)
}

func (m *mockProductSource) Analyze(ctx context.Context, limit int) (*models.AssortmentAnalysis, error) {
	args := m.Called(ctx, limit)
	analysis, _ := args.Get(0).(*models.AssortmentAnalysis)
	return analysis, args.Error(1)
}

type mockSubmissionRepo struct {
	mock.Mock
}

func (m *mockSubmissionRepo) Create(ctx context.Context, submission *models.FeedSubmission) error {
	return m.Called(ctx, submission).Error(0)
}

func (m *mockSubmissionRepo) UpdateStatusByFeedID(ctx context.Context, feedID string, status string) (bool, error) {
	args := m.Called(ctx, feedID, status)
	return args.Bool(0), args.Error(1)
}

func (m *mockSubmissionRepo) List(ctx context.Context, limit int) ([]models.FeedSubmission, error) {
	args := m.Called(ctx, limit)
	subs, _ := args.Get(0).([]models.FeedSubmission)
	return subs, args.Error(1)
}

type mockValidator struct {
	mock.Mock
}

func (m *mockValidator) Validate(ctx context.Context, products []models.Product) {
	m.Called(ctx, products)
}
