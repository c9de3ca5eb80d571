package controller

import (
	"context"

	"github.com/stretchr/testify/mock"

	"nk-catalog/models"
)

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

type mockValidator struct {
	mock.Mock
}

func (m *mockValidator) Validate(ctx context.Context, products []models.Product) {
	m.Called(ctx, products)
}

type mockCatalogService struct {
	mock.Mock
}

func (m *mockCatalogService) Render(view string, page models.CatalogPage) (string, error) {
	args := m.Called(view, page)
	return args.String(0), args.Error(1)
}

func (m *mockCatalogService) RenderError(message string) (string, error) {
	args := m.Called(message)
	return args.String(0), args.Error(1)
}

func (m *mockCatalogService) GeneratePDF(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *mockCatalogService) GeneratePreview(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
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

type mockSubmissions struct {
	mock.Mock
}

func (m *mockSubmissions) Preview(ctx context.Context, index int) (*models.NKPreview, error) {
	args := m.Called(ctx, index)
	preview, _ := args.Get(0).(*models.NKPreview)
	return preview, args.Error(1)
}

func (m *mockSubmissions) Send(ctx context.Context, index int) (*models.SendResult, error) {
	args := m.Called(ctx, index)
	result, _ := args.Get(0).(*models.SendResult)
	return result, args.Error(1)
}

func (m *mockSubmissions) FeedStatus(ctx context.Context, feedID string) (*models.FeedStatus, error) {
	args := m.Called(ctx, feedID)
	status, _ := args.Get(0).(*models.FeedStatus)
	return status, args.Error(1)
}

func (m *mockSubmissions) DebugCategories(ctx context.Context, tnved string) (*models.CategoryDebug, error) {
	args := m.Called(ctx, tnved)
	debug, _ := args.Get(0).(*models.CategoryDebug)
	return debug, args.Error(1)
}

func (m *mockSubmissions) List(ctx context.Context, limit int) ([]models.FeedSubmission, error) {
	args := m.Called(ctx, limit)
	subs, _ := args.Get(0).([]models.FeedSubmission)
	return subs, args.Error(1)
}
