package service

import (
	"context"

	"nk-catalog/models"
)

// CatalogServiceInterface defines the contract for catalog rendering and export
type CatalogServiceInterface interface {
	Render(view string, page models.CatalogPage) (string, error)
	RenderError(message string) (string, error)
	GeneratePDF(ctx context.Context) ([]byte, error)
	GeneratePreview(ctx context.Context) ([]byte, error)
}
