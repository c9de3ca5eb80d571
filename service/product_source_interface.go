package service

import (
	"context"

	"nk-catalog/models"
)

// ProductSourceInterface defines the contract for loading catalog products
type ProductSourceInterface interface {
	CatalogProducts(ctx context.Context) (models.CatalogPage, error)
	AllProducts(ctx context.Context, limit int) (models.CatalogPage, error)
	ProductAt(ctx context.Context, index int) (models.Product, error)
	Analyze(ctx context.Context, limit int) (*models.AssortmentAnalysis, error)
}
