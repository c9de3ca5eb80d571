package service

import (
	"context"

	"nk-catalog/models"
)

// MoySkladServiceInterface defines the contract for МойСклад API operations
type MoySkladServiceInterface interface {
	TokenPresent() bool
	TestConnection(ctx context.Context) error
	GetAssortment(ctx context.Context, limit, offset int) (*models.AssortmentResponse, error)
	GetAllAssortment(ctx context.Context) ([]models.AssortmentItem, error)
}
