package service

import (
	"context"

	"nk-catalog/models"
)

// SubmissionServiceInterface defines the contract for sending catalog products to the national catalog
type SubmissionServiceInterface interface {
	Preview(ctx context.Context, index int) (*models.NKPreview, error)
	Send(ctx context.Context, index int) (*models.SendResult, error)
	FeedStatus(ctx context.Context, feedID string) (*models.FeedStatus, error)
	DebugCategories(ctx context.Context, tnved string) (*models.CategoryDebug, error)
	List(ctx context.Context, limit int) ([]models.FeedSubmission, error)
}
