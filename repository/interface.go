package repository

import (
	"context"

	"nk-catalog/models"
)

// FeedSubmissionRepositoryInterface defines the contract for storing national catalog submissions
type FeedSubmissionRepositoryInterface interface {
	Create(ctx context.Context, submission *models.FeedSubmission) error
	UpdateStatusByFeedID(ctx context.Context, feedID string, status string) (bool, error)
	List(ctx context.Context, limit int) ([]models.FeedSubmission, error)
}
