package service

import (
	"context"
	"encoding/json"

	"nk-catalog/models"
)

// NKServiceInterface defines the contract for national catalog API operations
type NKServiceInterface interface {
	GetCategoriesByTnved(ctx context.Context, tnved string) ([]models.NKCategory, error)
	GetAttributes(ctx context.Context, catID int, attrType string) ([]models.NKAttribute, error)
	GetPreset(ctx context.Context, presetURL string) ([]string, error)
	SendCard(ctx context.Context, card models.NKCard) (*models.FeedResult, error)
	CheckFeedStatus(ctx context.Context, feedID string) (json.RawMessage, error)
}
