package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"nk-catalog/db"
	"nk-catalog/models"
)

// submittedAtLayout has a fixed width so TEXT ordering matches time ordering
const submittedAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

// FeedSubmissionRepository handles database operations for national catalog submissions
type FeedSubmissionRepository struct{}

// NewFeedSubmissionRepository creates a new FeedSubmissionRepository
func NewFeedSubmissionRepository() *FeedSubmissionRepository {
	return &FeedSubmissionRepository{}
}

// Ensure FeedSubmissionRepository implements FeedSubmissionRepositoryInterface
var _ FeedSubmissionRepositoryInterface = (*FeedSubmissionRepository)(nil)

// Create stores a submission, assigning ID and SubmittedAt when they are empty
func (r *FeedSubmissionRepository) Create(ctx context.Context, submission *models.FeedSubmission) error {
	if submission.ID == "" {
		submission.ID = uuid.NewString()
	}
	if submission.SubmittedAt == "" {
		submission.SubmittedAt = time.Now().UTC().Format(submittedAtLayout)
	}

	query := db.Rebind(`
		INSERT INTO nk_feed_submissions
			(id, product_index, product_name, tnved, category_id, feed_id, success, error, status, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)

	_, err := db.DB.ExecContext(ctx, query,
		submission.ID,
		submission.ProductIndex,
		submission.ProductName,
		submission.Tnved,
		submission.CategoryID,
		submission.FeedID,
		submission.Success,
		submission.Error,
		submission.Status,
		submission.SubmittedAt,
	)
	if err != nil {
		log.Printf("❌ CreateFeedSubmission: Error inserting submission for %q: %v", submission.ProductName, err)
		return fmt.Errorf("failed to insert feed submission: %w", err)
	}

	log.Printf("✅ CreateFeedSubmission: id=%s feed_id=%s success=%t", submission.ID, submission.FeedID, submission.Success)
	return nil
}

// UpdateStatusByFeedID stores the latest feed status; reports false when no submission has that feed id
func (r *FeedSubmissionRepository) UpdateStatusByFeedID(ctx context.Context, feedID string, status string) (bool, error) {
	query := db.Rebind(`UPDATE nk_feed_submissions SET status = ? WHERE feed_id = ?`)

	result, err := db.DB.ExecContext(ctx, query, status, feedID)
	if err != nil {
		log.Printf("❌ UpdateFeedStatus: Error updating feed_id=%s: %v", feedID, err)
		return false, fmt.Errorf("failed to update feed status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected > 0, nil
}

// List returns the most recent submissions first
func (r *FeedSubmissionRepository) List(ctx context.Context, limit int) ([]models.FeedSubmission, error) {
	if limit <= 0 {
		limit = 50
	}

	query := db.Rebind(`
		SELECT id, product_index, product_name, tnved, category_id, feed_id, success, error, status, submitted_at
		FROM nk_feed_submissions
		ORDER BY submitted_at DESC
		LIMIT ?
	`)

	rows, err := db.DB.QueryContext(ctx, query, limit)
	if err != nil {
		log.Printf("❌ ListFeedSubmissions: Error querying submissions: %v", err)
		return nil, fmt.Errorf("failed to query feed submissions: %w", err)
	}
	defer rows.Close()

	submissions := []models.FeedSubmission{}
	for rows.Next() {
		var s models.FeedSubmission
		if err := rows.Scan(
			&s.ID,
			&s.ProductIndex,
			&s.ProductName,
			&s.Tnved,
			&s.CategoryID,
			&s.FeedID,
			&s.Success,
			&s.Error,
			&s.Status,
			&s.SubmittedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan feed submission: %w", err)
		}
		submissions = append(submissions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate feed submissions: %w", err)
	}
	return submissions, nil
}
