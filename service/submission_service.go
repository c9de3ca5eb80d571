package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"nk-catalog/models"
	"nk-catalog/repository"
)

// requiredAttributesSample is how many mandatory attributes DebugCategories returns
const requiredAttributesSample = 10

// SubmissionService builds national catalog cards for catalog products, sends them
// and records every attempt
type SubmissionService struct {
	source    ProductSourceInterface
	nk        NKServiceInterface
	resolver  *CategoryResolver
	builder   *CardBuilder
	validator ProductValidatorInterface
	repo      repository.FeedSubmissionRepositoryInterface
}

// NewSubmissionService creates a new SubmissionService
func NewSubmissionService(
	source ProductSourceInterface,
	nk NKServiceInterface,
	resolver *CategoryResolver,
	builder *CardBuilder,
	validator ProductValidatorInterface,
	repo repository.FeedSubmissionRepositoryInterface,
) *SubmissionService {
	return &SubmissionService{
		source:    source,
		nk:        nk,
		resolver:  resolver,
		builder:   builder,
		validator: validator,
		repo:      repo,
	}
}

// Ensure SubmissionService implements SubmissionServiceInterface
var _ SubmissionServiceInterface = (*SubmissionService)(nil)

// Preview returns the product at index, checked against the national catalog
// dictionaries, together with the card that would be sent
func (s *SubmissionService) Preview(ctx context.Context, index int) (*models.NKPreview, error) {
	product, err := s.source.ProductAt(ctx, index)
	if err != nil {
		return nil, err
	}

	checked := []models.Product{product}
	s.validator.Validate(ctx, checked)
	product = checked[0]

	card := s.builder.Build(ctx, product)
	return &models.NKPreview{
		ProductData: product,
		NKCardData:  card,
		CategoryID:  card.Categories[0],
	}, nil
}

// Send submits the card of the product at index. A failed delivery is reported
// in the result, not as an error. Every attempt answered by the national catalog
// is recorded.
func (s *SubmissionService) Send(ctx context.Context, index int) (*models.SendResult, error) {
	product, err := s.source.ProductAt(ctx, index)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(product.Name.String())
	if name == "" {
		return nil, ErrMissingName
	}
	if product.Tnved.IsEmpty() {
		return nil, ErrMissingTnved
	}

	card := s.builder.Build(ctx, product)
	submission := &models.FeedSubmission{
		ProductIndex: index,
		ProductName:  name,
		Tnved:        card.Tnved,
		CategoryID:   card.Categories[0],
	}

	result := &models.SendResult{ProductName: name}
	feed, err := s.nk.SendCard(ctx, card)
	if err != nil {
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			// the request never reached the national catalog, nothing to record
			log.Printf("❌ Send: card %q not delivered: %v", name, err)
			result.Error = err.Error()
			return result, nil
		}
		log.Printf("❌ Send: card %q rejected: %v", name, err)
		result.Error = apiErr.Body
		result.StatusCode = apiErr.StatusCode
		submission.Error = result.Error
	} else {
		result.Success = true
		result.FeedID = feed.FeedID.String()
		result.Message = fmt.Sprintf("Карточка \"%s\" отправлена в НК", name)
		submission.Success = true
		submission.FeedID = result.FeedID
	}

	if err := s.repo.Create(ctx, submission); err != nil {
		log.Printf("⚠️  Send: submission for %q not recorded: %v", name, err)
	}
	return result, nil
}

// FeedStatus fetches the processing status of a feed and stores it on the matching submission
func (s *SubmissionService) FeedStatus(ctx context.Context, feedID string) (*models.FeedStatus, error) {
	data, err := s.nk.CheckFeedStatus(ctx, feedID)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return &models.FeedStatus{Success: false, Error: apiErr.Body}, nil
		}
		return nil, err
	}

	found, err := s.repo.UpdateStatusByFeedID(ctx, feedID, string(data))
	if err != nil {
		log.Printf("⚠️  FeedStatus: status of %s not recorded: %v", feedID, err)
	} else if !found {
		log.Debugf("FeedStatus: feed %s was not sent by this service", feedID)
	}

	return &models.FeedStatus{Success: true, Data: data}, nil
}

// DebugCategories explains how a TN VED code maps to a national catalog category
func (s *SubmissionService) DebugCategories(ctx context.Context, tnved string) (*models.CategoryDebug, error) {
	cats, err := s.nk.GetCategoriesByTnved(ctx, tnved)
	if err != nil {
		return nil, err
	}

	selected := s.resolver.ForTnved(ctx, tnved)

	required, err := s.nk.GetAttributes(ctx, selected, AttrTypeMandatory)
	if err != nil {
		log.Printf("⚠️  DebugCategories: attributes of %d unavailable: %v", selected, err)
		required = nil
	}
	if len(required) > requiredAttributesSample {
		required = required[:requiredAttributesSample]
	}

	if cats == nil {
		cats = []models.NKCategory{}
	}
	if required == nil {
		required = []models.NKAttribute{}
	}
	return &models.CategoryDebug{
		Tnved:              tnved,
		Categories:         cats,
		SelectedCategory:   selected,
		RequiredAttributes: required,
	}, nil
}

// List returns the most recent submissions
func (s *SubmissionService) List(ctx context.Context, limit int) ([]models.FeedSubmission, error) {
	submissions, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return submissions, nil
}
