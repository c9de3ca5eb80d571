package service

import (
	"context"

	"nk-catalog/models"
)

// ProductValidatorInterface defines the contract for checking products against national catalog dictionaries
type ProductValidatorInterface interface {
	Validate(ctx context.Context, products []models.Product)
}
