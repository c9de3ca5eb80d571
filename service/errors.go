package service

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized is returned when МойСклад rejects the token
	ErrUnauthorized = errors.New("unauthorized: check MS_TOKEN")
	// ErrProductNotFound is returned for a product index outside the catalog
	ErrProductNotFound = errors.New("product not found")
	// ErrMissingName is returned when a card is sent for a product without a name
	ErrMissingName = errors.New("product has no name")
	// ErrMissingTnved is returned when a card is sent for a product without a TN VED code
	ErrMissingTnved = errors.New("product has no TN VED code")
)

// APIError is a non-success response from an external API
type APIError struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s API error %d: %s", e.Service, e.StatusCode, e.Body)
}
