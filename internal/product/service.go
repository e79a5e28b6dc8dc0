package product

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Lister is the listing read path; satisfied by both the repository and the
// redis read-through cache.
type Lister interface {
	List(ctx context.Context) ([]Product, error)
}

type Service interface {
	ListProducts(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
}

type service struct {
	lister Lister
	repo   Repository
}

func NewService(lister Lister, repo Repository) Service {
	return &service{lister: lister, repo: repo}
}

func (s *service) ListProducts(ctx context.Context) ([]Product, error) {
	products, err := s.lister.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to list products")
		return nil, fmt.Errorf("service: failed to list products: %w", err)
	}

	return products, nil
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			log.Warn().Str("product_id", id).Msg("service: product not found")
			return nil, ErrProductNotFound
		}

		log.Error().Err(err).Str("product_id", id).Msg("service: failed to fetch product")
		return nil, fmt.Errorf("service: failed to fetch product: %w", err)
	}

	return p, nil
}
