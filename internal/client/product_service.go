package client

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/tai160903/viet-coffee-server/internal/product"
)

// ProductService is the storefront's read side of the catalog.
type ProductService struct {
	client *Client
}

func NewProductService(client *Client) *ProductService {
	return &ProductService{client: client}
}

// GetProducts returns the catalog, or an empty slice when the call fails.
// The storefront grid renders whatever it gets; a broken catalog endpoint
// shows an empty shelf, not an error page.
func (s *ProductService) GetProducts(ctx context.Context) []product.Product {
	var products []product.Product
	if err := s.client.Do(ctx, http.MethodGet, "/api/v1/products", nil, &products); err != nil {
		log.Error().Err(err).Msg("client: failed to fetch products")
		return []product.Product{}
	}

	if products == nil {
		return []product.Product{}
	}

	return products
}

// GetProduct fetches one product; unlike the listing, the detail page needs
// the error to decide what to render.
func (s *ProductService) GetProduct(ctx context.Context, id string) (*product.Product, error) {
	var p product.Product
	if err := s.client.Do(ctx, http.MethodGet, "/api/v1/products/"+id, nil, &p); err != nil {
		return nil, err
	}

	return &p, nil
}
