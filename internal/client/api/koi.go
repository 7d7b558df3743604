package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/iudanet/koishop/pkg/api"
)

// ListProducts возвращает весь каталог
func (c *Client) ListProducts(ctx context.Context) ([]api.Product, error) {
	var products []api.Product
	if err := c.doRequest(ctx, http.MethodGet, "/koi", nil, nil, &products); err != nil {
		return nil, fmt.Errorf("list products request failed: %w", err)
	}
	return products, nil
}

// SearchProducts ищет товары по имени, типу и сортировке
func (c *Client) SearchProducts(ctx context.Context, params api.SearchParams) ([]api.Product, error) {
	query := url.Values{}
	query.Set("name", params.Name)
	if params.Type != "" {
		query.Set("type", params.Type)
	}
	if params.Sort != "" {
		query.Set("sort", params.Sort)
	}

	var products []api.Product
	if err := c.doRequest(ctx, http.MethodGet, "/koi/search", query, nil, &products); err != nil {
		return nil, fmt.Errorf("search products request failed: %w", err)
	}
	return products, nil
}

// Categories возвращает список категорий
func (c *Client) Categories(ctx context.Context) ([]api.Category, error) {
	var categories []api.Category
	if err := c.doRequest(ctx, http.MethodGet, "/koi/category", nil, nil, &categories); err != nil {
		return nil, fmt.Errorf("categories request failed: %w", err)
	}
	return categories, nil
}

// GetProduct возвращает карточку товара
func (c *Client) GetProduct(ctx context.Context, id string) (*api.Product, error) {
	var product api.Product
	if err := c.doRequest(ctx, http.MethodGet, "/koi/"+url.PathEscape(id), nil, nil, &product); err != nil {
		return nil, fmt.Errorf("get product request failed: %w", err)
	}
	return &product, nil
}

// CreateProduct создает товар (staff/admin)
func (c *Client) CreateProduct(ctx context.Context, req api.ProductRequest) (*api.Product, error) {
	var product api.Product
	if err := c.doRequest(ctx, http.MethodPost, "/koi", nil, req, &product); err != nil {
		return nil, fmt.Errorf("create product request failed: %w", err)
	}
	return &product, nil
}

// UpdateProduct обновляет товар (staff/admin)
func (c *Client) UpdateProduct(ctx context.Context, id string, req api.ProductRequest) (*api.Product, error) {
	var product api.Product
	if err := c.doRequest(ctx, http.MethodPut, "/koi/"+url.PathEscape(id), nil, req, &product); err != nil {
		return nil, fmt.Errorf("update product request failed: %w", err)
	}
	return &product, nil
}
