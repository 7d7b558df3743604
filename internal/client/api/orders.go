package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/iudanet/koishop/pkg/api"
)

// CreateOrder создает заказ. idempotencyKey передается в заголовке Idempotency-Key,
// чтобы повтор после обновления токена не создал второй заказ.
func (c *Client) CreateOrder(ctx context.Context, req api.OrderRequest, idempotencyKey string) (*api.OrderResponse, error) {
	rc, err := newRequest(http.MethodPost, "/orders", req)
	if err != nil {
		return nil, err
	}
	if idempotencyKey != "" {
		rc.header = http.Header{}
		rc.header.Set("Idempotency-Key", idempotencyKey)
	}

	var resp api.OrderResponse
	if err := c.do(ctx, rc, &resp); err != nil {
		return nil, fmt.Errorf("create order request failed: %w", err)
	}
	return &resp, nil
}

// OrderHistory возвращает историю заказов пользователя
func (c *Client) OrderHistory(ctx context.Context, userID string) ([]api.Order, error) {
	query := url.Values{}
	query.Set("userId", userID)

	var orders []api.Order
	if err := c.doRequest(ctx, http.MethodGet, "/orders/history", query, nil, &orders); err != nil {
		return nil, fmt.Errorf("order history request failed: %w", err)
	}
	return orders, nil
}

// OrdersByStatus возвращает заказы с указанным статусом (staff)
func (c *Client) OrdersByStatus(ctx context.Context, status string) ([]api.Order, error) {
	query := url.Values{}
	query.Set("status", status)

	var orders []api.Order
	if err := c.doRequest(ctx, http.MethodGet, "/orders", query, nil, &orders); err != nil {
		return nil, fmt.Errorf("orders by status request failed: %w", err)
	}
	return orders, nil
}

// CancelOrder отменяет заказ покупателем
func (c *Client) CancelOrder(ctx context.Context, req api.CancelOrderRequest) error {
	if err := c.doRequest(ctx, http.MethodPost, "/orders/cancel", nil, req, nil); err != nil {
		return fmt.Errorf("cancel order request failed: %w", err)
	}
	return nil
}

// ConfirmOrder подтверждает заказ (staff)
func (c *Client) ConfirmOrder(ctx context.Context, orderID string) error {
	if err := c.doRequest(ctx, http.MethodPost, "/orders/confirm", nil, api.OrderIDRequest{OrderID: orderID}, nil); err != nil {
		return fmt.Errorf("confirm order request failed: %w", err)
	}
	return nil
}

// CompleteOrder завершает заказ (staff)
func (c *Client) CompleteOrder(ctx context.Context, orderID string) error {
	if err := c.doRequest(ctx, http.MethodPost, "/orders/completed", nil, api.OrderIDRequest{OrderID: orderID}, nil); err != nil {
		return fmt.Errorf("complete order request failed: %w", err)
	}
	return nil
}

// AddComment оставляет отзыв
func (c *Client) AddComment(ctx context.Context, req api.CommentRequest) error {
	if err := c.doRequest(ctx, http.MethodPost, "/comment", nil, req, nil); err != nil {
		return fmt.Errorf("add comment request failed: %w", err)
	}
	return nil
}

// RevenueByDay возвращает выручку по дням за период (admin)
func (c *Client) RevenueByDay(ctx context.Context, start, end time.Time) ([]api.Revenue, error) {
	query := url.Values{}
	query.Set("startTime", start.Format(time.DateOnly))
	query.Set("endTime", end.Format(time.DateOnly))

	var revenue []api.Revenue
	if err := c.doRequest(ctx, http.MethodGet, "/dashboard/daily", query, nil, &revenue); err != nil {
		return nil, fmt.Errorf("daily revenue request failed: %w", err)
	}
	return revenue, nil
}

// RevenueByMonth возвращает выручку по месяцам за год (admin)
func (c *Client) RevenueByMonth(ctx context.Context, year int) ([]api.Revenue, error) {
	query := url.Values{}
	query.Set("year", fmt.Sprintf("%d", year))

	var revenue []api.Revenue
	if err := c.doRequest(ctx, http.MethodGet, "/dashboard/month", query, nil, &revenue); err != nil {
		return nil, fmt.Errorf("monthly revenue request failed: %w", err)
	}
	return revenue, nil
}
