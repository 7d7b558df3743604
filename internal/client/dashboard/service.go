package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iudanet/koishop/internal/client/storage"
	"github.com/iudanet/koishop/internal/models"
	"github.com/iudanet/koishop/pkg/api"
)

// Client is the part of the server API the dashboard needs
type Client interface {
	RevenueByDay(ctx context.Context, start, end time.Time) ([]api.Revenue, error)
	RevenueByMonth(ctx context.Context, year int) ([]api.Revenue, error)
}

// Authorizer checks the role of the signed-in user
type Authorizer interface {
	RequireRole(ctx context.Context, roles ...string) (*storage.Session, error)
}

// Report is a revenue series with its sum
type Report struct {
	Buckets []api.Revenue
	Total   decimal.Decimal
}

// Service выдает отчеты о выручке (только admin)
type Service struct {
	client Client
	authz  Authorizer
}

// NewService создает сервис отчетов
func NewService(client Client, authz Authorizer) *Service {
	return &Service{client: client, authz: authz}
}

// Daily возвращает выручку по дням, границы периода включительно
func (s *Service) Daily(ctx context.Context, start, end time.Time) (*Report, error) {
	if _, err := s.authz.RequireRole(ctx, models.RoleAdmin); err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("end date %s is before start date %s", end.Format(time.DateOnly), start.Format(time.DateOnly))
	}

	buckets, err := s.client.RevenueByDay(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return newReport(buckets), nil
}

// Monthly возвращает выручку по месяцам за год
func (s *Service) Monthly(ctx context.Context, year int) (*Report, error) {
	if _, err := s.authz.RequireRole(ctx, models.RoleAdmin); err != nil {
		return nil, err
	}
	if year < 1 {
		return nil, fmt.Errorf("invalid year %d", year)
	}

	buckets, err := s.client.RevenueByMonth(ctx, year)
	if err != nil {
		return nil, err
	}
	return newReport(buckets), nil
}

func newReport(buckets []api.Revenue) *Report {
	total := decimal.Zero
	for _, b := range buckets {
		total = total.Add(b.Revenue)
	}
	return &Report{Buckets: buckets, Total: total}
}
