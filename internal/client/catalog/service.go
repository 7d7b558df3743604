package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/iudanet/koishop/internal/client/storage"
	"github.com/iudanet/koishop/internal/models"
	"github.com/iudanet/koishop/pkg/api"
)

// Client is the part of the server API the catalog needs
type Client interface {
	ListProducts(ctx context.Context) ([]api.Product, error)
	SearchProducts(ctx context.Context, params api.SearchParams) ([]api.Product, error)
	Categories(ctx context.Context) ([]api.Category, error)
	GetProduct(ctx context.Context, id string) (*api.Product, error)
	CreateProduct(ctx context.Context, req api.ProductRequest) (*api.Product, error)
	UpdateProduct(ctx context.Context, id string, req api.ProductRequest) (*api.Product, error)
}

// Authorizer checks the role of the signed-in user
type Authorizer interface {
	RequireRole(ctx context.Context, roles ...string) (*storage.Session, error)
}

// Service предоставляет операции с каталогом карпов
type Service struct {
	client Client
	authz  Authorizer
	logger *slog.Logger
}

// NewService создает сервис каталога
func NewService(client Client, authz Authorizer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{client: client, authz: authz, logger: logger}
}

// List возвращает весь каталог
func (s *Service) List(ctx context.Context) ([]api.Product, error) {
	return s.client.ListProducts(ctx)
}

// Search ищет по имени, типу и сортировке. Пустой запрос равен List.
func (s *Service) Search(ctx context.Context, params api.SearchParams) ([]api.Product, error) {
	params.Name = strings.TrimSpace(params.Name)
	if params.Name == "" && params.Type == "" && params.Sort == "" {
		return s.List(ctx)
	}
	return s.client.SearchProducts(ctx, params)
}

// Categories возвращает список категорий
func (s *Service) Categories(ctx context.Context) ([]api.Category, error) {
	return s.client.Categories(ctx)
}

// Get возвращает карточку товара
func (s *Service) Get(ctx context.Context, id string) (*api.Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("product id is empty")
	}
	return s.client.GetProduct(ctx, id)
}

// Create добавляет товар в каталог (staff, admin)
func (s *Service) Create(ctx context.Context, form models.ProductForm) (*api.Product, error) {
	if _, err := s.authz.RequireRole(ctx, models.RoleStaff, models.RoleAdmin); err != nil {
		return nil, err
	}
	if err := form.Validate(); err != nil {
		return nil, err
	}

	product, err := s.client.CreateProduct(ctx, form.Request())
	if err != nil {
		return nil, err
	}
	s.logger.Info("product created", "product_id", product.ID, "name", product.Name)
	return product, nil
}

// Update изменяет товар (staff, admin)
func (s *Service) Update(ctx context.Context, id string, form models.ProductForm) (*api.Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("product id is empty")
	}
	if _, err := s.authz.RequireRole(ctx, models.RoleStaff, models.RoleAdmin); err != nil {
		return nil, err
	}
	if err := form.Validate(); err != nil {
		return nil, err
	}

	product, err := s.client.UpdateProduct(ctx, id, form.Request())
	if err != nil {
		return nil, err
	}
	s.logger.Info("product updated", "product_id", id)
	return product, nil
}
