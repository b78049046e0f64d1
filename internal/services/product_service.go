// internal/services/product_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dscommerce/dscommerce-backend/internal/database"
	"github.com/dscommerce/dscommerce-backend/internal/models"
	"github.com/dscommerce/dscommerce-backend/internal/utils"
)

type ProductService struct {
	db *gorm.DB
}

type CategoryRef struct {
	ID uuid.UUID `json:"id" validate:"required"`
}

type ProductRequest struct {
	Name        string          `json:"name" validate:"required,min=3,max=80"`
	Description string          `json:"description" validate:"required,min=10"`
	Price       decimal.Decimal `json:"price" validate:"gt=0,price"`
	ImgURL      string          `json:"imgUrl" validate:"omitempty,url,max=512"`
	Categories  []CategoryRef   `json:"categories" validate:"required,min=1,dive"`
}

var productSortFields = []string{"name", "price", "created_at"}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).Preload("Categories").First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

// SearchProducts matches params.Search as a case-insensitive substring of the
// product name. An empty search lists the whole catalog.
func (s *ProductService) SearchProducts(ctx context.Context, params utils.PaginationParams) ([]models.Product, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Product{})
	if params.Search != "" {
		query = query.Where("UPPER(name) LIKE UPPER(?)", "%"+params.Search+"%")
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	var products []models.Product
	paged := utils.ApplySort(utils.ApplyPagination(query, params), params, productSortFields, "name")
	if err := paged.Preload("Categories").Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to search products: %w", err)
	}

	return products, total, nil
}

func (s *ProductService) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("database error: %w", err)
	}
	return count > 0, nil
}

func (s *ProductService) CreateProduct(ctx context.Context, req *ProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	product := &models.Product{}
	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		categories, err := loadCategories(tx, req.Categories)
		if err != nil {
			return err
		}

		copyRequestToProduct(req, product)
		product.Categories = categories
		if err := tx.Create(product).Error; err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return product, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, req *ProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	var product models.Product
	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if err := tx.First(&product, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("product %s: %w", id, ErrNotFound)
			}
			return fmt.Errorf("database error: %w", err)
		}

		categories, err := loadCategories(tx, req.Categories)
		if err != nil {
			return err
		}

		copyRequestToProduct(req, &product)
		if err := tx.Omit(clause.Associations).Save(&product).Error; err != nil {
			return fmt.Errorf("failed to update product: %w", err)
		}
		if err := tx.Model(&product).Association("Categories").Replace(categories); err != nil {
			return fmt.Errorf("failed to update product categories: %w", err)
		}
		product.Categories = categories
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &product, nil
}

// DeleteProduct removes the product and its category links. A product that is
// referenced by an order item cannot be removed.
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("product %s: %w", id, ErrNotFound)
			}
			return fmt.Errorf("database error: %w", err)
		}

		if err := tx.Model(&product).Association("Categories").Clear(); err != nil {
			return fmt.Errorf("failed to unlink categories: %w", err)
		}

		if err := tx.Delete(&product).Error; err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("product %s: %w", id, ErrIntegrityViolation)
			}
			return fmt.Errorf("failed to delete product: %w", err)
		}
		return nil
	})
}

// SetImage points the product at an uploaded image.
func (s *ProductService) SetImage(ctx context.Context, id uuid.UUID, url string) (*models.Product, error) {
	result := s.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Update("img_url", url)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update product image: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	return s.GetProduct(ctx, id)
}

func copyRequestToProduct(req *ProductRequest, product *models.Product) {
	product.Name = req.Name
	product.Description = req.Description
	product.Price = req.Price
	product.ImgURL = req.ImgURL
}

func loadCategories(tx *gorm.DB, refs []CategoryRef) ([]models.Category, error) {
	ids := make([]uuid.UUID, 0, len(refs))
	seen := make(map[uuid.UUID]struct{}, len(refs))
	for _, ref := range refs {
		if _, dup := seen[ref.ID]; dup {
			continue
		}
		seen[ref.ID] = struct{}{}
		ids = append(ids, ref.ID)
	}

	var categories []models.Category
	if err := tx.Where("id IN ?", ids).Order("name").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	if len(categories) != len(ids) {
		found := make(map[uuid.UUID]struct{}, len(categories))
		for _, c := range categories {
			found[c.ID] = struct{}{}
		}
		for _, id := range ids {
			if _, ok := found[id]; !ok {
				return nil, fmt.Errorf("category %s: %w", id, ErrNotFound)
			}
		}
	}

	return categories, nil
}
