// internal/services/order_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dscommerce/dscommerce-backend/internal/database"
	"github.com/dscommerce/dscommerce-backend/internal/models"
	"github.com/dscommerce/dscommerce-backend/internal/utils"
)

type OrderService struct {
	db  *gorm.DB
	now func() time.Time
}

type OrderItemRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

type CreateOrderRequest struct {
	Items []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type ClientView struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type OrderItemView struct {
	ProductID uuid.UUID       `json:"productId"`
	Name      string          `json:"name"`
	ImgURL    string          `json:"imgUrl"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	SubTotal  decimal.Decimal `json:"subTotal"`
}

// OrderView is the read-only projection returned to callers.
type OrderView struct {
	ID     uuid.UUID          `json:"id"`
	Moment time.Time          `json:"moment"`
	Status models.OrderStatus `json:"status"`
	Client ClientView         `json:"client"`
	Items  []OrderItemView    `json:"items"`
	Total  decimal.Decimal    `json:"total"`
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{
		db:  db,
		now: time.Now,
	}
}

// FindByID returns the order when the principal owns it or is an admin.
func (s *OrderService) FindByID(ctx context.Context, principal *models.Principal, id uuid.UUID) (*OrderView, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Preload("Client").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Items.Product").
		First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := ValidateSelfOrAdmin(principal, order.ClientID); err != nil {
		return nil, err
	}

	return newOrderView(&order), nil
}

// ListForClient pages through the principal's own orders, newest first.
func (s *OrderService) ListForClient(ctx context.Context, principal *models.Principal, params utils.PaginationParams) ([]OrderView, int64, error) {
	if principal == nil {
		return nil, 0, ErrUnauthenticated
	}

	query := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("client_id = ?", principal.UserID).
		Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	var orders []models.Order
	err := utils.ApplyPagination(query, params).
		Preload("Client").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Items.Product").
		Order("moment DESC").
		Find(&orders).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch orders: %w", err)
	}

	views := make([]OrderView, 0, len(orders))
	for i := range orders {
		views = append(views, *newOrderView(&orders[i]))
	}
	return views, total, nil
}

// Insert places an order for the principal. Every product is looked up before
// anything is written, each line captures the product's current price, and
// the header and items are committed in one transaction.
func (s *OrderService) Insert(ctx context.Context, principal *models.Principal, req *CreateOrderRequest) (*OrderView, error) {
	if principal == nil {
		return nil, ErrUnauthenticated
	}
	if err := validateOrderItems(req.Items); err != nil {
		return nil, err
	}

	order := &models.Order{
		Moment:   s.now().UTC(),
		Status:   models.OrderStatusWaitingPayment,
		ClientID: principal.UserID,
	}

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		items := make([]models.OrderItem, 0, len(req.Items))
		for i, itemReq := range req.Items {
			var product models.Product
			if err := tx.First(&product, "id = ?", itemReq.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("product %s: %w", itemReq.ProductID, ErrNotFound)
				}
				return fmt.Errorf("failed to load product: %w", err)
			}

			items = append(items, models.OrderItem{
				ProductID: product.ID,
				Position:  i,
				Quantity:  itemReq.Quantity,
				Price:     product.Price,
				Product:   product,
			})
		}

		if err := tx.Omit(clause.Associations).Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.Omit(clause.Associations).Create(&items).Error; err != nil {
			// A product removed after it was read surfaces here.
			if isForeignKeyViolation(err) {
				return fmt.Errorf("order items: %w", ErrNotFound)
			}
			return fmt.Errorf("failed to create order items: %w", err)
		}

		order.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}

	order.Client = models.User{BaseModel: models.BaseModel{ID: principal.UserID}, Name: principal.Name}

	logrus.WithFields(logrus.Fields{
		"order_id":  order.ID,
		"client_id": order.ClientID,
		"items":     len(order.Items),
	}).Info("Order placed")

	return newOrderView(order), nil
}

func validateOrderItems(items []OrderItemRequest) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: order must contain at least one item", ErrValidation)
	}

	seen := make(map[uuid.UUID]struct{}, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: quantity must be positive for product %s", ErrValidation, item.ProductID)
		}
		if _, dup := seen[item.ProductID]; dup {
			return fmt.Errorf("%w: product %s listed more than once", ErrValidation, item.ProductID)
		}
		seen[item.ProductID] = struct{}{}
	}
	return nil
}

func newOrderView(order *models.Order) *OrderView {
	view := &OrderView{
		ID:     order.ID,
		Moment: order.Moment,
		Status: order.Status,
		Client: ClientView{ID: order.ClientID, Name: order.Client.Name},
		Items:  make([]OrderItemView, 0, len(order.Items)),
		Total:  order.Total().Round(2),
	}

	for _, item := range order.Items {
		view.Items = append(view.Items, OrderItemView{
			ProductID: item.ProductID,
			Name:      item.Product.Name,
			ImgURL:    item.Product.ImgURL,
			Price:     item.Price.Round(2),
			Quantity:  item.Quantity,
			SubTotal:  item.SubTotal().Round(2),
		})
	}

	return view
}
