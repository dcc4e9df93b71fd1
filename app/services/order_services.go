package services

import (
	"context"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/huyvng/storedash/app/models"
	"github.com/huyvng/storedash/app/repositories"
	"github.com/huyvng/storedash/config"
	"github.com/huyvng/storedash/pkg/collection"
	"github.com/huyvng/storedash/pkg/event"
	"github.com/huyvng/storedash/pkg/logger"
)

// EventLowStock fires after an order leaves a product at or below the
// restock threshold. The payload is a LowStockAlert.
const EventLowStock = "product.low_stock"

const lowStockThreshold = 5

// LowStockAlert is the EventLowStock payload.
type LowStockAlert struct {
	ProductID string
	Name      string
	Remaining int
}

// OrderStore is what the order service needs from order persistence.
type OrderStore interface {
	List(ctx context.Context, filter repositories.OrderFilter, skip, limit int64) ([]models.Order, int64, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	Create(ctx context.Context, order *models.Order) error
	Update(ctx context.Context, id primitive.ObjectID, patch repositories.OrderPatch) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	RevenueTotal(ctx context.Context, completedStatus string) (*models.RevenueTotal, error)
	RevenueDaily(ctx context.Context, completedStatus string, start, end *time.Time) ([]models.DailyRevenue, error)
	RevenueMonthly(ctx context.Context, completedStatus string) ([]models.MonthlyRevenue, error)
}

// OrderProductStore covers the stock lookups and adjustments orders perform.
type OrderProductStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	AdjustStock(ctx context.Context, id primitive.ObjectID, delta int) error
}

// OrderUserStore resolves order owners and the userName list filter.
type OrderUserStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	IDsMatchingName(ctx context.Context, name string) ([]primitive.ObjectID, error)
}

// Notifier pushes order events to connected dashboards. Nil disables
// notifications.
type Notifier interface {
	OrderCreated(order *models.Order)
}

type OrderService struct {
	orders   OrderStore
	products OrderProductStore
	users    OrderUserStore
	notifier Notifier
}

func NewOrderService(orders OrderStore, products OrderProductStore, users OrderUserStore, notifier Notifier) *OrderService {
	return &OrderService{orders: orders, products: products, users: users, notifier: notifier}
}

// OrderListQuery is the order list's filter set. UserName matches the
// owner's name case-insensitively.
type OrderListQuery struct {
	UserName      string
	PaymentMethod string
	Status        string
	StartDate     *time.Time
	EndDate       *time.Time
}

func (s *OrderService) List(ctx context.Context, q OrderListQuery, skip, limit int64) ([]models.Order, int64, error) {
	filter := repositories.OrderFilter{
		PaymentMethod: q.PaymentMethod,
		Status:        q.Status,
		StartDate:     q.StartDate,
		EndDate:       q.EndDate,
	}
	if q.UserName != "" {
		ids, err := s.users.IDsMatchingName(ctx, q.UserName)
		if err != nil {
			return nil, 0, err
		}
		if ids == nil {
			ids = []primitive.ObjectID{}
		}
		filter.UserIDs = ids
	}
	return s.orders.List(ctx, filter, skip, limit)
}

// OrderItemInput is one requested line item.
type OrderItemInput struct {
	ProductID string
	Qty       int
}

// CreateOrderInput is the new-order payload. TotalPrice is taken as given
// and not recomputed from the line items.
type CreateOrderInput struct {
	UserID        string
	Items         []OrderItemInput
	TotalPrice    float64
	PaymentMethod string
	Status        string
}

// Create places an order: resolve the user, resolve and stock-check every
// line item, persist the order, then decrement stock item by item. All
// validation completes before any write. The order insert and the stock
// decrements are separate writes with no transaction between them.
func (s *OrderService) Create(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	userID, err := primitive.ObjectIDFromHex(in.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, mapNotFound(err, ErrUserNotFound)
	}

	type resolvedItem struct {
		product *models.Product
		qty     int
	}
	resolved := make([]resolvedItem, 0, len(in.Items))
	for _, item := range in.Items {
		productID, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			return nil, &ProductNotFoundError{ID: item.ProductID}
		}
		product, err := s.products.FindByID(ctx, productID)
		if err != nil {
			return nil, mapProductNotFound(err, item.ProductID)
		}
		if product.CountInStock < item.Qty {
			return nil, &InsufficientStockError{
				ProductName: product.Name,
				Available:   product.CountInStock,
			}
		}
		resolved = append(resolved, resolvedItem{product: product, qty: item.Qty})
	}

	items := make([]models.OrderItem, len(resolved))
	for i, ri := range resolved {
		items[i] = models.OrderItem{
			Product: ri.product.ID,
			Name:    ri.product.Name,
			Qty:     ri.qty,
			Price:   ri.product.Price,
		}
	}

	// The submitted total is stored as given, but a drift from the
	// line-item subtotal is worth surfacing.
	subtotal := collection.Sum(items, func(it models.OrderItem) float64 {
		return it.Price * float64(it.Qty)
	})
	if math.Abs(subtotal-in.TotalPrice) > 0.01 {
		logger.Warn("order: total differs from line-item subtotal",
			"total", in.TotalPrice, "subtotal", subtotal)
	}

	status := in.Status
	if status == "" {
		status = models.OrderStatusProcessing
	}

	order := &models.Order{
		User:          userID,
		UserName:      user.Name,
		OrderItems:    items,
		TotalPrice:    in.TotalPrice,
		PaymentMethod: in.PaymentMethod,
		Status:        status,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	// Duplicate product references decrement once per line item, so the
	// alert has to track the running remaining, not the snapshot.
	remaining := make(map[primitive.ObjectID]int, len(resolved))
	alerted := make(map[primitive.ObjectID]struct{})
	for _, ri := range resolved {
		if err := s.products.AdjustStock(ctx, ri.product.ID, -ri.qty); err != nil {
			logger.Error("order: stock decrement failed",
				"order", order.ID.Hex(), "product", ri.product.ID.Hex(), "error", err)
			continue
		}
		left, seen := remaining[ri.product.ID]
		if !seen {
			left = ri.product.CountInStock
		}
		left -= ri.qty
		remaining[ri.product.ID] = left
		if _, done := alerted[ri.product.ID]; left <= lowStockThreshold && !done {
			alerted[ri.product.ID] = struct{}{}
			event.Fire(EventLowStock, LowStockAlert{
				ProductID: ri.product.ID.Hex(),
				Name:      ri.product.Name,
				Remaining: left,
			})
		}
	}

	if s.notifier != nil {
		s.notifier.OrderCreated(order)
	}
	return order, nil
}

// UpdateOrderInput carries a partial update; nil fields stay untouched.
type UpdateOrderInput struct {
	UserID        *string
	TotalPrice    *float64
	PaymentMethod *string
	Status        *string
}

// Update applies a partial merge. Transitioning into Cancelled from any
// other state restores stock per the original line items first. A changed
// user re-snapshots userName.
func (s *OrderService) Update(ctx context.Context, id string, in UpdateOrderInput) (*models.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	current, err := s.orders.FindByID(ctx, oid)
	if err != nil {
		return nil, mapNotFound(err, ErrOrderNotFound)
	}

	patch := repositories.OrderPatch{
		TotalPrice:    in.TotalPrice,
		PaymentMethod: in.PaymentMethod,
		Status:        in.Status,
	}

	if in.UserID != nil {
		userID, err := primitive.ObjectIDFromHex(*in.UserID)
		if err != nil {
			return nil, ErrUserNotFound
		}
		user, err := s.users.FindByID(ctx, userID)
		if err != nil {
			return nil, mapNotFound(err, ErrUserNotFound)
		}
		patch.User = &userID
		patch.UserName = &user.Name
	}

	if in.Status != nil && *in.Status == models.OrderStatusCancelled &&
		current.Status != models.OrderStatusCancelled {
		s.restoreStock(ctx, current)
	}

	if err := s.orders.Update(ctx, oid, patch); err != nil {
		return nil, mapNotFound(err, ErrOrderNotFound)
	}
	updated, err := s.orders.FindByID(ctx, oid)
	if err != nil {
		return nil, mapNotFound(err, ErrOrderNotFound)
	}
	return updated, nil
}

// Delete removes an order, restoring stock unless the order was already
// cancelled (cancellation restored it once).
func (s *OrderService) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrOrderNotFound
	}
	current, err := s.orders.FindByID(ctx, oid)
	if err != nil {
		return mapNotFound(err, ErrOrderNotFound)
	}

	if current.Status != models.OrderStatusCancelled {
		s.restoreStock(ctx, current)
	}

	if err := s.orders.Delete(ctx, oid); err != nil {
		return mapNotFound(err, ErrOrderNotFound)
	}
	return nil
}

func (s *OrderService) restoreStock(ctx context.Context, order *models.Order) {
	for _, item := range order.OrderItems {
		if err := s.products.AdjustStock(ctx, item.Product, item.Qty); err != nil {
			logger.Error("order: stock restore failed",
				"order", order.ID.Hex(), "product", item.Product.Hex(), "error", err)
		}
	}
}

// Revenue aggregations consider only orders in the configured completed
// status.

func (s *OrderService) RevenueTotal(ctx context.Context) (*models.RevenueTotal, error) {
	return s.orders.RevenueTotal(ctx, config.OrderCompletedStatus())
}

func (s *OrderService) RevenueDaily(ctx context.Context, start, end *time.Time) ([]models.DailyRevenue, error) {
	return s.orders.RevenueDaily(ctx, config.OrderCompletedStatus(), start, end)
}

func (s *OrderService) RevenueMonthly(ctx context.Context) ([]models.MonthlyRevenue, error) {
	return s.orders.RevenueMonthly(ctx, config.OrderCompletedStatus())
}
