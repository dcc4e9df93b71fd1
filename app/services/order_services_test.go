package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/huyvng/storedash/app/models"
	"github.com/huyvng/storedash/app/repositories"
	"github.com/huyvng/storedash/app/services"
	"github.com/huyvng/storedash/pkg/event"
)

// ------------------- Fakes -------------------

type fakeProductStore struct {
	products map[primitive.ObjectID]*models.Product
}

func (f *fakeProductStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductStore) AdjustStock(_ context.Context, id primitive.ObjectID, delta int) error {
	p, ok := f.products[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	p.CountInStock += delta
	return nil
}

type fakeOrderStore struct {
	orders map[primitive.ObjectID]*models.Order
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: map[primitive.ObjectID]*models.Order{}}
}

func (f *fakeOrderStore) List(_ context.Context, _ repositories.OrderFilter, _, _ int64) ([]models.Order, int64, error) {
	out := make([]models.Order, 0, len(f.orders))
	for _, o := range f.orders {
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (f *fakeOrderStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrderStore) Create(_ context.Context, order *models.Order) error {
	order.ID = primitive.NewObjectID()
	cp := *order
	f.orders[order.ID] = &cp
	return nil
}

func (f *fakeOrderStore) Update(_ context.Context, id primitive.ObjectID, patch repositories.OrderPatch) error {
	o, ok := f.orders[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	if patch.User != nil {
		o.User = *patch.User
	}
	if patch.UserName != nil {
		o.UserName = *patch.UserName
	}
	if patch.OrderItems != nil {
		o.OrderItems = patch.OrderItems
	}
	if patch.TotalPrice != nil {
		o.TotalPrice = *patch.TotalPrice
	}
	if patch.PaymentMethod != nil {
		o.PaymentMethod = *patch.PaymentMethod
	}
	if patch.Status != nil {
		o.Status = *patch.Status
	}
	return nil
}

func (f *fakeOrderStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.orders[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(f.orders, id)
	return nil
}

func (f *fakeOrderStore) RevenueTotal(_ context.Context, _ string) (*models.RevenueTotal, error) {
	return &models.RevenueTotal{}, nil
}

func (f *fakeOrderStore) RevenueDaily(_ context.Context, _ string, _, _ *time.Time) ([]models.DailyRevenue, error) {
	return nil, nil
}

func (f *fakeOrderStore) RevenueMonthly(_ context.Context, _ string) ([]models.MonthlyRevenue, error) {
	return nil, nil
}

type fakeOrderUserStore struct {
	users map[primitive.ObjectID]*models.User
}

func (f *fakeOrderUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *u
	return &cp, nil
}

func (f *fakeOrderUserStore) IDsMatchingName(_ context.Context, _ string) ([]primitive.ObjectID, error) {
	return nil, nil
}

type failingOrderUserStore struct {
	err error
}

func (f *failingOrderUserStore) FindByID(_ context.Context, _ primitive.ObjectID) (*models.User, error) {
	return nil, f.err
}

func (f *failingOrderUserStore) IDsMatchingName(_ context.Context, _ string) ([]primitive.ObjectID, error) {
	return nil, f.err
}

type fakeNotifier struct {
	created []*models.Order
}

func (f *fakeNotifier) OrderCreated(order *models.Order) {
	f.created = append(f.created, order)
}

// ------------------- Fixtures -------------------

type orderFixture struct {
	svc      *services.OrderService
	orders   *fakeOrderStore
	products *fakeProductStore
	notifier *fakeNotifier
	userID   primitive.ObjectID
	laptopID primitive.ObjectID
	mouseID  primitive.ObjectID
}

func newOrderFixture() *orderFixture {
	userID := primitive.NewObjectID()
	laptopID := primitive.NewObjectID()
	mouseID := primitive.NewObjectID()

	products := &fakeProductStore{products: map[primitive.ObjectID]*models.Product{
		laptopID: {ID: laptopID, Name: "Laptop", Price: 1200, CountInStock: 10},
		mouseID:  {ID: mouseID, Name: "Mouse", Price: 25, CountInStock: 2},
	}}
	users := &fakeOrderUserStore{users: map[primitive.ObjectID]*models.User{
		userID: {ID: userID, Name: "Alice", Email: "alice@example.com", Role: models.RoleUser},
	}}
	orders := newFakeOrderStore()
	notifier := &fakeNotifier{}

	return &orderFixture{
		svc:      services.NewOrderService(orders, products, users, notifier),
		orders:   orders,
		products: products,
		notifier: notifier,
		userID:   userID,
		laptopID: laptopID,
		mouseID:  mouseID,
	}
}

// ------------------- Tests -------------------

func TestCreateOrderDecrementsStockAndNotifies(t *testing.T) {
	f := newOrderFixture()

	order, err := f.svc.Create(context.Background(), services.CreateOrderInput{
		UserID:        f.userID.Hex(),
		Items:         []services.OrderItemInput{{ProductID: f.laptopID.Hex(), Qty: 3}},
		TotalPrice:    3600,
		PaymentMethod: "Cash on delivery",
	})
	require.NoError(t, err)

	assert.Equal(t, 7, f.products.products[f.laptopID].CountInStock)
	assert.Equal(t, models.OrderStatusProcessing, order.Status)
	assert.Equal(t, "Alice", order.UserName)
	require.Len(t, order.OrderItems, 1)
	assert.Equal(t, "Laptop", order.OrderItems[0].Name)
	assert.Equal(t, 1200.0, order.OrderItems[0].Price)
	assert.Len(t, f.orders.orders, 1)
	require.Len(t, f.notifier.created, 1)
	assert.Equal(t, order.ID, f.notifier.created[0].ID)
}

func TestCreateOrderInsufficientStockRejectsWholeOrder(t *testing.T) {
	f := newOrderFixture()

	_, err := f.svc.Create(context.Background(), services.CreateOrderInput{
		UserID: f.userID.Hex(),
		Items: []services.OrderItemInput{
			{ProductID: f.laptopID.Hex(), Qty: 2},
			{ProductID: f.mouseID.Hex(), Qty: 5},
		},
		TotalPrice:    2525,
		PaymentMethod: "Cash on delivery",
	})

	var stockErr *services.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Mouse", stockErr.ProductName)
	assert.Equal(t, 2, stockErr.Available)

	// Validation failed after the first item, but nothing was written.
	assert.Equal(t, 10, f.products.products[f.laptopID].CountInStock)
	assert.Equal(t, 2, f.products.products[f.mouseID].CountInStock)
	assert.Empty(t, f.orders.orders)
	assert.Empty(t, f.notifier.created)
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	f := newOrderFixture()
	missing := primitive.NewObjectID()

	_, err := f.svc.Create(context.Background(), services.CreateOrderInput{
		UserID:        f.userID.Hex(),
		Items:         []services.OrderItemInput{{ProductID: missing.Hex(), Qty: 1}},
		PaymentMethod: "Cash on delivery",
	})

	var notFound *services.ProductNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, missing.Hex(), notFound.ID)
	assert.Empty(t, f.orders.orders)
}

func TestCreateOrderUnknownUser(t *testing.T) {
	f := newOrderFixture()

	_, err := f.svc.Create(context.Background(), services.CreateOrderInput{
		UserID:        primitive.NewObjectID().Hex(),
		Items:         []services.OrderItemInput{{ProductID: f.laptopID.Hex(), Qty: 1}},
		PaymentMethod: "Cash on delivery",
	})
	assert.ErrorIs(t, err, services.ErrUserNotFound)
	assert.Equal(t, 10, f.products.products[f.laptopID].CountInStock)
}

func TestCreateOrderDuplicateLineItemsDecrementPerItem(t *testing.T) {
	f := newOrderFixture()

	_, err := f.svc.Create(context.Background(), services.CreateOrderInput{
		UserID: f.userID.Hex(),
		Items: []services.OrderItemInput{
			{ProductID: f.laptopID.Hex(), Qty: 2},
			{ProductID: f.laptopID.Hex(), Qty: 3},
		},
		TotalPrice:    6000,
		PaymentMethod: "Bank transfer",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, f.products.products[f.laptopID].CountInStock)
}

func TestCancelRestoresStockOnce(t *testing.T) {
	f := newOrderFixture()

	order, err := f.svc.Create(context.Background(), services.CreateOrderInput{
		UserID:        f.userID.Hex(),
		Items:         []services.OrderItemInput{{ProductID: f.laptopID.Hex(), Qty: 4}},
		TotalPrice:    4800,
		PaymentMethod: "Cash on delivery",
	})
	require.NoError(t, err)
	require.Equal(t, 6, f.products.products[f.laptopID].CountInStock)

	cancelled := models.OrderStatusCancelled
	_, err = f.svc.Update(context.Background(), order.ID.Hex(), services.UpdateOrderInput{Status: &cancelled})
	require.NoError(t, err)
	assert.Equal(t, 10, f.products.products[f.laptopID].CountInStock)

	// Cancelling an already-cancelled order must not restore again.
	_, err = f.svc.Update(context.Background(), order.ID.Hex(), services.UpdateOrderInput{Status: &cancelled})
	require.NoError(t, err)
	assert.Equal(t, 10, f.products.products[f.laptopID].CountInStock)
}

func TestDeleteRestoresStockUnlessCancelled(t *testing.T) {
	f := newOrderFixture()

	order, err := f.svc.Create(context.Background(), services.CreateOrderInput{
		UserID:        f.userID.Hex(),
		Items:         []services.OrderItemInput{{ProductID: f.laptopID.Hex(), Qty: 4}},
		TotalPrice:    4800,
		PaymentMethod: "Cash on delivery",
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(context.Background(), order.ID.Hex()))
	assert.Equal(t, 10, f.products.products[f.laptopID].CountInStock)

	// Second delete: order is gone.
	assert.ErrorIs(t, f.svc.Delete(context.Background(), order.ID.Hex()), services.ErrOrderNotFound)
	assert.Equal(t, 10, f.products.products[f.laptopID].CountInStock)
}

func TestDeleteCancelledOrderDoesNotRestoreTwice(t *testing.T) {
	f := newOrderFixture()

	order, err := f.svc.Create(context.Background(), services.CreateOrderInput{
		UserID:        f.userID.Hex(),
		Items:         []services.OrderItemInput{{ProductID: f.laptopID.Hex(), Qty: 4}},
		TotalPrice:    4800,
		PaymentMethod: "Cash on delivery",
	})
	require.NoError(t, err)

	cancelled := models.OrderStatusCancelled
	_, err = f.svc.Update(context.Background(), order.ID.Hex(), services.UpdateOrderInput{Status: &cancelled})
	require.NoError(t, err)
	require.Equal(t, 10, f.products.products[f.laptopID].CountInStock)

	require.NoError(t, f.svc.Delete(context.Background(), order.ID.Hex()))
	assert.Equal(t, 10, f.products.products[f.laptopID].CountInStock)
}

func TestUpdateOrderResnapshotsUserName(t *testing.T) {
	f := newOrderFixture()

	order, err := f.svc.Create(context.Background(), services.CreateOrderInput{
		UserID:        f.userID.Hex(),
		Items:         []services.OrderItemInput{{ProductID: f.laptopID.Hex(), Qty: 1}},
		TotalPrice:    1200,
		PaymentMethod: "Cash on delivery",
	})
	require.NoError(t, err)

	bobID := primitive.NewObjectID()
	usersStore := &fakeOrderUserStore{users: map[primitive.ObjectID]*models.User{
		f.userID: {ID: f.userID, Name: "Alice"},
		bobID:    {ID: bobID, Name: "Bob"},
	}}
	svc := services.NewOrderService(f.orders, f.products, usersStore, f.notifier)

	bobHex := bobID.Hex()
	updated, err := svc.Update(context.Background(), order.ID.Hex(), services.UpdateOrderInput{UserID: &bobHex})
	require.NoError(t, err)
	assert.Equal(t, bobID, updated.User)
	assert.Equal(t, "Bob", updated.UserName)

	unknown := primitive.NewObjectID().Hex()
	_, err = svc.Update(context.Background(), order.ID.Hex(), services.UpdateOrderInput{UserID: &unknown})
	assert.ErrorIs(t, err, services.ErrUserNotFound)
}

func TestCreateOrderFiresLowStockAlert(t *testing.T) {
	f := newOrderFixture()

	var alerts []services.LowStockAlert
	event.Listen(services.EventLowStock, func(payload interface{}) {
		if alert, ok := payload.(services.LowStockAlert); ok {
			alerts = append(alerts, alert)
		}
	})
	defer event.Flush()

	_, err := f.svc.Create(context.Background(), services.CreateOrderInput{
		UserID: f.userID.Hex(),
		Items: []services.OrderItemInput{
			{ProductID: f.laptopID.Hex(), Qty: 3},
			{ProductID: f.mouseID.Hex(), Qty: 1},
		},
		TotalPrice:    3625,
		PaymentMethod: "Cash on delivery",
	})
	require.NoError(t, err)

	// Laptop stays above the threshold; only the mouse alerts.
	require.Len(t, alerts, 1)
	assert.Equal(t, "Mouse", alerts[0].Name)
	assert.Equal(t, 1, alerts[0].Remaining)
}

func TestLowStockAlertTracksDuplicateLineItems(t *testing.T) {
	f := newOrderFixture()

	var alerts []services.LowStockAlert
	event.Listen(services.EventLowStock, func(payload interface{}) {
		if alert, ok := payload.(services.LowStockAlert); ok {
			alerts = append(alerts, alert)
		}
	})
	defer event.Flush()

	// Neither line item alone crosses the threshold against stock 10;
	// the running total after both does.
	_, err := f.svc.Create(context.Background(), services.CreateOrderInput{
		UserID: f.userID.Hex(),
		Items: []services.OrderItemInput{
			{ProductID: f.laptopID.Hex(), Qty: 2},
			{ProductID: f.laptopID.Hex(), Qty: 3},
		},
		TotalPrice:    6000,
		PaymentMethod: "Bank transfer",
	})
	require.NoError(t, err)

	require.Len(t, alerts, 1)
	assert.Equal(t, "Laptop", alerts[0].Name)
	assert.Equal(t, 5, alerts[0].Remaining)
}

func TestCreateOrderPropagatesStoreFailure(t *testing.T) {
	f := newOrderFixture()
	infra := errors.New("connection reset by peer")
	svc := services.NewOrderService(f.orders, f.products, &failingOrderUserStore{err: infra}, f.notifier)

	_, err := svc.Create(context.Background(), services.CreateOrderInput{
		UserID:        primitive.NewObjectID().Hex(),
		Items:         []services.OrderItemInput{{ProductID: f.laptopID.Hex(), Qty: 1}},
		PaymentMethod: "Cash on delivery",
	})

	// A store failure is not a missing user; the error text survives.
	assert.ErrorIs(t, err, infra)
	assert.NotErrorIs(t, err, services.ErrUserNotFound)
}

func TestUpdateOrderNotFound(t *testing.T) {
	f := newOrderFixture()
	status := "Completed"
	_, err := f.svc.Update(context.Background(), primitive.NewObjectID().Hex(), services.UpdateOrderInput{Status: &status})
	assert.ErrorIs(t, err, services.ErrOrderNotFound)
}
