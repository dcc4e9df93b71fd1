package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/huyvng/storedash/app/models"
)

// OrderRepository handles database operations for Order, including the
// revenue aggregation pipelines.
type OrderRepository struct {
	coll *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{coll: db.Collection("orders")}
}

func (f OrderFilter) query() bson.M {
	q := bson.M{}
	if f.PaymentMethod != "" {
		q["paymentMethod"] = f.PaymentMethod
	}
	if f.Status != "" {
		q["status"] = f.Status
	}
	if f.UserIDs != nil {
		q["user"] = bson.M{"$in": f.UserIDs}
	}
	if f.StartDate != nil || f.EndDate != nil {
		created := bson.M{}
		if f.StartDate != nil {
			created["$gte"] = *f.StartDate
		}
		if f.EndDate != nil {
			created["$lte"] = *f.EndDate
		}
		q["createdAt"] = created
	}
	return q
}

// List returns one page of orders, newest first, plus the total match count.
func (r *OrderRepository) List(ctx context.Context, filter OrderFilter, skip, limit int64) ([]models.Order, int64, error) {
	q := filter.query()

	total, err := r.coll.CountDocuments(ctx, q)
	if err != nil {
		return nil, 0, err
	}

	opts := findPage(skip, limit).SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, q, opts)
	if err != nil {
		return nil, 0, err
	}
	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now
	res, err := r.coll.InsertOne(ctx, order)
	if err != nil {
		return err
	}
	order.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *OrderRepository) Update(ctx context.Context, id primitive.ObjectID, patch OrderPatch) error {
	set := bson.M{"updatedAt": time.Now()}
	if patch.User != nil {
		set["user"] = *patch.User
	}
	if patch.UserName != nil {
		set["userName"] = *patch.UserName
	}
	if patch.OrderItems != nil {
		set["orderItems"] = patch.OrderItems
	}
	if patch.TotalPrice != nil {
		set["totalPrice"] = *patch.TotalPrice
	}
	if patch.PaymentMethod != nil {
		set["paymentMethod"] = *patch.PaymentMethod
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *OrderRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// RevenueTotal sums totalPrice and counts orders in the completed status.
// Returns zeros when no orders match.
func (r *OrderRepository) RevenueTotal(ctx context.Context, completedStatus string) (*models.RevenueTotal, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": completedStatus}}},
		{{Key: "$group", Value: bson.M{
			"_id":          nil,
			"totalRevenue": bson.M{"$sum": "$totalPrice"},
			"totalOrders":  bson.M{"$sum": 1},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var rows []models.RevenueTotal
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return &models.RevenueTotal{}, nil
	}
	return &rows[0], nil
}

// RevenueDaily groups completed orders by calendar day of createdAt,
// ascending, optionally bounded by an inclusive date range.
func (r *OrderRepository) RevenueDaily(ctx context.Context, completedStatus string, start, end *time.Time) ([]models.DailyRevenue, error) {
	match := bson.M{"status": completedStatus}
	if start != nil || end != nil {
		created := bson.M{}
		if start != nil {
			created["$gte"] = *start
		}
		if end != nil {
			created["$lte"] = *end
		}
		match["createdAt"] = created
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{"$dateToString": bson.M{
				"format": "%Y-%m-%d",
				"date":   "$createdAt",
			}},
			"revenue": bson.M{"$sum": "$totalPrice"},
			"orders":  bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	rows := []models.DailyRevenue{}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// RevenueMonthly groups completed orders by (year, month) of createdAt,
// ascending chronologically.
func (r *OrderRepository) RevenueMonthly(ctx context.Context, completedStatus string) ([]models.MonthlyRevenue, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": completedStatus}}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{
				"year":  bson.M{"$year": "$createdAt"},
				"month": bson.M{"$month": "$createdAt"},
			},
			"revenue": bson.M{"$sum": "$totalPrice"},
			"orders":  bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{
			{Key: "_id.year", Value: 1},
			{Key: "_id.month", Value: 1},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var raw []struct {
		ID struct {
			Year  int `bson:"year"`
			Month int `bson:"month"`
		} `bson:"_id"`
		Revenue float64 `bson:"revenue"`
		Orders  int64   `bson:"orders"`
	}
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, err
	}
	rows := make([]models.MonthlyRevenue, len(raw))
	for i, row := range raw {
		rows[i] = models.MonthlyRevenue{
			Year:    row.ID.Year,
			Month:   row.ID.Month,
			Revenue: row.Revenue,
			Orders:  row.Orders,
		}
	}
	return rows, nil
}
