package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestProductFilterQueryComposition(t *testing.T) {
	min, max := 10.0, 99.5
	q := ProductFilter{
		Name:     "usb (c)",
		MinPrice: &min,
		MaxPrice: &max,
	}.query()

	rx, ok := q["name"].(primitive.Regex)
	require.True(t, ok)
	assert.Equal(t, `usb \(c\)`, rx.Pattern)
	assert.Equal(t, "i", rx.Options)

	assert.Equal(t, bson.M{"$gte": 10.0, "$lte": 99.5}, q["price"])
	assert.NotContains(t, q, "brandName")
	assert.NotContains(t, q, "categoryName")
}

func TestProductFilterQueryOpenEndedPrice(t *testing.T) {
	min := 50.0
	q := ProductFilter{MinPrice: &min}.query()
	assert.Equal(t, bson.M{"$gte": 50.0}, q["price"])

	assert.Empty(t, ProductFilter{}.query())
}

func TestOrderFilterQueryUserIDs(t *testing.T) {
	// Nil means the userName filter was not supplied at all.
	q := OrderFilter{Status: "Processing"}.query()
	assert.NotContains(t, q, "user")
	assert.Equal(t, "Processing", q["status"])

	// Empty but non-nil means the name matched no users, so the list
	// must come back empty rather than unfiltered.
	q = OrderFilter{UserIDs: []primitive.ObjectID{}}.query()
	assert.Equal(t, bson.M{"$in": []primitive.ObjectID{}}, q["user"])
}

func TestOrderFilterQueryDateRange(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(24*time.Hour - time.Nanosecond)

	q := OrderFilter{StartDate: &start, EndDate: &end}.query()
	assert.Equal(t, bson.M{"$gte": start, "$lte": end}, q["createdAt"])
}
