package repositories

import "go.mongodb.org/mongo-driver/mongo/options"

// findPage builds the skip/limit options for one page of results.
func findPage(skip, limit int64) *options.FindOptions {
	return options.Find().SetSkip(skip).SetLimit(limit)
}
