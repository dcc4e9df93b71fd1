package models

// Revenue aggregation rows produced by the order repository.

type RevenueTotal struct {
	TotalRevenue float64 `bson:"totalRevenue" json:"totalRevenue"`
	TotalOrders  int64   `bson:"totalOrders" json:"totalOrders"`
}

type DailyRevenue struct {
	Date    string  `bson:"_id" json:"date"`
	Revenue float64 `bson:"revenue" json:"revenue"`
	Orders  int64   `bson:"orders" json:"orders"`
}

type MonthlyRevenue struct {
	Year    int     `json:"year"`
	Month   int     `json:"month"`
	Revenue float64 `json:"revenue"`
	Orders  int64   `json:"orders"`
}
