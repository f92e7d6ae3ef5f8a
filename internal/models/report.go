package models

// SalesStats is a snapshot aggregation over fetched orders; nothing here is
// incremental or streaming.
type SalesStats struct {
	TotalRevenue      float64          `json:"total_revenue"`
	TotalOrders       int              `json:"total_orders"`
	TotalProducts     int              `json:"total_products"`
	AverageOrderValue float64          `json:"average_order_value"`
	RecentOrders      []OrderWithItems `json:"recent_orders"`
}
