package service

import (
	"context"

	apperrors "github.com/dlcastillo/storefront/internal/errors"
	"github.com/dlcastillo/storefront/internal/models"
	repository "github.com/dlcastillo/storefront/internal/repositories"
)

const recentOrderLimit = 10

type ReportService interface {
	SalesStats(ctx context.Context) (*models.SalesStats, error)
}

type reportService struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
}

func NewReportService(orders repository.OrderRepository, products repository.ProductRepository) ReportService {
	return &reportService{orders: orders, products: products}
}

// SalesStats folds a snapshot of the order and product tables. Cancelled
// orders are excluded from revenue but still counted in the order total, so
// the average order value divides by every fetched order.
func (s *reportService) SalesStats(ctx context.Context) (*models.SalesStats, error) {

	orders, err := s.orders.ListTotals(ctx)
	if err != nil {
		return nil, apperrors.GatewayError("Failed to fetch orders").WithError(err)
	}

	productCount, err := s.products.Count(ctx)
	if err != nil {
		return nil, apperrors.GatewayError("Failed to count products").WithError(err)
	}

	recent, err := s.orders.ListRecentWithItems(ctx, recentOrderLimit)
	if err != nil {
		return nil, apperrors.GatewayError("Failed to fetch recent orders").WithError(err)
	}

	stats := &models.SalesStats{
		TotalOrders:   len(orders),
		TotalProducts: productCount,
		RecentOrders:  recent,
	}

	for _, order := range orders {
		if order.Status == models.OrderStatusPending || order.Status == models.OrderStatusCompleted {
			stats.TotalRevenue += order.Total
		}
	}

	if stats.TotalOrders > 0 {
		stats.AverageOrderValue = stats.TotalRevenue / float64(stats.TotalOrders)
	}

	return stats, nil
}
