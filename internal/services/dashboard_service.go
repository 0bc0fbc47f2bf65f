package services

import (
	"sort"

	"etalase/internal/models"
	"etalase/internal/repositories"
)

// topSellerLimit caps the bestseller list shown on the dashboard.
const topSellerLimit = 5

// DashboardService computes the aggregates behind the dashboard charts.
type DashboardService struct {
	repo repositories.ProductRepository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(repo repositories.ProductRepository) *DashboardService {
	return &DashboardService{
		repo: repo,
	}
}

// SellerStat is one bar of the bestseller chart.
type SellerStat struct {
	Name  string `json:"name"`
	Sales int    `json:"sales"`
}

// DashboardMetrics is the aggregate view served to the dashboard.
type DashboardMetrics struct {
	TotalProducts    int            `json:"total_products"`
	TotalStock       int            `json:"total_stock"`
	TotalUnitsSold   int            `json:"total_units_sold"`
	EstimatedRevenue float64        `json:"estimated_revenue"`
	TopSellers       []SellerStat   `json:"top_sellers"`
	CategoryStock    map[string]int `json:"category_stock"`
}

// Metrics aggregates the whole catalog. Admin only: the dashboard exposes
// revenue figures.
func (s *DashboardService) Metrics(session *models.Session) (*DashboardMetrics, error) {
	if err := RequireAdmin(session); err != nil {
		return nil, err
	}

	products, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}

	metrics := &DashboardMetrics{
		TotalProducts: len(products),
		TopSellers:    []SellerStat{},
		CategoryStock: make(map[string]int),
	}
	for _, p := range products {
		metrics.TotalStock += p.Stock
		metrics.TotalUnitsSold += p.Sales
		metrics.EstimatedRevenue += float64(p.Sales) * p.Price
		metrics.CategoryStock[p.Category] += p.Stock
	}

	sorted := make([]models.Product, len(products))
	copy(sorted, products)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Sales > sorted[j].Sales
	})
	for i, p := range sorted {
		if i == topSellerLimit {
			break
		}
		metrics.TopSellers = append(metrics.TopSellers, SellerStat{Name: p.Name, Sales: p.Sales})
	}

	return metrics, nil
}
