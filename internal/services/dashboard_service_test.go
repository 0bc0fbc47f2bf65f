package services_test

import (
	"testing"

	"etalase/internal/apperrors"
	"etalase/internal/models"
	"etalase/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestDashboardService_Metrics(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewDashboardService(mockRepo)

	products := []models.Product{
		{ID: "1", Name: "Laptop", Price: 1200.00, Category: "Electronics", Stock: 10, Sales: 4},
		{ID: "2", Name: "Keyboard", Price: 75.00, Category: "Electronics", Stock: 25, Sales: 12},
		{ID: "3", Name: "Desk", Price: 300.00, Category: "Furniture", Stock: 5, Sales: 2},
	}
	mockRepo.On("GetAll").Return(products, nil).Once()

	metrics, err := service.Metrics(adminSession())

	assert.NoError(t, err)
	assert.Equal(t, 3, metrics.TotalProducts)
	assert.Equal(t, 40, metrics.TotalStock)
	assert.Equal(t, 18, metrics.TotalUnitsSold)
	assert.InDelta(t, 4*1200.00+12*75.00+2*300.00, metrics.EstimatedRevenue, 0.001)
	assert.Equal(t, map[string]int{"Electronics": 35, "Furniture": 5}, metrics.CategoryStock)

	// Bestsellers come back sorted by units sold, descending.
	assert.Equal(t, []services.SellerStat{
		{Name: "Keyboard", Sales: 12},
		{Name: "Laptop", Sales: 4},
		{Name: "Desk", Sales: 2},
	}, metrics.TopSellers)

	mockRepo.AssertExpectations(t)
}

func TestDashboardService_Metrics_TopSellerCap(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewDashboardService(mockRepo)

	products := make([]models.Product, 8)
	for i := range products {
		products[i] = models.Product{
			ID:       string(rune('a' + i)),
			Name:     "P" + string(rune('A'+i)),
			Price:    10,
			Category: "Misc",
			Sales:    i,
		}
	}
	mockRepo.On("GetAll").Return(products, nil).Once()

	metrics, err := service.Metrics(adminSession())

	assert.NoError(t, err)
	assert.Len(t, metrics.TopSellers, 5)
	assert.Equal(t, 7, metrics.TopSellers[0].Sales)
	assert.Equal(t, 3, metrics.TopSellers[4].Sales)
	mockRepo.AssertExpectations(t)
}

func TestDashboardService_Metrics_EmptyCatalog(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewDashboardService(mockRepo)

	mockRepo.On("GetAll").Return([]models.Product{}, nil).Once()

	metrics, err := service.Metrics(adminSession())

	assert.NoError(t, err)
	assert.Equal(t, 0, metrics.TotalProducts)
	assert.Empty(t, metrics.TopSellers)
	assert.Empty(t, metrics.CategoryStock)
	mockRepo.AssertExpectations(t)
}

func TestDashboardService_Metrics_Unauthorized(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewDashboardService(mockRepo)

	metrics, err := service.Metrics(staffSession())

	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	assert.Nil(t, metrics)
	mockRepo.AssertNotCalled(t, "GetAll")
}
