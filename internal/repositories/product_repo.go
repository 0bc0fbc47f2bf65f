package repositories

import (
	"etalase/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	// GetAll returns every product ordered by creation time, newest first.
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	// Delete removes the record permanently.
	Delete(id string) error
	// IncrementSales bumps the sales counter and decrements stock for a
	// fulfilled order of qty units.
	IncrementSales(id string, qty int) error
}
