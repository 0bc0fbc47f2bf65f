package repositories

import "etalase/internal/models"

// UserRepository defines the interface for admin user data access.
// Admin identities are only ever created and read; updates and deletes are
// out of scope.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
}
