package repositories_test

import (
	"fmt"
	"testing"
	"time"

	"etalase/internal/apperrors"
	"etalase/internal/models"
	"etalase/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.User{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestGORMProductRepository_GetAllOrdering(t *testing.T) {
	repo := repositories.NewGORMProductRepository(openTestDB(t))

	first := &models.Product{Name: "First", Price: 1, Category: "A", Images: []string{}}
	assert.NoError(t, repo.Create(first))
	time.Sleep(10 * time.Millisecond)
	second := &models.Product{Name: "Second", Price: 2, Category: "B", Images: []string{}}
	assert.NoError(t, repo.Create(second))

	products, err := repo.GetAll()
	assert.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, "Second", products[0].Name)
	assert.Equal(t, "First", products[1].Name)
}

func TestGORMProductRepository_ImagesRoundTrip(t *testing.T) {
	repo := repositories.NewGORMProductRepository(openTestDB(t))

	product := &models.Product{
		Name:     "Watch",
		Price:    49.99,
		Category: "Electronics",
		Images:   []string{"https://cdn.example.com/a.png", "https://cdn.example.com/b.png"},
	}
	assert.NoError(t, repo.Create(product))

	got, err := repo.GetByID(product.ID)
	assert.NoError(t, err)
	assert.Equal(t, product.Images, got.Images)
}

func TestGORMProductRepository_DeleteIsHard(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewGORMProductRepository(db)

	product := &models.Product{Name: "Watch", Price: 49.99, Category: "Electronics", Images: []string{}}
	assert.NoError(t, repo.Create(product))
	assert.NoError(t, repo.Delete(product.ID))

	// The row is gone, not flagged: a raw count sees nothing either.
	var count int64
	assert.NoError(t, db.Model(&models.Product{}).Count(&count).Error)
	assert.Zero(t, count)

	assert.ErrorIs(t, repo.Delete(product.ID), apperrors.ErrProductNotFound)
	_, err := repo.GetByID(product.ID)
	assert.ErrorIs(t, err, apperrors.ErrProductNotFound)
}

func TestGORMProductRepository_IncrementSales(t *testing.T) {
	repo := repositories.NewGORMProductRepository(openTestDB(t))

	product := &models.Product{Name: "Watch", Price: 49.99, Category: "Electronics", Stock: 10, Images: []string{}}
	assert.NoError(t, repo.Create(product))

	assert.NoError(t, repo.IncrementSales(product.ID, 3))
	assert.NoError(t, repo.IncrementSales(product.ID, 2))

	got, err := repo.GetByID(product.ID)
	assert.NoError(t, err)
	assert.Equal(t, 5, got.Sales)
	assert.Equal(t, 5, got.Stock)

	assert.ErrorIs(t, repo.IncrementSales(uuid.New().String(), 1), apperrors.ErrProductNotFound)
}

func TestGORMProductRepository_IncrementSales_InsufficientStock(t *testing.T) {
	repo := repositories.NewGORMProductRepository(openTestDB(t))

	product := &models.Product{Name: "Watch", Price: 49.99, Category: "Electronics", Stock: 10, Images: []string{}}
	assert.NoError(t, repo.Create(product))

	// A fulfilment larger than the remaining stock is rejected and the
	// record is left exactly as it was; stock never goes negative.
	assert.ErrorIs(t, repo.IncrementSales(product.ID, 25), apperrors.ErrInsufficientStock)

	got, err := repo.GetByID(product.ID)
	assert.NoError(t, err)
	assert.Equal(t, 10, got.Stock)
	assert.Equal(t, 0, got.Sales)

	// Consuming the stock exactly is still allowed.
	assert.NoError(t, repo.IncrementSales(product.ID, 10))
	got, err = repo.GetByID(product.ID)
	assert.NoError(t, err)
	assert.Equal(t, 0, got.Stock)
	assert.Equal(t, 10, got.Sales)

	// Once empty, any further fulfilment is rejected.
	assert.ErrorIs(t, repo.IncrementSales(product.ID, 1), apperrors.ErrInsufficientStock)
}

func TestMockProductRepository_MatchesGORMBehavior(t *testing.T) {
	repo := repositories.NewMockProductRepository()

	first := &models.Product{Name: "First", Price: 1, Category: "A", Images: []string{}}
	assert.NoError(t, repo.Create(first))
	assert.False(t, first.CreatedAt.IsZero())
	time.Sleep(10 * time.Millisecond)
	second := &models.Product{Name: "Second", Price: 2, Category: "B", Stock: 10, Images: []string{}}
	assert.NoError(t, repo.Create(second))

	// Newest first, like the GORM implementation the mock stands in for.
	products, err := repo.GetAll()
	assert.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, "Second", products[0].Name)
	assert.Equal(t, "First", products[1].Name)

	// Same stock floor as the GORM implementation.
	assert.ErrorIs(t, repo.IncrementSales(second.ID, 25), apperrors.ErrInsufficientStock)
	got, err := repo.GetByID(second.ID)
	assert.NoError(t, err)
	assert.Equal(t, 10, got.Stock)
	assert.Equal(t, 0, got.Sales)

	assert.NoError(t, repo.IncrementSales(second.ID, 4))
	got, err = repo.GetByID(second.ID)
	assert.NoError(t, err)
	assert.Equal(t, 6, got.Stock)
	assert.Equal(t, 4, got.Sales)
}

func TestGORMUserRepository_EmailLookup(t *testing.T) {
	repo := repositories.NewGORMUserRepository(openTestDB(t))

	user := &models.User{Name: "Admin", Email: "admin@example.com", Password: "hash", Role: models.RoleAdmin}
	assert.NoError(t, repo.Create(user))
	assert.NotEmpty(t, user.ID)

	got, err := repo.GetByEmail("admin@example.com")
	assert.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = repo.GetByEmail("ghost@example.com")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	// Unique index rejects a second identity with the same email.
	dup := &models.User{Name: "Clone", Email: "admin@example.com", Password: "hash", Role: models.RoleAdmin}
	assert.Error(t, repo.Create(dup))
}
