package services

import (
	"context"
	"fmt"

	"etalase/internal/apperrors"
	"etalase/internal/models"
	"etalase/internal/repositories"
	"etalase/pkg/imagestore"

	"github.com/go-playground/validator/v10"
)

// ProductService handles business logic related to products. Every mutating
// operation runs the admin gate first; the image upload, when one is
// requested, runs before anything is persisted so a failed upload leaves the
// store untouched.
type ProductService struct {
	repo     repositories.ProductRepository
	uploader imagestore.Uploader
	folder   string
	validate *validator.Validate
}

// NewProductService creates a new ProductService. uploader may be nil for
// deployments without image hosting; supplying an image then fails the
// request instead of silently dropping it.
func NewProductService(repo repositories.ProductRepository, uploader imagestore.Uploader, folder string) *ProductService {
	return &ProductService{
		repo:     repo,
		uploader: uploader,
		folder:   folder,
		validate: validator.New(),
	}
}

// CreateProductInput carries the fields of a create request.
type CreateProductInput struct {
	Name        string
	Description string
	Price       float64
	Category    string
	Stock       int
}

// ListProducts retrieves all products, newest first.
func (s *ProductService) ListProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProduct retrieves a single product by its ID.
func (s *ProductService) GetProduct(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct creates a new product. image is an optional payload for the
// image store (raw reader or base64 data URI); when present it is uploaded
// before the record is written, so the product is persisted with a resolved
// URL or not at all.
func (s *ProductService) CreateProduct(ctx context.Context, session *models.Session, input CreateProductInput, image interface{}) (*models.Product, error) {
	if err := RequireAdmin(session); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		Stock:       input.Stock,
		Images:      []string{},
		Sales:       0,
	}
	if err := s.validate.Struct(product); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	if image != nil {
		url, err := s.uploadImage(ctx, image)
		if err != nil {
			return nil, err
		}
		product.Images = []string{url}
	}

	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct applies a partial update to an existing product. Only
// non-nil fields of update overwrite stored values. A new image payload
// replaces the image list; without one the stored images are retained.
func (s *ProductService) UpdateProduct(ctx context.Context, session *models.Session, id string, update models.ProductUpdate, image interface{}) (*models.Product, error) {
	if err := RequireAdmin(session); err != nil {
		return nil, err
	}

	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		product.Name = *update.Name
	}
	if update.Description != nil {
		product.Description = *update.Description
	}
	if update.Price != nil {
		product.Price = *update.Price
	}
	if update.Category != nil {
		product.Category = *update.Category
	}
	if update.Stock != nil {
		product.Stock = *update.Stock
	}
	if update.Sales != nil {
		product.Sales = *update.Sales
	}
	if err := s.validate.Struct(product); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	if image != nil {
		url, err := s.uploadImage(ctx, image)
		if err != nil {
			return nil, err
		}
		product.Images = []string{url}
	}

	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct permanently removes a product by its ID.
func (s *ProductService) DeleteProduct(session *models.Session, id string) error {
	if err := RequireAdmin(session); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

// RecordSale registers qty fulfilled units against a product. It is driven
// by the order-fulfilled consumer, not by an HTTP session, so it carries no
// admin gate.
func (s *ProductService) RecordSale(id string, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("%w: quantity must be positive", apperrors.ErrValidation)
	}
	return s.repo.IncrementSales(id, qty)
}

func (s *ProductService) uploadImage(ctx context.Context, image interface{}) (string, error) {
	if s.uploader == nil {
		return "", fmt.Errorf("%w: no image store configured", apperrors.ErrImageUpload)
	}
	url, err := s.uploader.Upload(ctx, image, s.folder)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrImageUpload, err)
	}
	return url, nil
}
