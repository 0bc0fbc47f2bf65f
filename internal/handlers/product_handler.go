package handlers

import (
	"errors"
	"log"
	"strconv"

	"etalase/internal/apperrors"
	"etalase/internal/middleware"
	"etalase/internal/models"
	"etalase/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes registers the product routes. Reads are public; mutations
// go on the protected router so the JWT middleware runs first.
func (h *ProductHandler) RegisterRoutes(public, protected fiber.Router) {
	public.Get("/products", h.HandleListProducts)
	public.Get("/products/:id", h.HandleGetProduct)

	protected.Post("/products", h.HandleCreateProduct)
	protected.Put("/products/:id", h.HandleUpdateProduct)
	protected.Delete("/products/:id", h.HandleDeleteProduct)
}

// HandleListProducts returns every product, newest first.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	products, err := h.service.ListProducts()
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve products",
		})
	}
	return c.JSON(products)
}

// HandleGetProduct returns a single product by its ID.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	product, err := h.service.GetProduct(c.Params("id"))
	if err != nil {
		return productErrorResponse(c, err, "Could not retrieve product")
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a product from a multipart form. The image
// part is optional; when present it is uploaded to the image store before
// the record is written.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	input := services.CreateProductInput{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		Category:    c.FormValue("category"),
	}
	if v := c.FormValue("price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid price",
			})
		}
		input.Price = price
	}
	if v := c.FormValue("stock"); v != "" {
		stock, err := strconv.Atoi(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid stock",
			})
		}
		input.Stock = stock
	}

	var image interface{}
	if fileHeader, err := c.FormFile("image"); err == nil && fileHeader != nil {
		file, err := fileHeader.Open()
		if err != nil {
			log.Printf("Error opening uploaded image: %v", err)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Could not read uploaded image",
			})
		}
		defer file.Close()
		image = file
	}

	product, err := h.service.CreateProduct(c.Context(), middleware.SessionFromCtx(c), input, image)
	if err != nil {
		return productErrorResponse(c, err, "Could not create product")
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// UpdateProductRequest is the JSON body of a partial update. Absent fields
// stay nil and never overwrite stored values. Image, when present, is a
// base64 data URI to upload or an existing URL to keep.
type UpdateProductRequest struct {
	models.ProductUpdate
	Image *string `json:"image"`
}

// HandleUpdateProduct applies a partial update to a product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var req UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	var image interface{}
	if req.Image != nil && *req.Image != "" {
		image = *req.Image
	}

	product, err := h.service.UpdateProduct(c.Context(), middleware.SessionFromCtx(c), c.Params("id"), req.ProductUpdate, image)
	if err != nil {
		return productErrorResponse(c, err, "Could not update product")
	}
	return c.JSON(product)
}

// HandleDeleteProduct permanently removes a product.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	if err := h.service.DeleteProduct(middleware.SessionFromCtx(c), c.Params("id")); err != nil {
		return productErrorResponse(c, err, "Could not delete product")
	}
	return c.JSON(fiber.Map{
		"message": "Product deleted successfully",
	})
}

// productErrorResponse maps service errors onto HTTP statuses. Unclassified
// errors are logged and collapsed to a generic 500 so internals never leak.
func productErrorResponse(c *fiber.Ctx, err error, genericMessage string) error {
	switch {
	case errors.Is(err, apperrors.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
		})
	case errors.Is(err, apperrors.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
		})
	case errors.Is(err, apperrors.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Product not found",
		})
	case errors.Is(err, apperrors.ErrImageUpload):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"message": "Image upload failed",
		})
	default:
		log.Printf("%s: %v", genericMessage, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": genericMessage,
		})
	}
}
