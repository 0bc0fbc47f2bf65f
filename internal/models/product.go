package models

import "time"

// Product represents a catalog entry managed through the dashboard.
// Images holds CDN URLs in upload order; it is stored as a JSON column.
// Deletes are hard deletes, so there is deliberately no soft-delete column.
type Product struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string    `json:"name" validate:"required,min=1,max=100"`
	Description string    `json:"description" validate:"omitempty,max=500"`
	Price       float64   `json:"price" validate:"required,gt=0"`
	Category    string    `json:"category" gorm:"type:varchar(100)" validate:"required"`
	Stock       int       `json:"stock" validate:"gte=0"`
	Images      []string  `json:"images" gorm:"serializer:json"`
	Sales       int       `json:"sales" validate:"gte=0"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductUpdate carries the fields of a partial update. A nil pointer means
// "leave the stored value alone"; a non-nil pointer to a zero value is an
// explicit overwrite. Images is only touched through a new upload, never
// through this struct directly.
type ProductUpdate struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string  `json:"description" validate:"omitempty,max=500"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	Category    *string  `json:"category" validate:"omitempty,min=1"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
	Sales       *int     `json:"sales" validate:"omitempty,gte=0"`
}
