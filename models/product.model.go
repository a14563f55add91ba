package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product represents a catalog entry
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Title       string             `bson:"title" json:"title"`
	Price       float64            `bson:"price" json:"price"`
	Description string             `bson:"description" json:"description"`
	ImageURL    []string           `bson:"imageUrl" json:"imageUrl"`
	Category    string             `bson:"category" json:"category"`
	Stock       *float64           `bson:"stock,omitempty" json:"stock,omitempty"`
	Rating      *float64           `bson:"rating,omitempty" json:"rating,omitempty"`
	IsActive    bool               `bson:"isActive" json:"isActive"`
	Tags        []string           `bson:"tags" json:"tags"`
	Discount    *float64           `bson:"discount,omitempty" json:"discount,omitempty"`
	Size        []string           `bson:"size" json:"size"`
	Color       []string           `bson:"color" json:"color"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ProductInput is the request body for creating or patching a product.
// A nil field means "not supplied".
type ProductInput struct {
	Title       *string  `json:"title" validate:"required,min=3"`
	Price       *float64 `json:"price" validate:"required"`
	Description *string  `json:"description" validate:"required"`
	ImageURL    []string `json:"imageUrl" validate:"required,min=1"`
	Category    *string  `json:"category" validate:"required"`
	Stock       *float64 `json:"stock"`
	Rating      *float64 `json:"rating"`
	IsActive    *bool    `json:"isActive"`
	Tags        []string `json:"tags"`
	Discount    *float64 `json:"discount"`
	Size        []string `json:"size"`
	Color       []string `json:"color"`
}

// NewProduct builds a product from a create request
func NewProduct(in ProductInput) Product {
	p := Product{IsActive: true}
	p.Apply(in)
	return p
}

// Apply merges the supplied fields of in into p
func (p *Product) Apply(in ProductInput) {
	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.ImageURL != nil {
		p.ImageURL = in.ImageURL
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.Stock != nil {
		p.Stock = in.Stock
	}
	if in.Rating != nil {
		p.Rating = in.Rating
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	if in.Tags != nil {
		p.Tags = in.Tags
	}
	if in.Discount != nil {
		p.Discount = in.Discount
	}
	if in.Size != nil {
		p.Size = in.Size
	}
	if in.Color != nil {
		p.Color = in.Color
	}
}

// Input returns p as a fully populated ProductInput so the merged document
// can be run through the same validation as a create request.
func (p Product) Input() ProductInput {
	return ProductInput{
		Title:       &p.Title,
		Price:       &p.Price,
		Description: &p.Description,
		ImageURL:    p.ImageURL,
		Category:    &p.Category,
		Stock:       p.Stock,
		Rating:      p.Rating,
		IsActive:    &p.IsActive,
		Tags:        p.Tags,
		Discount:    p.Discount,
		Size:        p.Size,
		Color:       p.Color,
	}
}
