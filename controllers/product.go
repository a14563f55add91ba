package controllers

import (
	"context"
	"net/http"
	"time"

	"go-storefront/models"
	"go-storefront/services"
	"go-storefront/utils"

	"github.com/gorilla/mux"
)

// ProductController handles product-related requests
type ProductController struct {
	Service *services.ProductService
	Timeout time.Duration
}

// NewProductController creates a new ProductController
func NewProductController(service *services.ProductService, timeout time.Duration) *ProductController {
	return &ProductController{Service: service, Timeout: timeout}
}

// GetProducts lists products with pagination and optional filters
func (pc *ProductController) GetProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := services.ParsePage(q.Get("page"), q.Get("limit"))
	filters := map[string]string{
		"category": q.Get("category"),
		"price":    q.Get("price"),
		"rating":   q.Get("rating"),
	}

	ctx, cancel := context.WithTimeout(r.Context(), pc.Timeout)
	defer cancel()

	result, err := pc.Service.List(ctx, page, filters)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, result)
}

// GetProductByID retrieves a single product by ID
func (pc *ProductController) GetProductByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pc.Timeout)
	defer cancel()

	product, err := pc.Service.Get(ctx, mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, product)
}

// CreateProduct handles adding a new product (Admin only)
func (pc *ProductController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var input models.ProductInput
	if err := utils.DecodeJSON(w, r, &input); err != nil {
		utils.WriteError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), pc.Timeout)
	defer cancel()

	product, err := pc.Service.Create(ctx, input)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, product)
}

// UpdateProduct handles patching a product (Admin only)
func (pc *ProductController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var input models.ProductInput
	if err := utils.DecodeJSON(w, r, &input); err != nil {
		utils.WriteError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), pc.Timeout)
	defer cancel()

	product, err := pc.Service.Update(ctx, mux.Vars(r)["id"], input)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, product)
}

// DeleteProduct handles deleting a product (Admin only)
func (pc *ProductController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pc.Timeout)
	defer cancel()

	if err := pc.Service.Delete(ctx, mux.Vars(r)["id"]); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}
