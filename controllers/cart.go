package controllers

import (
	"context"
	"net/http"
	"time"

	"go-storefront/services"
	"go-storefront/utils"

	"github.com/gorilla/mux"
)

// CartController handles cart-related requests
type CartController struct {
	Service *services.CartService
	Timeout time.Duration
}

// NewCartController creates a new CartController
func NewCartController(service *services.CartService, timeout time.Duration) *CartController {
	return &CartController{Service: service, Timeout: timeout}
}

type addToCartRequest struct {
	ProductID string `json:"productId"`
	Quantity  *int   `json:"quantity"`
}

type updateCartRequest struct {
	Quantity *int `json:"quantity"`
}

// AddToCart adds a product to the user's cart
func (cc *CartController) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), cc.Timeout)
	defer cancel()

	cart, err := cc.Service.Add(ctx, mux.Vars(r)["userId"], req.ProductID, req.Quantity)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"message": "Cart updated", "cart": cart})
}

// GetCart retrieves the user's cart with products resolved
func (cc *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), cc.Timeout)
	defer cancel()

	cart, err := cc.Service.Get(ctx, mux.Vars(r)["userId"])
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, cart)
}

// UpdateCartItem sets the quantity of a product in the cart
func (cc *CartController) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var req updateCartRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), cc.Timeout)
	defer cancel()

	vars := mux.Vars(r)
	cart, err := cc.Service.UpdateQuantity(ctx, vars["userId"], vars["productId"], req.Quantity)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"message": "Cart item updated", "cart": cart})
}

// RemoveFromCart removes a product from the user's cart
func (cc *CartController) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), cc.Timeout)
	defer cancel()

	vars := mux.Vars(r)
	cart, err := cc.Service.Remove(ctx, vars["userId"], vars["productId"])
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"message": "Item removed from cart", "cart": cart})
}
