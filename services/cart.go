package services

import (
	"context"
	"errors"

	"go-storefront/models"
	"go-storefront/repository"
	"go-storefront/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartService implements per-user cart operations
type CartService struct {
	store    CartStore
	products ProductLookup
}

// NewCartService creates a CartService
func NewCartService(store CartStore, products ProductLookup) *CartService {
	return &CartService{store: store, products: products}
}

// Add puts quantity units of productID in the cart, adding to an existing
// entry for the same product. A missing or zero quantity counts as 1.
func (s *CartService) Add(ctx context.Context, userID, productID string, quantity *int) ([]models.CartItem, error) {
	if productID == "" {
		return nil, utils.NewInvalidArgument("Product ID is required")
	}
	pid, err := parseProductID(productID)
	if err != nil {
		return nil, err
	}
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	qty := 1
	if quantity != nil && *quantity != 0 {
		qty = *quantity
	}

	cart, err := s.store.AddToCart(ctx, uid, pid, qty)
	if err != nil {
		return nil, cartError(err, "Error adding to cart")
	}
	return cart, nil
}

// Get returns the cart with every product reference resolved
func (s *CartService) Get(ctx context.Context, userID string) ([]models.CartLine, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	cart, err := s.store.Cart(ctx, uid)
	if err != nil {
		return nil, cartError(err, "Error fetching cart")
	}

	ids := make([]primitive.ObjectID, 0, len(cart))
	for _, item := range cart {
		ids = append(ids, item.ProductID)
	}
	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, utils.NewInternal("Error fetching cart", err)
	}

	byID := indexProducts(products)
	lines := make([]models.CartLine, 0, len(cart))
	for _, item := range cart {
		lines = append(lines, models.CartLine{Product: byID[item.ProductID], Quantity: item.Quantity})
	}
	return lines, nil
}

// UpdateQuantity sets the quantity of a product already in the cart. Any
// integer is accepted.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID string, quantity *int) ([]models.CartItem, error) {
	pid, err := parseProductID(productID)
	if err != nil {
		return nil, err
	}
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	if quantity == nil {
		return nil, utils.NewInvalidArgument("Quantity is required")
	}

	cart, err := s.store.SetCartQuantity(ctx, uid, pid, *quantity)
	if err != nil {
		return nil, cartError(err, "Error updating cart item")
	}
	return cart, nil
}

// Remove drops productID from the cart. Removing a product that is not in
// the cart succeeds and leaves the cart as it was.
func (s *CartService) Remove(ctx context.Context, userID, productID string) ([]models.CartItem, error) {
	pid, err := parseProductID(productID)
	if err != nil {
		return nil, err
	}
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	cart, err := s.store.RemoveFromCart(ctx, uid, pid)
	if err != nil {
		return nil, cartError(err, "Error removing item from cart")
	}
	return cart, nil
}

func cartError(err error, msg string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return utils.NewNotFound("User not found")
	case errors.Is(err, repository.ErrNotInList):
		return utils.NewNotFound("Product not in cart")
	default:
		return utils.NewInternal(msg, err)
	}
}
