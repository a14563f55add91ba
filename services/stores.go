package services

import (
	"context"

	"go-storefront/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductStore persists products
type ProductStore interface {
	List(ctx context.Context, conds []models.Condition, skip, limit int64) ([]models.Product, int64, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error)
	Insert(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// UserStore persists user accounts
type UserStore interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Insert(ctx context.Context, u *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	List(ctx context.Context, skip, limit int64) ([]models.User, int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	SetToken(ctx context.Context, id primitive.ObjectID, token string) error
}

// CartStore mutates the cart embedded in a user document. Each mutation is
// atomic and returns the cart as stored afterwards.
type CartStore interface {
	Cart(ctx context.Context, userID primitive.ObjectID) ([]models.CartItem, error)
	AddToCart(ctx context.Context, userID, productID primitive.ObjectID, quantity int) ([]models.CartItem, error)
	SetCartQuantity(ctx context.Context, userID, productID primitive.ObjectID, quantity int) ([]models.CartItem, error)
	RemoveFromCart(ctx context.Context, userID, productID primitive.ObjectID) ([]models.CartItem, error)
}

// WatchListStore mutates the watch list embedded in a user document
type WatchListStore interface {
	WatchList(ctx context.Context, userID primitive.ObjectID) ([]models.WatchItem, error)
	AddToWatchList(ctx context.Context, userID, productID primitive.ObjectID) ([]models.WatchItem, error)
	RemoveFromWatchList(ctx context.Context, userID, productID primitive.ObjectID) ([]models.WatchItem, error)
}

// ProductLookup resolves product references
type ProductLookup interface {
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error)
}
