package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem represents an item in the user's cart
type CartItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

// WatchItem represents a product on the user's watch list
type WatchItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
}

// CartLine is a cart item with its product resolved. Product is nil when
// the referenced product no longer exists.
type CartLine struct {
	Product  *Product `json:"productId"`
	Quantity int      `json:"quantity"`
}

// WatchLine is a watch list item with its product resolved
type WatchLine struct {
	Product *Product `json:"productId"`
}
