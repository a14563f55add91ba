package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles a user may hold
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents an account. Cart and WatchList are embedded.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Username  string             `bson:"username" json:"username"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password,omitempty" json:"-"`
	Role      string             `bson:"role,omitempty" json:"role,omitempty"`
	Token     string             `bson:"token,omitempty" json:"token,omitempty"`
	Cart      []CartItem         `bson:"cart" json:"cart"`
	WatchList []WatchItem        `bson:"watchList" json:"watchList"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// RegisterInput is the body of a registration request
type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email_basic"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=admin user"`
}

// Credentials is the body of a login request
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
