package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-storefront/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const usersCollection = "users"

// maxPushAttempts bounds the increment/push loop in AddToCart
const maxPushAttempts = 3

// UserRepository stores users, with their embedded cart and watch list, in
// MongoDB. List mutations are single-document atomic updates.
type UserRepository struct {
	Collection *mongo.Collection
	now        func() time.Time
}

// NewUserRepository creates a UserRepository on the users collection
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{Collection: db.Collection(usersCollection), now: time.Now}
}

// EnsureIndexes creates the unique indexes on email and username
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}
	return nil
}

// ExistsByEmail reports whether a user with email exists
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (exists bool, err error) {
	ctx, span := startSpan(ctx, usersCollection, "count")
	defer func() { endSpan(span, err) }()

	count, err := r.Collection.CountDocuments(ctx, bson.M{"email": email}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	return count > 0, nil
}

// Insert stores u. u.ID is filled in when empty.
func (r *UserRepository) Insert(ctx context.Context, u *models.User) (err error) {
	ctx, span := startSpan(ctx, usersCollection, "insert")
	defer func() { endSpan(span, err) }()

	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if u.Cart == nil {
		u.Cart = []models.CartItem{}
	}
	if u.WatchList == nil {
		u.WatchList = []models.WatchItem{}
	}
	if _, err = r.Collection.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// FindByEmail returns the user with the given email, password included
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email}, nil)
}

// FindByID returns the user with the given id
func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id}, nil)
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M, projection bson.M) (user *models.User, err error) {
	ctx, span := startSpan(ctx, usersCollection, "findOne")
	defer func() { endSpan(span, err) }()

	opts := options.FindOne()
	if projection != nil {
		opts.SetProjection(projection)
	}

	var u models.User
	err = r.Collection.FindOne(ctx, filter, opts).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

// List returns one page of users without password or version fields
func (r *UserRepository) List(ctx context.Context, skip, limit int64) (users []models.User, total int64, err error) {
	ctx, span := startSpan(ctx, usersCollection, "find")
	defer func() { endSpan(span, err) }()

	opts := options.Find().
		SetProjection(bson.M{"password": 0, "__v": 0}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.Collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find users: %w", err)
	}
	defer cursor.Close(ctx)

	users = []models.User{}
	if err = cursor.All(ctx, &users); err != nil {
		return nil, 0, fmt.Errorf("decode users: %w", err)
	}

	total, err = r.Collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}
	return users, total, nil
}

// Delete removes the user with the given id
func (r *UserRepository) Delete(ctx context.Context, id primitive.ObjectID) (err error) {
	ctx, span := startSpan(ctx, usersCollection, "delete")
	defer func() { endSpan(span, err) }()

	res, err := r.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete user %s: %w", id.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetToken records the last issued token on the user
func (r *UserRepository) SetToken(ctx context.Context, id primitive.ObjectID, token string) (err error) {
	ctx, span := startSpan(ctx, usersCollection, "update")
	defer func() { endSpan(span, err) }()

	res, err := r.Collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"token": token, "updatedAt": r.now()}})
	if err != nil {
		return fmt.Errorf("set token: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Cart returns the user's cart
func (r *UserRepository) Cart(ctx context.Context, userID primitive.ObjectID) ([]models.CartItem, error) {
	u, err := r.findOne(ctx, bson.M{"_id": userID}, bson.M{"cart": 1})
	if err != nil {
		return nil, err
	}
	return nonNilCart(u.Cart), nil
}

// WatchList returns the user's watch list
func (r *UserRepository) WatchList(ctx context.Context, userID primitive.ObjectID) ([]models.WatchItem, error) {
	u, err := r.findOne(ctx, bson.M{"_id": userID}, bson.M{"watchList": 1})
	if err != nil {
		return nil, err
	}
	return nonNilWatchList(u.WatchList), nil
}

// AddToCart increments the quantity of productID in the cart by quantity,
// appending a new entry when the product is not in the cart yet.
func (r *UserRepository) AddToCart(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (cart []models.CartItem, err error) {
	ctx, span := startSpan(ctx, usersCollection, "addToCart")
	defer func() { endSpan(span, err) }()

	for attempt := 0; attempt < maxPushAttempts; attempt++ {
		// Existing entry: bump it in place
		u, err := r.updateList(ctx,
			bson.M{"_id": userID, "cart.productId": productID},
			bson.M{"$inc": bson.M{"cart.$.quantity": quantity}, "$set": bson.M{"updatedAt": r.now()}},
			"cart")
		if err == nil {
			return nonNilCart(u.Cart), nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}

		// No entry: append, unless one was added since the first update
		u, err = r.updateList(ctx,
			bson.M{"_id": userID, "cart.productId": bson.M{"$ne": productID}},
			bson.M{
				"$push": bson.M{"cart": models.CartItem{ProductID: productID, Quantity: quantity}},
				"$set":  bson.M{"updatedAt": r.now()},
			},
			"cart")
		if err == nil {
			return nonNilCart(u.Cart), nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}

		if _, err := r.findOne(ctx, bson.M{"_id": userID}, bson.M{"_id": 1}); err != nil {
			return nil, err
		}
	}
	return nil, fmt.Errorf("add to cart: too much contention on user %s", userID.Hex())
}

// SetCartQuantity sets the quantity of an existing cart entry
func (r *UserRepository) SetCartQuantity(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (cart []models.CartItem, err error) {
	ctx, span := startSpan(ctx, usersCollection, "setCartQuantity")
	defer func() { endSpan(span, err) }()

	u, err := r.updateList(ctx,
		bson.M{"_id": userID, "cart.productId": productID},
		bson.M{"$set": bson.M{"cart.$.quantity": quantity, "updatedAt": r.now()}},
		"cart")
	if errors.Is(err, ErrNotFound) {
		if _, err := r.findOne(ctx, bson.M{"_id": userID}, bson.M{"_id": 1}); err != nil {
			return nil, err
		}
		return nil, ErrNotInList
	}
	if err != nil {
		return nil, err
	}
	return nonNilCart(u.Cart), nil
}

// RemoveFromCart drops every cart entry for productID. Removing an absent
// product leaves the cart unchanged.
func (r *UserRepository) RemoveFromCart(ctx context.Context, userID, productID primitive.ObjectID) (cart []models.CartItem, err error) {
	ctx, span := startSpan(ctx, usersCollection, "removeFromCart")
	defer func() { endSpan(span, err) }()

	u, err := r.updateList(ctx,
		bson.M{"_id": userID},
		bson.M{"$pull": bson.M{"cart": bson.M{"productId": productID}}, "$set": bson.M{"updatedAt": r.now()}},
		"cart")
	if err != nil {
		return nil, err
	}
	return nonNilCart(u.Cart), nil
}

// AddToWatchList appends productID to the watch list. It fails with
// ErrAlreadyInList when the product is already watched.
func (r *UserRepository) AddToWatchList(ctx context.Context, userID, productID primitive.ObjectID) (list []models.WatchItem, err error) {
	ctx, span := startSpan(ctx, usersCollection, "addToWatchList")
	defer func() { endSpan(span, err) }()

	u, err := r.updateList(ctx,
		bson.M{"_id": userID, "watchList.productId": bson.M{"$ne": productID}},
		bson.M{
			"$push": bson.M{"watchList": models.WatchItem{ProductID: productID}},
			"$set":  bson.M{"updatedAt": r.now()},
		},
		"watchList")
	if errors.Is(err, ErrNotFound) {
		if _, err := r.findOne(ctx, bson.M{"_id": userID}, bson.M{"_id": 1}); err != nil {
			return nil, err
		}
		return nil, ErrAlreadyInList
	}
	if err != nil {
		return nil, err
	}
	return nonNilWatchList(u.WatchList), nil
}

// RemoveFromWatchList drops productID from the watch list, a no-op when
// absent.
func (r *UserRepository) RemoveFromWatchList(ctx context.Context, userID, productID primitive.ObjectID) (list []models.WatchItem, err error) {
	ctx, span := startSpan(ctx, usersCollection, "removeFromWatchList")
	defer func() { endSpan(span, err) }()

	u, err := r.updateList(ctx,
		bson.M{"_id": userID},
		bson.M{"$pull": bson.M{"watchList": bson.M{"productId": productID}}, "$set": bson.M{"updatedAt": r.now()}},
		"watchList")
	if err != nil {
		return nil, err
	}
	return nonNilWatchList(u.WatchList), nil
}

// updateList applies update to the user matching filter and returns the
// updated document projected to field. ErrNotFound means filter matched
// nothing.
func (r *UserRepository) updateList(ctx context.Context, filter, update bson.M, field string) (*models.User, error) {
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{field: 1})

	var u models.User
	err := r.Collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update user %s: %w", field, err)
	}
	return &u, nil
}

func nonNilCart(items []models.CartItem) []models.CartItem {
	if items == nil {
		return []models.CartItem{}
	}
	return items
}

func nonNilWatchList(items []models.WatchItem) []models.WatchItem {
	if items == nil {
		return []models.WatchItem{}
	}
	return items
}
