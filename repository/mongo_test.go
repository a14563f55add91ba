package repository

import (
	"context"
	"testing"
	"time"

	"go-storefront/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func ns(mt *mtest.T) string {
	return mt.DB.Name() + "." + mt.Coll.Name()
}

func TestProductRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("find by id", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "title", Value: "Lamp"},
			{Key: "price", Value: 25.5},
			{Key: "imageUrl", Value: bson.A{"lamp.png"}},
		}))

		p, err := (&ProductRepository{Collection: mt.Coll}).FindByID(ctx, id)
		require.NoError(mt, err)
		assert.Equal(mt, id, p.ID)
		assert.Equal(mt, "Lamp", p.Title)
		assert.Equal(mt, 25.5, p.Price)
		assert.Equal(mt, []string{"lamp.png"}, p.ImageURL)
	})

	mt.Run("find by id missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch))

		_, err := (&ProductRepository{Collection: mt.Coll}).FindByID(ctx, primitive.NewObjectID())
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("list counts matches", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch,
				bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "category", Value: "shoes"}},
				bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "category", Value: "shoes"}},
			),
			mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch, bson.D{{Key: "n", Value: int32(7)}}),
		)

		products, total, err := (&ProductRepository{Collection: mt.Coll}).List(ctx,
			[]models.Condition{{Field: "category", Op: models.OpEq, Value: "shoes"}}, 0, 2)
		require.NoError(mt, err)
		assert.Len(mt, products, 2)
		assert.Equal(mt, int64(7), total)
	})

	mt.Run("delete", func(mt *mtest.T) {
		repo := &ProductRepository{Collection: mt.Coll}
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}),
		)

		id := primitive.NewObjectID()
		assert.NoError(mt, repo.Delete(ctx, id))
		assert.ErrorIs(mt, repo.Delete(ctx, id), ErrNotFound)
	})

	mt.Run("update missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		err := (&ProductRepository{Collection: mt.Coll}).Update(ctx, &models.Product{ID: primitive.NewObjectID(), Title: "Lamp"})
		assert.ErrorIs(mt, err, ErrNotFound)
	})
}

func TestUserRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	newRepo := func(mt *mtest.T) *UserRepository {
		return &UserRepository{Collection: mt.Coll, now: time.Now}
	}

	mt.Run("insert duplicate", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: ecommerce.users index: email_1",
		}))

		err := newRepo(mt).Insert(ctx, &models.User{Username: "alice", Email: "alice@x.com"})
		assert.ErrorIs(mt, err, ErrDuplicate)
	})

	mt.Run("add to cart increments existing entry", func(mt *mtest.T) {
		userID, productID := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: userID},
			{Key: "cart", Value: bson.A{bson.D{{Key: "productId", Value: productID}, {Key: "quantity", Value: 5}}}},
		}}))

		cart, err := newRepo(mt).AddToCart(ctx, userID, productID, 3)
		require.NoError(mt, err)
		assert.Equal(mt, []models.CartItem{{ProductID: productID, Quantity: 5}}, cart)
	})

	mt.Run("add to cart unknown user", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}),
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}),
			mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch),
		)

		_, err := newRepo(mt).AddToCart(ctx, primitive.NewObjectID(), primitive.NewObjectID(), 1)
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("watch list duplicate", func(mt *mtest.T) {
		userID := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}),
			mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch, bson.D{{Key: "_id", Value: userID}}),
		)

		_, err := newRepo(mt).AddToWatchList(ctx, userID, primitive.NewObjectID())
		assert.ErrorIs(mt, err, ErrAlreadyInList)
	})

	mt.Run("set quantity on missing entry", func(mt *mtest.T) {
		userID := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}),
			mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch, bson.D{{Key: "_id", Value: userID}}),
		)

		_, err := newRepo(mt).SetCartQuantity(ctx, userID, primitive.NewObjectID(), 4)
		assert.ErrorIs(mt, err, ErrNotInList)
	})

	mt.Run("remove from cart returns remaining entries", func(mt *mtest.T) {
		userID := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: userID},
			{Key: "cart", Value: bson.A{}},
		}}))

		cart, err := newRepo(mt).RemoveFromCart(ctx, userID, primitive.NewObjectID())
		require.NoError(mt, err)
		assert.NotNil(mt, cart)
		assert.Empty(mt, cart)
	})
}
