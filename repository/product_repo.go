package repository

import (
	"context"
	"errors"
	"fmt"

	"go-storefront/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const productsCollection = "products"

// versionless hides the document version key written by older clients
var versionless = bson.M{"__v": 0}

// ProductRepository stores products in MongoDB
type ProductRepository struct {
	Collection *mongo.Collection
}

// NewProductRepository creates a ProductRepository on the products collection
func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{Collection: db.Collection(productsCollection)}
}

// List returns one page of products matching conds and the total match count
func (r *ProductRepository) List(ctx context.Context, conds []models.Condition, skip, limit int64) (products []models.Product, total int64, err error) {
	ctx, span := startSpan(ctx, productsCollection, "find")
	defer func() { endSpan(span, err) }()

	filter := filterFromConditions(conds)
	opts := options.Find().
		SetProjection(versionless).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find products: %w", err)
	}
	defer cursor.Close(ctx)

	products = []models.Product{}
	if err = cursor.All(ctx, &products); err != nil {
		return nil, 0, fmt.Errorf("decode products: %w", err)
	}

	total, err = r.Collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}
	return products, total, nil
}

// FindByID returns the product with the given id
func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (product *models.Product, err error) {
	ctx, span := startSpan(ctx, productsCollection, "findOne")
	defer func() { endSpan(span, err) }()

	var p models.Product
	err = r.Collection.FindOne(ctx, bson.M{"_id": id}, options.FindOne().SetProjection(versionless)).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find product %s: %w", id.Hex(), err)
	}
	return &p, nil
}

// FindByIDs returns the products among ids that exist, in no particular order
func (r *ProductRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) (products []models.Product, err error) {
	ctx, span := startSpan(ctx, productsCollection, "find")
	defer func() { endSpan(span, err) }()

	products = []models.Product{}
	if len(ids) == 0 {
		return products, nil
	}

	cursor, err := r.Collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, options.Find().SetProjection(versionless))
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}

// Insert stores p. p.ID is filled in when empty.
func (r *ProductRepository) Insert(ctx context.Context, p *models.Product) (err error) {
	ctx, span := startSpan(ctx, productsCollection, "insert")
	defer func() { endSpan(span, err) }()

	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if _, err = r.Collection.InsertOne(ctx, p); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// Update overwrites the mutable fields of the stored product with p's
func (r *ProductRepository) Update(ctx context.Context, p *models.Product) (err error) {
	ctx, span := startSpan(ctx, productsCollection, "update")
	defer func() { endSpan(span, err) }()

	update := bson.M{"$set": bson.M{
		"title":       p.Title,
		"price":       p.Price,
		"description": p.Description,
		"imageUrl":    p.ImageURL,
		"category":    p.Category,
		"stock":       p.Stock,
		"rating":      p.Rating,
		"isActive":    p.IsActive,
		"tags":        p.Tags,
		"discount":    p.Discount,
		"size":        p.Size,
		"color":       p.Color,
		"updatedAt":   p.UpdatedAt,
	}}

	res, err := r.Collection.UpdateOne(ctx, bson.M{"_id": p.ID}, update)
	if err != nil {
		return fmt.Errorf("update product %s: %w", p.ID.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the product with the given id
func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) (err error) {
	ctx, span := startSpan(ctx, productsCollection, "delete")
	defer func() { endSpan(span, err) }()

	res, err := r.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete product %s: %w", id.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
