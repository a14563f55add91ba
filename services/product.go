package services

import (
	"context"
	"errors"
	"math"
	"strconv"
	"time"

	"go-storefront/models"
	"go-storefront/repository"
	"go-storefront/utils"
)

// productFilter maps a recognised query parameter to the comparison it
// applies to a product field.
type productFilter struct {
	param   string
	field   string
	op      models.CompareOp
	numeric bool
}

var productFilters = []productFilter{
	{param: "category", field: "category", op: models.OpEq},
	{param: "price", field: "price", op: models.OpLte, numeric: true},
	{param: "rating", field: "rating", op: models.OpGte, numeric: true},
}

// ProductService implements catalog operations
type ProductService struct {
	store ProductStore
	now   func() time.Time
}

// NewProductService creates a ProductService over store
func NewProductService(store ProductStore) *ProductService {
	return &ProductService{store: store, now: time.Now}
}

// ProductConditions builds the listing filter from query values. Only the
// parameters present constrain the result; a non-numeric price or rating is
// rejected.
func ProductConditions(query map[string]string) ([]models.Condition, error) {
	conds := []models.Condition{}
	for _, f := range productFilters {
		raw, ok := query[f.param]
		if !ok || raw == "" {
			continue
		}
		var value interface{} = raw
		if f.numeric {
			n, err := strconv.ParseFloat(raw, 64)
			if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
				return nil, utils.NewInvalidArgument("Invalid " + f.param + " filter: must be a number")
			}
			value = n
		}
		conds = append(conds, models.Condition{Field: f.field, Op: f.op, Value: value})
	}
	return conds, nil
}

// List returns one page of the products matching query
func (s *ProductService) List(ctx context.Context, page models.Page, query map[string]string) (models.Paginated[models.Product], error) {
	conds, err := ProductConditions(query)
	if err != nil {
		return models.Paginated[models.Product]{}, err
	}

	products, total, err := s.store.List(ctx, conds, page.Skip(), page.Limit)
	if err != nil {
		return models.Paginated[models.Product]{}, utils.NewInternal("Error fetching products", err)
	}
	return models.NewPaginated(products, total, page), nil
}

// Get returns the product with the given hex id
func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	oid, err := parseID(id, "Invalid product ID format")
	if err != nil {
		return nil, err
	}

	p, err := s.store.FindByID(ctx, oid)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, utils.NewNotFound("Product not found")
	}
	if err != nil {
		return nil, utils.NewInternal("Error fetching product", err)
	}
	return p, nil
}

// Create validates in and stores a new product
func (s *ProductService) Create(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}

	p := models.NewProduct(in)
	now := s.now().UTC().Truncate(time.Millisecond)
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := s.store.Insert(ctx, &p); err != nil {
		return nil, utils.NewInternal("Error creating product", err)
	}
	return &p, nil
}

// Update merges the supplied fields of in into the stored product and
// validates the result as a whole.
func (s *ProductService) Update(ctx context.Context, id string, in models.ProductInput) (*models.Product, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	p.Apply(in)
	if err := utils.ValidateStruct(p.Input()); err != nil {
		return nil, err
	}
	p.UpdatedAt = s.now().UTC().Truncate(time.Millisecond)

	err = s.store.Update(ctx, p)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, utils.NewNotFound("Product not found")
	}
	if err != nil {
		return nil, utils.NewInternal("Error updating product", err)
	}
	return p, nil
}

// Delete removes the product with the given hex id
func (s *ProductService) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id, "Invalid product ID format")
	if err != nil {
		return err
	}

	err = s.store.Delete(ctx, oid)
	if errors.Is(err, repository.ErrNotFound) {
		return utils.NewNotFound("Product not found")
	}
	if err != nil {
		return utils.NewInternal("Error deleting product", err)
	}
	return nil
}
