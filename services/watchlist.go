package services

import (
	"context"
	"errors"

	"go-storefront/models"
	"go-storefront/repository"
	"go-storefront/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WatchListService implements per-user watch list operations
type WatchListService struct {
	store    WatchListStore
	products ProductLookup
}

// NewWatchListService creates a WatchListService
func NewWatchListService(store WatchListStore, products ProductLookup) *WatchListService {
	return &WatchListService{store: store, products: products}
}

// Add appends productID to the watch list; a product can be watched once
func (s *WatchListService) Add(ctx context.Context, userID, productID string) ([]models.WatchItem, error) {
	pid, err := parseProductID(productID)
	if err != nil {
		return nil, err
	}
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	list, err := s.store.AddToWatchList(ctx, uid, pid)
	if err != nil {
		return nil, watchListError(err, "Error adding to watchList")
	}
	return list, nil
}

// Get returns the watch list with every product reference resolved
func (s *WatchListService) Get(ctx context.Context, userID string) ([]models.WatchLine, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	list, err := s.store.WatchList(ctx, uid)
	if err != nil {
		return nil, watchListError(err, "Error fetching watchList")
	}

	ids := make([]primitive.ObjectID, 0, len(list))
	for _, item := range list {
		ids = append(ids, item.ProductID)
	}
	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, utils.NewInternal("Error fetching watchList", err)
	}

	byID := indexProducts(products)
	lines := make([]models.WatchLine, 0, len(list))
	for _, item := range list {
		lines = append(lines, models.WatchLine{Product: byID[item.ProductID]})
	}
	return lines, nil
}

// Remove drops productID from the watch list, succeeding when it is absent
func (s *WatchListService) Remove(ctx context.Context, userID, productID string) ([]models.WatchItem, error) {
	pid, err := parseProductID(productID)
	if err != nil {
		return nil, err
	}
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	list, err := s.store.RemoveFromWatchList(ctx, uid, pid)
	if err != nil {
		return nil, watchListError(err, "Error removing item from watchList")
	}
	return list, nil
}

func watchListError(err error, msg string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return utils.NewNotFound("User not found")
	case errors.Is(err, repository.ErrAlreadyInList):
		return utils.NewConflict("Item already in watchList")
	default:
		return utils.NewInternal(msg, err)
	}
}
