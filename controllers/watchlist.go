package controllers

import (
	"context"
	"net/http"
	"time"

	"go-storefront/services"
	"go-storefront/utils"

	"github.com/gorilla/mux"
)

// WatchListController handles watch list requests
type WatchListController struct {
	Service *services.WatchListService
	Timeout time.Duration
}

// NewWatchListController creates a new WatchListController
func NewWatchListController(service *services.WatchListService, timeout time.Duration) *WatchListController {
	return &WatchListController{Service: service, Timeout: timeout}
}

type watchListRequest struct {
	ProductID string `json:"productId"`
}

// AddWatchList adds a product to the user's watch list
func (wc *WatchListController) AddWatchList(w http.ResponseWriter, r *http.Request) {
	var req watchListRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), wc.Timeout)
	defer cancel()

	list, err := wc.Service.Add(ctx, mux.Vars(r)["userId"], req.ProductID)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"message": "watchList updated", "watchList": list})
}

func (wc *WatchListController) GetWatchList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), wc.Timeout)
	defer cancel()

	list, err := wc.Service.Get(ctx, mux.Vars(r)["userId"])
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, list)
}

func (wc *WatchListController) RemoveFromWatchList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), wc.Timeout)
	defer cancel()

	vars := mux.Vars(r)
	list, err := wc.Service.Remove(ctx, vars["userId"], vars["productId"])
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"message": "Item removed from watchList", "watchList": list})
}
