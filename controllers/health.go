package controllers

import (
	"net/http"

	"go-storefront/utils"
)

// Health answers liveness checks
func Health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

// NotFound answers every unmatched route
func NotFound(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusNotFound, map[string]string{"error": "Route not found"})
}
