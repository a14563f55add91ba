package controllers

import (
	"context"
	"net/http"
	"time"

	"go-storefront/models"
	"go-storefront/services"
	"go-storefront/utils"

	"github.com/gorilla/mux"
)

// UserController handles account-related requests
type UserController struct {
	Service *services.UserService
	Timeout time.Duration
}

// NewUserController creates a new UserController
func NewUserController(service *services.UserService, timeout time.Duration) *UserController {
	return &UserController{Service: service, Timeout: timeout}
}

// Register handles user registration
func (uc *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var input models.RegisterInput
	if err := utils.DecodeJSON(w, r, &input); err != nil {
		utils.WriteError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), uc.Timeout)
	defer cancel()

	user, err := uc.Service.Register(ctx, input)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, user)
}

type loginUser struct {
	ID    string `json:"id"`
	Token string `json:"token"`
}

type loginResponse struct {
	Msg  string    `json:"msg"`
	User loginUser `json:"user"`
	Role string    `json:"role,omitempty"`
}

// Login handles user authentication
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := utils.DecodeJSON(w, r, &creds); err != nil {
		utils.WriteError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), uc.Timeout)
	defer cancel()

	result, err := uc.Service.Login(ctx, creds)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, loginResponse{
		Msg:  "Login successful",
		User: loginUser{ID: result.ID, Token: result.Token},
		Role: result.Role,
	})
}

// GetUsers lists users (Admin only)
func (uc *UserController) GetUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := services.ParsePage(q.Get("page"), q.Get("limit"))

	ctx, cancel := context.WithTimeout(r.Context(), uc.Timeout)
	defer cancel()

	result, err := uc.Service.List(ctx, page)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, result)
}

// DeleteUser removes a user (Admin only)
func (uc *UserController) DeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), uc.Timeout)
	defer cancel()

	if err := uc.Service.Delete(ctx, mux.Vars(r)["id"]); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
}
