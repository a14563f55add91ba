// routes/routes.go
package routes

import (
	"net/http"

	"go-storefront/controllers"
	"go-storefront/middleware"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// Controllers groups the handlers the router dispatches to
type Controllers struct {
	User      *controllers.UserController
	Product   *controllers.ProductController
	Cart      *controllers.CartController
	WatchList *controllers.WatchListController
}

// chain wraps h so that mws run in the order given
func chain(h http.HandlerFunc, mws ...mux.MiddlewareFunc) http.Handler {
	var handler http.Handler = h
	for i := len(mws) - 1; i >= 0; i-- {
		handler = mws[i](handler)
	}
	return handler
}

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(router *mux.Router, c Controllers) {
	auth := middleware.AuthMiddleware
	admin := middleware.AdminMiddleware
	self := middleware.SelfOrAdminMiddleware

	router.Use(middleware.Tracing)

	router.HandleFunc("/test", controllers.Health).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()

	// Product routes
	api.HandleFunc("/products", c.Product.GetProducts).Methods("GET")
	api.Handle("/products", chain(c.Product.CreateProduct, auth, admin)).Methods("POST")
	api.HandleFunc("/products/{id}", c.Product.GetProductByID).Methods("GET")
	api.Handle("/products/{id}", chain(c.Product.UpdateProduct, auth, admin)).Methods("PATCH")
	api.Handle("/products/{id}", chain(c.Product.DeleteProduct, auth, admin)).Methods("DELETE")

	// Account routes
	api.HandleFunc("/register", c.User.Register).Methods("POST")
	api.HandleFunc("/login", c.User.Login).Methods("POST")
	api.Handle("/users", chain(c.User.GetUsers, auth, admin)).Methods("GET")
	api.Handle("/users/{id}", chain(c.User.DeleteUser, auth, admin)).Methods("DELETE")

	// Cart routes
	api.Handle("/users/{userId}/cart", chain(c.Cart.AddToCart, auth, self)).Methods("POST")
	api.Handle("/users/{userId}/cart", chain(c.Cart.GetCart, auth, self)).Methods("GET")
	api.Handle("/users/{userId}/cart/{productId}", chain(c.Cart.UpdateCartItem, auth, self)).Methods("PATCH")
	api.Handle("/users/{userId}/cart/{productId}", chain(c.Cart.RemoveFromCart, auth, self)).Methods("DELETE")

	// WatchList routes
	api.Handle("/users/{userId}/watchList", chain(c.WatchList.AddWatchList, auth, self)).Methods("POST")
	api.Handle("/users/{userId}/watchList", chain(c.WatchList.GetWatchList, auth, self)).Methods("GET")
	api.Handle("/users/{userId}/watchList/{productId}", chain(c.WatchList.RemoveFromWatchList, auth, self)).Methods("DELETE")

	router.NotFoundHandler = http.HandlerFunc(controllers.NotFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(controllers.NotFound)
}

// NewHandler builds the router and wraps it with the cross-cutting
// middleware, which also sees unmatched requests.
func NewHandler(c Controllers, allowedOrigins []string) http.Handler {
	router := mux.NewRouter()
	RegisterRoutes(router, c)

	cors := handlers.CORS(
		handlers.AllowedOrigins(allowedOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization", middleware.RequestIDHeader}),
		handlers.ExposedHeaders([]string{middleware.RequestIDHeader}),
	)

	return middleware.RequestID(middleware.Logger(cors(router)))
}
