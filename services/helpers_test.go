package services

import (
	"context"
	"testing"
	"time"

	"go-storefront/models"
	"go-storefront/repository"
	"go-storefront/utils"

	"github.com/stretchr/testify/require"
)

func init() {
	utils.JwtKey = []byte("services-test-secret")
}

type fixture struct {
	store     *repository.MemoryStore
	products  *ProductService
	users     *UserService
	cart      *CartService
	watchList *WatchListService
}

func newFixture() *fixture {
	store := repository.NewMemoryStore()
	users := NewUserService(store.Users(), nil, TokenTTLs{Register: time.Hour, Login: 24 * time.Hour})
	return &fixture{
		store:     store,
		products:  NewProductService(store.Products()),
		users:     users,
		cart:      NewCartService(store.Users(), store.Products()),
		watchList: NewWatchListService(store.Users(), store.Products()),
	}
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

func productInput(title, category string, price float64) models.ProductInput {
	return models.ProductInput{
		Title:       strPtr(title),
		Price:       floatPtr(price),
		Description: strPtr("description of " + title),
		ImageURL:    []string{title + ".png"},
		Category:    strPtr(category),
	}
}

func (f *fixture) createProduct(t *testing.T, in models.ProductInput) *models.Product {
	t.Helper()
	p, err := f.products.Create(context.Background(), in)
	require.NoError(t, err)
	return p
}

func (f *fixture) register(t *testing.T, username, email string) *models.User {
	t.Helper()
	u, err := f.users.Register(context.Background(), models.RegisterInput{
		Name: "Test User", Username: username, Email: email, Password: "secret1",
	})
	require.NoError(t, err)
	return u
}

func requireKind(t *testing.T, err error, kind utils.ErrorKind) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, utils.KindOf(err), "unexpected error: %v", err)
}
