package repository

import (
	"context"
	"sync"
	"time"

	"go-storefront/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore is an in-process implementation of the product and user
// repositories. It keeps the same contract as the MongoDB repositories,
// including unique email/username and atomic list updates, and is meant for
// local runs and tests.
type MemoryStore struct {
	mu       sync.RWMutex
	products []models.Product
	users    []models.User
	now      func() time.Time
}

// NewMemoryStore returns an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

// Products exposes the product half of the store
func (s *MemoryStore) Products() *MemoryProducts { return &MemoryProducts{s} }

// Users exposes the user half of the store
func (s *MemoryStore) Users() *MemoryUsers { return &MemoryUsers{s} }

// MemoryProducts implements the product repository on a MemoryStore
type MemoryProducts struct{ s *MemoryStore }

// MemoryUsers implements the user repository on a MemoryStore
type MemoryUsers struct{ s *MemoryStore }

func (m *MemoryProducts) List(_ context.Context, conds []models.Condition, skip, limit int64) ([]models.Product, int64, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	matched := []models.Product{}
	for _, p := range m.s.products {
		if matchProduct(p, conds) {
			matched = append(matched, cloneProduct(p))
		}
	}
	total := int64(len(matched))
	return window(matched, skip, limit), total, nil
}

func (m *MemoryProducts) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	i := m.s.productIndex(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	p := cloneProduct(m.s.products[i])
	return &p, nil
}

func (m *MemoryProducts) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Product, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	out := []models.Product{}
	for _, id := range ids {
		if i := m.s.productIndex(id); i >= 0 {
			out = append(out, cloneProduct(m.s.products[i]))
		}
	}
	return out, nil
}

func (m *MemoryProducts) Insert(_ context.Context, p *models.Product) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if m.s.productIndex(p.ID) >= 0 {
		return ErrDuplicate
	}
	m.s.products = append(m.s.products, cloneProduct(*p))
	return nil
}

func (m *MemoryProducts) Update(_ context.Context, p *models.Product) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	i := m.s.productIndex(p.ID)
	if i < 0 {
		return ErrNotFound
	}
	updated := cloneProduct(*p)
	updated.CreatedAt = m.s.products[i].CreatedAt
	m.s.products[i] = updated
	return nil
}

func (m *MemoryProducts) Delete(_ context.Context, id primitive.ObjectID) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	i := m.s.productIndex(id)
	if i < 0 {
		return ErrNotFound
	}
	m.s.products = append(m.s.products[:i], m.s.products[i+1:]...)
	return nil
}

func (m *MemoryUsers) ExistsByEmail(_ context.Context, email string) (bool, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	for _, u := range m.s.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryUsers) Insert(_ context.Context, u *models.User) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	for _, existing := range m.s.users {
		if existing.ID == u.ID || existing.Email == u.Email || existing.Username == u.Username {
			return ErrDuplicate
		}
	}
	if u.Cart == nil {
		u.Cart = []models.CartItem{}
	}
	if u.WatchList == nil {
		u.WatchList = []models.WatchItem{}
	}
	m.s.users = append(m.s.users, cloneUser(*u))
	return nil
}

func (m *MemoryUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	for _, u := range m.s.users {
		if u.Email == email {
			c := cloneUser(u)
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryUsers) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	i := m.s.userIndex(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	c := cloneUser(m.s.users[i])
	return &c, nil
}

func (m *MemoryUsers) List(_ context.Context, skip, limit int64) ([]models.User, int64, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	all := make([]models.User, 0, len(m.s.users))
	for _, u := range m.s.users {
		c := cloneUser(u)
		c.Password = ""
		all = append(all, c)
	}
	return window(all, skip, limit), int64(len(all)), nil
}

func (m *MemoryUsers) Delete(_ context.Context, id primitive.ObjectID) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	i := m.s.userIndex(id)
	if i < 0 {
		return ErrNotFound
	}
	m.s.users = append(m.s.users[:i], m.s.users[i+1:]...)
	return nil
}

func (m *MemoryUsers) SetToken(_ context.Context, id primitive.ObjectID, token string) error {
	return m.s.mutateUser(id, func(u *models.User) error {
		u.Token = token
		return nil
	})
}

func (m *MemoryUsers) Cart(_ context.Context, userID primitive.ObjectID) ([]models.CartItem, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	i := m.s.userIndex(userID)
	if i < 0 {
		return nil, ErrNotFound
	}
	return append([]models.CartItem{}, m.s.users[i].Cart...), nil
}

func (m *MemoryUsers) WatchList(_ context.Context, userID primitive.ObjectID) ([]models.WatchItem, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	i := m.s.userIndex(userID)
	if i < 0 {
		return nil, ErrNotFound
	}
	return append([]models.WatchItem{}, m.s.users[i].WatchList...), nil
}

func (m *MemoryUsers) AddToCart(_ context.Context, userID, productID primitive.ObjectID, quantity int) ([]models.CartItem, error) {
	var cart []models.CartItem
	err := m.s.mutateUser(userID, func(u *models.User) error {
		found := false
		for i := range u.Cart {
			if u.Cart[i].ProductID == productID {
				u.Cart[i].Quantity += quantity
				found = true
				break
			}
		}
		if !found {
			u.Cart = append(u.Cart, models.CartItem{ProductID: productID, Quantity: quantity})
		}
		cart = append([]models.CartItem{}, u.Cart...)
		return nil
	})
	return cart, err
}

func (m *MemoryUsers) SetCartQuantity(_ context.Context, userID, productID primitive.ObjectID, quantity int) ([]models.CartItem, error) {
	var cart []models.CartItem
	err := m.s.mutateUser(userID, func(u *models.User) error {
		for i := range u.Cart {
			if u.Cart[i].ProductID == productID {
				u.Cart[i].Quantity = quantity
				cart = append([]models.CartItem{}, u.Cart...)
				return nil
			}
		}
		return ErrNotInList
	})
	return cart, err
}

func (m *MemoryUsers) RemoveFromCart(_ context.Context, userID, productID primitive.ObjectID) ([]models.CartItem, error) {
	var cart []models.CartItem
	err := m.s.mutateUser(userID, func(u *models.User) error {
		kept := []models.CartItem{}
		for _, item := range u.Cart {
			if item.ProductID != productID {
				kept = append(kept, item)
			}
		}
		u.Cart = kept
		cart = append([]models.CartItem{}, kept...)
		return nil
	})
	return cart, err
}

func (m *MemoryUsers) AddToWatchList(_ context.Context, userID, productID primitive.ObjectID) ([]models.WatchItem, error) {
	var list []models.WatchItem
	err := m.s.mutateUser(userID, func(u *models.User) error {
		for _, item := range u.WatchList {
			if item.ProductID == productID {
				return ErrAlreadyInList
			}
		}
		u.WatchList = append(u.WatchList, models.WatchItem{ProductID: productID})
		list = append([]models.WatchItem{}, u.WatchList...)
		return nil
	})
	return list, err
}

func (m *MemoryUsers) RemoveFromWatchList(_ context.Context, userID, productID primitive.ObjectID) ([]models.WatchItem, error) {
	var list []models.WatchItem
	err := m.s.mutateUser(userID, func(u *models.User) error {
		kept := []models.WatchItem{}
		for _, item := range u.WatchList {
			if item.ProductID != productID {
				kept = append(kept, item)
			}
		}
		u.WatchList = kept
		list = append([]models.WatchItem{}, kept...)
		return nil
	})
	return list, err
}

// mutateUser runs fn on the stored user under the write lock. The change is
// kept only when fn succeeds.
func (s *MemoryStore) mutateUser(id primitive.ObjectID, fn func(u *models.User) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.userIndex(id)
	if i < 0 {
		return ErrNotFound
	}
	u := cloneUser(s.users[i])
	if err := fn(&u); err != nil {
		return err
	}
	u.UpdatedAt = s.now()
	s.users[i] = u
	return nil
}

func (s *MemoryStore) productIndex(id primitive.ObjectID) int {
	for i := range s.products {
		if s.products[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *MemoryStore) userIndex(id primitive.ObjectID) int {
	for i := range s.users {
		if s.users[i].ID == id {
			return i
		}
	}
	return -1
}

// matchProduct evaluates conds with MongoDB semantics: a comparison on a
// missing optional field never matches.
func matchProduct(p models.Product, conds []models.Condition) bool {
	for _, c := range conds {
		switch c.Field {
		case "category":
			want, _ := c.Value.(string)
			if c.Op != models.OpEq || p.Category != want {
				return false
			}
		case "price":
			if !compareNumber(&p.Price, c) {
				return false
			}
		case "rating":
			if !compareNumber(p.Rating, c) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func compareNumber(v *float64, c models.Condition) bool {
	want, ok := c.Value.(float64)
	if v == nil || !ok {
		return false
	}
	switch c.Op {
	case models.OpEq:
		return *v == want
	case models.OpLte:
		return *v <= want
	case models.OpGte:
		return *v >= want
	}
	return false
}

func window[T any](items []T, skip, limit int64) []T {
	n := int64(len(items))
	if skip < 0 {
		skip = 0
	}
	if skip >= n {
		return []T{}
	}
	end := n
	if limit > 0 && limit < n-skip {
		end = skip + limit
	}
	return items[skip:end]
}

func cloneProduct(p models.Product) models.Product {
	p.ImageURL = cloneStrings(p.ImageURL)
	p.Tags = cloneStrings(p.Tags)
	p.Size = cloneStrings(p.Size)
	p.Color = cloneStrings(p.Color)
	p.Stock = cloneFloat(p.Stock)
	p.Rating = cloneFloat(p.Rating)
	p.Discount = cloneFloat(p.Discount)
	return p
}

func cloneUser(u models.User) models.User {
	u.Cart = append([]models.CartItem{}, u.Cart...)
	u.WatchList = append([]models.WatchItem{}, u.WatchList...)
	return u
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string{}, s...)
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
