package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"go-storefront/models"
	"go-storefront/repository"
	"go-storefront/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const invalidCredentials = "Invalid credentials"

// TokenTTLs sets how long issued tokens stay valid
type TokenTTLs struct {
	Register time.Duration
	Login    time.Duration
}

// LoginResult is returned by a successful login
type LoginResult struct {
	ID    string
	Token string
	Role  string
}

// UserService implements registration, login and user administration
type UserService struct {
	store  UserStore
	email  *utils.EmailService
	ttls   TokenTTLs
	now    func() time.Time
	notify func(fn func())
}

// NewUserService creates a UserService. email may be nil.
func NewUserService(store UserStore, email *utils.EmailService, ttls TokenTTLs) *UserService {
	return &UserService{
		store:  store,
		email:  email,
		ttls:   ttls,
		now:    time.Now,
		notify: func(fn func()) { go fn() },
	}
}

func normalizeRegistration(in models.RegisterInput) models.RegisterInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Username = strings.TrimSpace(in.Username)
	in.Email = normalizeEmail(in.Email)
	return in
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user account and issues its first token
func (s *UserService) Register(ctx context.Context, in models.RegisterInput) (*models.User, error) {
	in = normalizeRegistration(in)
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}

	exists, err := s.store.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, utils.NewInternal("Error checking user", err)
	}
	if exists {
		return nil, utils.NewConflict("User already exists")
	}

	hashed, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, utils.NewInternal("Error hashing password", err)
	}

	now := s.now().UTC().Truncate(time.Millisecond)
	user := &models.User{
		ID:        primitive.NewObjectID(),
		Name:      in.Name,
		Username:  in.Username,
		Email:     in.Email,
		Password:  hashed,
		Role:      in.Role,
		Cart:      []models.CartItem{},
		WatchList: []models.WatchItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	user.Token, err = utils.GenerateJWT(user.ID.Hex(), user.Email, "", s.ttls.Register)
	if err != nil {
		return nil, utils.NewInternal("Error generating token", err)
	}

	err = s.store.Insert(ctx, user)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, utils.NewConflict("Username or email already exists")
	}
	if err != nil {
		return nil, utils.NewInternal("Error creating user", err)
	}

	if s.email.Enabled() {
		to, name := user.Email, user.Name
		s.notify(func() {
			if err := s.email.SendWelcomeEmail(to, name); err != nil {
				log.Printf("Failed to send email to %s: %v", to, err)
			}
		})
	}
	return user, nil
}

// Login checks creds and issues a token carrying the user's role. Unknown
// emails and wrong passwords fail identically.
func (s *UserService) Login(ctx context.Context, creds models.Credentials) (*LoginResult, error) {
	user, err := s.store.FindByEmail(ctx, normalizeEmail(creds.Email))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, utils.NewUnauthorized(invalidCredentials)
	}
	if err != nil {
		return nil, utils.NewInternal("Error finding user", err)
	}

	if !utils.CheckPassword(user.Password, creds.Password) {
		return nil, utils.NewUnauthorized(invalidCredentials)
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.Email, user.Role, s.ttls.Login)
	if err != nil {
		return nil, utils.NewInternal("Error generating token", err)
	}
	if err := s.store.SetToken(ctx, user.ID, token); err != nil {
		return nil, utils.NewInternal("Error saving token", err)
	}

	return &LoginResult{ID: user.ID.Hex(), Token: token, Role: user.Role}, nil
}

// List returns one page of users without their password hashes
func (s *UserService) List(ctx context.Context, page models.Page) (models.Paginated[models.User], error) {
	users, total, err := s.store.List(ctx, page.Skip(), page.Limit)
	if err != nil {
		return models.Paginated[models.User]{}, utils.NewInternal("Error fetching users", err)
	}
	return models.NewPaginated(users, total, page), nil
}

// Delete removes the user with the given hex id
func (s *UserService) Delete(ctx context.Context, id string) error {
	oid, err := parseUserID(id)
	if err != nil {
		return err
	}

	err = s.store.Delete(ctx, oid)
	if errors.Is(err, repository.ErrNotFound) {
		return utils.NewNotFound("User not found")
	}
	if err != nil {
		return utils.NewInternal("Error deleting user", err)
	}
	return nil
}
