package services

import (
	"context"
	"sync"
	"testing"

	"go-storefront/models"
	"go-storefront/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type recordingMailer struct {
	mu   sync.Mutex
	sent []string
}

func (m *recordingMailer) SendEmail(toEmail, subject, htmlContent string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, toEmail)
	return nil
}

func TestRegister(t *testing.T) {
	f := newFixture()

	u, err := f.users.Register(context.Background(), models.RegisterInput{
		Name: "  Alice ", Username: " alice ", Email: " Alice@X.com ", Password: "secret1", Role: "admin",
	})
	require.NoError(t, err)

	assert.Equal(t, "Alice", u.Name)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "alice@x.com", u.Email)
	assert.Equal(t, models.RoleAdmin, u.Role)
	assert.NotEqual(t, "secret1", u.Password)
	assert.True(t, utils.CheckPassword(u.Password, "secret1"))
	assert.NotNil(t, u.Cart)
	assert.NotNil(t, u.WatchList)

	claims, err := utils.ParseJWT(u.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID.Hex(), claims.ID)
	assert.Equal(t, "alice@x.com", claims.Email)
	assert.Empty(t, claims.Role)

	stored, err := f.store.Users().FindByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Token, stored.Token)
}

func TestRegisterRejectsShortUsername(t *testing.T) {
	f := newFixture()

	_, err := f.users.Register(context.Background(), models.RegisterInput{
		Name: "A", Username: "ab", Email: "a@x.com", Password: "secret1",
	})
	requireKind(t, err, utils.KindValidation)

	exists, err := f.store.Users().ExistsByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	first := f.register(t, "alice", "alice@x.com")

	_, err := f.users.Register(ctx, models.RegisterInput{
		Name: "Other", Username: "other", Email: "ALICE@x.com", Password: "another1",
	})
	requireKind(t, err, utils.KindConflict)

	stored, err := f.store.Users().FindByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, stored.ID)
	assert.Equal(t, "alice", stored.Username)
	assert.True(t, utils.CheckPassword(stored.Password, "secret1"))
}

func TestRegisterDuplicateUsername(t *testing.T) {
	f := newFixture()
	f.register(t, "alice", "alice@x.com")

	_, err := f.users.Register(context.Background(), models.RegisterInput{
		Name: "Other", Username: "alice", Email: "other@x.com", Password: "another1",
	})
	requireKind(t, err, utils.KindConflict)
}

func TestRegisterSendsWelcomeEmail(t *testing.T) {
	f := newFixture()
	mailer := &recordingMailer{}
	f.users.email = utils.NewEmailService(mailer)
	f.users.notify = func(fn func()) { fn() }

	f.register(t, "alice", "alice@x.com")
	assert.Equal(t, []string{"alice@x.com"}, mailer.sent)
}

func TestLogin(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	u := f.register(t, "alice", "alice@x.com")

	res, err := f.users.Login(ctx, models.Credentials{Email: "Alice@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, u.ID.Hex(), res.ID)

	claims, err := utils.ParseJWT(res.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID.Hex(), claims.ID)

	stored, err := f.store.Users().FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, res.Token, stored.Token)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.register(t, "alice", "alice@x.com")

	_, wrongPassword := f.users.Login(ctx, models.Credentials{Email: "alice@x.com", Password: "nope!!"})
	_, unknownEmail := f.users.Login(ctx, models.Credentials{Email: "ghost@x.com", Password: "secret1"})

	requireKind(t, wrongPassword, utils.KindUnauthorized)
	requireKind(t, unknownEmail, utils.KindUnauthorized)

	var a, b *utils.AppError
	require.ErrorAs(t, wrongPassword, &a)
	require.ErrorAs(t, unknownEmail, &b)
	assert.Equal(t, a.Message, b.Message)
}

func TestListUsersHidesPasswords(t *testing.T) {
	f := newFixture()
	for _, name := range []string{"alice", "bobby", "carol"} {
		f.register(t, name, name+"@x.com")
	}

	res, err := f.users.List(context.Background(), models.Page{Number: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Total)
	assert.Equal(t, int64(2), res.Pages)
	require.Len(t, res.Data, 2)
	for _, u := range res.Data {
		assert.Empty(t, u.Password)
	}
}

func TestListUsersFarPage(t *testing.T) {
	f := newFixture()
	f.register(t, "alice", "alice@x.com")

	res, err := f.users.List(context.Background(), ParsePage("9223372036854775807", "1"))
	require.NoError(t, err)
	assert.Empty(t, res.Data)
	assert.Equal(t, int64(1), res.Total)
	assert.Equal(t, int64(1), res.Pages)
}

func TestDeleteUser(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	u := f.register(t, "alice", "alice@x.com")

	require.NoError(t, f.users.Delete(ctx, u.ID.Hex()))
	requireKind(t, f.users.Delete(ctx, u.ID.Hex()), utils.KindNotFound)
	requireKind(t, f.users.Delete(ctx, primitive.NewObjectID().Hex()), utils.KindNotFound)
	requireKind(t, f.users.Delete(ctx, "bad"), utils.KindInvalidArgument)
}
