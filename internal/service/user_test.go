package service

import (
	"errors"
	"testing"

	"github.com/brianvoe/gofakeit"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/deppfellow/post-api/internal/model/user"
	"github.com/deppfellow/post-api/internal/testutil"
)

func newUserService(t *testing.T) (*UserService, *testutil.UserRepository) {
	t.Helper()

	repo := testutil.NewUserRepository()
	svc := NewUserService(testutil.NewServer(), repo)
	svc.cost = bcrypt.MinCost
	return svc, repo
}

func fakeRegisterPayload() *user.RegisterPayload {
	return &user.RegisterPayload{
		Username: gofakeit.Lexify("user??????"),
		Email:    gofakeit.Lexify("????????@example.com"),
		Password: gofakeit.Lexify("????????") + gofakeit.Numerify("####"),
	}
}

func TestRegister(t *testing.T) {
	svc, repo := newUserService(t)
	payload := fakeRegisterPayload()

	u, err := svc.Register(newEchoContext(), payload)
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
	assert.Equal(t, payload.Username, u.Username)

	stored, ok := repo.Get(u.ID)
	require.True(t, ok)
	assert.NotEqual(t, payload.Password, stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(payload.Password)))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newUserService(t)
	c := newEchoContext()

	first := fakeRegisterPayload()
	_, err := svc.Register(c, first)
	require.NoError(t, err)

	second := fakeRegisterPayload()
	second.Email = first.Email

	_, err = svc.Register(c, second)

	var pgErr *pgconn.PgError
	require.True(t, errors.As(err, &pgErr))
	assert.Equal(t, "23505", pgErr.Code)
	assert.Equal(t, "users_email_key", pgErr.ConstraintName)
}
