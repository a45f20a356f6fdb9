package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/WillBBHM/ProgrammationWeb/pkg/httperr"
	"github.com/WillBBHM/ProgrammationWeb/services/auth-service/internal/repository"
)

func newTestSvc(t *testing.T) *AuthSvc {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	repo := repository.NewUserRepo(gdb)
	require.NoError(t, repo.Migrate())
	return NewAuthSvc(repo, time.Hour, 720*time.Hour)
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var e *httperr.E
	require.ErrorAs(t, err, &e)
	return e.Status
}

func TestRegister_HashesPassword(t *testing.T) {
	svc := newTestSvc(t)

	u, err := svc.Register(context.Background(), "alice", "s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret")))
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc := newTestSvc(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "s3cret")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "other")
	assert.Equal(t, http.StatusConflict, statusOf(t, err))

	// first registration unaffected
	u, _, _, err := svc.Login(ctx, "alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
}

func TestRegister_MissingFields(t *testing.T) {
	svc := newTestSvc(t)

	_, err := svc.Register(context.Background(), "", "s3cret")
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

	_, err = svc.Register(context.Background(), "alice", "")
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

func TestLogin_IssuesTokens(t *testing.T) {
	svc := newTestSvc(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "s3cret")
	require.NoError(t, err)

	u, access, refresh, err := svc.Login(ctx, "alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
}

// The 401 must not reveal whether the username or the password was wrong.
func TestLogin_UndifferentiatedFailure(t *testing.T) {
	svc := newTestSvc(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "s3cret")
	require.NoError(t, err)

	_, _, _, errWrongPass := svc.Login(ctx, "alice", "wrong")
	_, _, _, errNoUser := svc.Login(ctx, "bob", "wrong")

	var e1, e2 *httperr.E
	require.ErrorAs(t, errWrongPass, &e1)
	require.ErrorAs(t, errNoUser, &e2)
	assert.Equal(t, http.StatusUnauthorized, e1.Status)
	assert.Equal(t, e1.Status, e2.Status)
	assert.Equal(t, e1.Message, e2.Message)
}
