package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/davicafu/gymlab/internal/mocks"
	sharedSQLite "github.com/davicafu/gymlab/internal/shared/infra/platform/db/sqlite"
	"github.com/davicafu/gymlab/internal/user/domain"
	userRepo "github.com/davicafu/gymlab/internal/user/infra/outbound/db/sqlite"
	"github.com/davicafu/gymlab/internal/user/infra/outbound/token"
)

type fixture struct {
	users *UserService
	auth  *AuthService
	cache *mocks.DummyCache
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db, err := sharedSQLite.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, sharedSQLite.InitOutbox(db))
	require.NoError(t, userRepo.InitSQLite(db))

	repo := userRepo.NewUserRepoSQLite(db)
	cache := mocks.NewDummyCache()
	return fixture{
		users: NewUserService(repo, cache, zap.NewNop()),
		auth:  NewAuthService(repo, token.NewJWTIssuer("test-secret", time.Hour), cache, zap.NewNop()),
		cache: cache,
	}
}

func TestUserService_CreateUpdateDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u, err := f.users.CreateUser(ctx, &domain.User{Names: "Ana", Username: "ana", Role: domain.RoleTrainer}, "password-1", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.CreatedBy)

	_, err = f.users.GetUser(ctx, u.ID)
	require.NoError(t, err)

	u.Role = domain.RoleReceptionist
	_, err = f.users.UpdateUser(ctx, u, "", 1)
	require.NoError(t, err)

	// La contraseña original sigue sirviendo.
	_, _, err = f.auth.Login(ctx, "ana", "password-1")
	require.NoError(t, err)

	assert.ErrorIs(t, f.users.DeleteUser(ctx, u.ID, u.ID), domain.ErrInvalidUser)
	require.NoError(t, f.users.DeleteUser(ctx, u.ID, 1))
	_, err = f.users.GetUser(ctx, u.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserService_EnsureAdminIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.users.EnsureAdmin(ctx, "admin", "admin-pass"))
	require.NoError(t, f.users.EnsureAdmin(ctx, "admin", "admin-pass"))

	_, u, err := f.auth.Login(ctx, "admin", "admin-pass")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, u.Role)
}

func TestAuthService_LoginAuthenticateLogout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.users.CreateUser(ctx, &domain.User{Names: "Leo", Username: "leo", Role: domain.RoleAdmin}, "password-2", 0)
	require.NoError(t, err)

	_, _, err = f.auth.Login(ctx, "leo", "wrong-pass")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, _, err = f.auth.Login(ctx, "nobody", "password-2")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	tok, u, err := f.auth.Login(ctx, "leo", "password-2")
	require.NoError(t, err)

	claims, err := f.auth.Authenticate(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)

	require.NoError(t, f.auth.Logout(ctx, tok))
	require.NoError(t, f.auth.Logout(ctx, tok))
	assert.True(t, f.cache.Has(domain.RevokedKey(claims.TokenID)))

	_, err = f.auth.Authenticate(ctx, tok)
	assert.ErrorIs(t, err, domain.ErrTokenRevoked)
}
