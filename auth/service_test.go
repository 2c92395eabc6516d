package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/princinho/schoolpanel/auth"
	"github.com/princinho/schoolpanel/auth/authtest"
	"github.com/princinho/schoolpanel/models"
)

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func newService(t *testing.T, store auth.CredentialStore, c *clock) *auth.Service {
	t.Helper()
	issuer, err := auth.NewTokenIssuer([]byte("test-secret"), 0)
	require.NoError(t, err)
	svc, err := auth.NewService(store, issuer, auth.WithClock(c.Now), auth.WithHashCost(bcrypt.MinCost))
	require.NoError(t, err)
	return svc
}

func register(t *testing.T, svc *auth.Service, email, password string, role models.Role) *models.User {
	t.Helper()
	user, err := svc.Register(context.Background(), auth.RegisterInput{
		Email: email, FullName: "Test " + string(role), Password: password, Role: role,
	})
	require.NoError(t, err)
	return user
}

func TestNewService_Rejects(t *testing.T) {
	issuer, err := auth.NewTokenIssuer([]byte("test-secret"), 0)
	require.NoError(t, err)
	store := authtest.NewMemoryStore()

	_, err = auth.NewService(nil, issuer)
	assert.Error(t, err)
	_, err = auth.NewService(store, nil)
	assert.Error(t, err)
	_, err = auth.NewService(store, issuer, auth.WithHashCost(bcrypt.MaxCost+1))
	assert.Error(t, err)

	_, err = auth.NewService(store, issuer, auth.WithHashCost(bcrypt.MinCost))
	assert.NoError(t, err)
}

func TestLogin_Success(t *testing.T) {
	store := authtest.NewMemoryStore()
	c := &clock{now: time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)}
	svc := newService(t, store, c)
	register(t, svc, "editor@school.com", "pa55word", models.RoleEditor)

	res, err := svc.Login(context.Background(), "editor@school.com", "pa55word")
	require.NoError(t, err)
	assert.Equal(t, "editor@school.com", res.User.Email)

	sub, err := svc.Tokens().Verify(res.Token, c.now)
	require.NoError(t, err)
	assert.Equal(t, "editor@school.com", sub)
}

func TestLogin_Deactivated(t *testing.T) {
	store := authtest.NewMemoryStore()
	svc := newService(t, store, &clock{now: time.Now()})
	user := register(t, svc, "mod@school.com", "pa55word", models.RoleModerator)

	inactive := false
	_, err := store.Update(context.Background(), user.ID, models.UserPatch{IsActive: &inactive}, time.Now())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "mod@school.com", "pa55word")
	assert.ErrorIs(t, err, auth.ErrAccountDeactivated)

	// the deactivation is not revealed without the right password
	_, err = svc.Login(context.Background(), "mod@school.com", "wrong")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_FailuresIndistinguishable(t *testing.T) {
	store := authtest.NewMemoryStore()
	svc := newService(t, store, &clock{now: time.Now()})
	register(t, svc, "editor@school.com", "pa55word", models.RoleEditor)

	_, unknown := svc.Login(context.Background(), "nobody@school.com", "pa55word")
	_, wrong := svc.Login(context.Background(), "editor@school.com", "nope")
	_, caseMismatch := svc.Login(context.Background(), "Editor@school.com", "pa55word")

	assert.Equal(t, auth.ErrInvalidCredentials, unknown)
	assert.Equal(t, auth.ErrInvalidCredentials, wrong)
	assert.Equal(t, auth.ErrInvalidCredentials, caseMismatch)
}

func TestLogin_StoreFailurePropagates(t *testing.T) {
	store := authtest.NewMemoryStore()
	svc := newService(t, store, &clock{now: time.Now()})
	boom := errors.New("connection refused")
	store.Err = boom

	_, err := svc.Login(context.Background(), "a@school.com", "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthenticateRequest(t *testing.T) {
	store := authtest.NewMemoryStore()
	c := &clock{now: time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)}
	svc := newService(t, store, c)
	user := register(t, svc, "editor@school.com", "pa55word", models.RoleEditor)

	res, err := svc.Login(context.Background(), "editor@school.com", "pa55word")
	require.NoError(t, err)

	got, err := svc.AuthenticateRequest(context.Background(), res.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	t.Run("missing", func(t *testing.T) {
		_, err := svc.AuthenticateRequest(context.Background(), "")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		later := &clock{now: c.now.Add(auth.DefaultTokenTTL + time.Second)}
		expiredSvc := newService(t, store, later)
		_, err := expiredSvc.AuthenticateRequest(context.Background(), res.Token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("deactivated_after_issue", func(t *testing.T) {
		inactive := false
		_, err := store.Update(context.Background(), user.ID, models.UserPatch{IsActive: &inactive}, c.now)
		require.NoError(t, err)
		t.Cleanup(func() {
			active := true
			_, _ = store.Update(context.Background(), user.ID, models.UserPatch{IsActive: &active}, c.now)
		})

		_, err = svc.AuthenticateRequest(context.Background(), res.Token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("deleted_after_issue", func(t *testing.T) {
		require.NoError(t, store.Delete(context.Background(), user.ID))

		_, err := svc.AuthenticateRequest(context.Background(), res.Token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		role    models.Role
		min     models.Role
		allowed bool
	}{
		{models.RoleAdmin, models.RoleModerator, true},
		{models.RoleModerator, models.RoleModerator, true},
		{models.RoleEditor, models.RoleModerator, false},
		{models.RoleAdmin, models.RoleAdmin, true},
		{models.RoleModerator, models.RoleAdmin, false},
		{models.RoleEditor, models.RoleEditor, true},
		{models.Role("guest"), models.RoleEditor, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.role)+"_"+string(tt.min), func(t *testing.T) {
			err := auth.RequireRole(&models.User{Role: tt.role}, tt.min)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, auth.ErrForbidden)
			}
		})
	}

	assert.ErrorIs(t, auth.RequireRole(nil, models.RoleEditor), auth.ErrForbidden)
}

func TestBootstrap_Scenario(t *testing.T) {
	store := authtest.NewMemoryStore()
	svc := newService(t, store, &clock{now: time.Now()})
	ctx := context.Background()

	admin, err := svc.Bootstrap(ctx)
	require.NoError(t, err)
	assert.Equal(t, "admin@school.com", admin.Email)
	assert.Equal(t, models.RoleAdmin, admin.Role)

	res, err := svc.Login(ctx, "admin@school.com", "admin123")
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)

	got, err := svc.AuthenticateRequest(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, got.ID)
	assert.Equal(t, models.RoleAdmin, got.Role)

	for i := 0; i < 3; i++ {
		_, err = svc.Bootstrap(ctx)
		assert.ErrorIs(t, err, auth.ErrBootstrapAlreadyDone)
	}
}

func TestBootstrap_NonEmptyStore(t *testing.T) {
	store := authtest.NewMemoryStore()
	svc := newService(t, store, &clock{now: time.Now()})
	register(t, svc, "editor@school.com", "pa55word", models.RoleEditor)

	_, err := svc.Bootstrap(context.Background())
	assert.ErrorIs(t, err, auth.ErrBootstrapAlreadyDone)
}

// racingStore reports an empty store even though the admin was already
// inserted, like a concurrent bootstrap that passed the count check.
type racingStore struct {
	*authtest.MemoryStore
}

func (racingStore) Count(context.Context) (int64, error) { return 0, nil }

func TestBootstrap_LosesRace(t *testing.T) {
	store := racingStore{authtest.NewMemoryStore()}
	svc := newService(t, store, &clock{now: time.Now()})

	_, err := svc.Bootstrap(context.Background())
	require.NoError(t, err)

	_, err = svc.Bootstrap(context.Background())
	assert.ErrorIs(t, err, auth.ErrBootstrapAlreadyDone)
}

func TestRegister(t *testing.T) {
	store := authtest.NewMemoryStore()
	svc := newService(t, store, &clock{now: time.Now()})
	ctx := context.Background()

	user, err := svc.Register(ctx, auth.RegisterInput{Email: " new@school.com ", FullName: "New", Password: "pa55word"})
	require.NoError(t, err)
	assert.Equal(t, "new@school.com", user.Email)
	assert.Equal(t, models.RoleEditor, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "pa55word", user.HashedPassword)

	_, err = svc.Register(ctx, auth.RegisterInput{Email: "new@school.com", FullName: "Again", Password: "x"})
	assert.ErrorIs(t, err, auth.ErrDuplicateEmail)

	_, err = svc.Register(ctx, auth.RegisterInput{Email: "other@school.com", Password: "x", Role: "owner"})
	assert.ErrorIs(t, err, auth.ErrInvalidRole)
}

func TestChangePassword(t *testing.T) {
	store := authtest.NewMemoryStore()
	svc := newService(t, store, &clock{now: time.Now()})
	ctx := context.Background()
	user := register(t, svc, "editor@school.com", "old-password", models.RoleEditor)

	err := svc.ChangePassword(ctx, user, "not-it", "new-password")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	require.NoError(t, svc.ChangePassword(ctx, user, "old-password", "new-password"))

	_, err = svc.Login(ctx, "editor@school.com", "old-password")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	_, err = svc.Login(ctx, "editor@school.com", "new-password")
	assert.NoError(t, err)
}
