package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/ysolovyov/knorozov/internal/common"
	"github.com/ysolovyov/knorozov/internal/server/auth"
	"github.com/ysolovyov/knorozov/internal/server/config"
	"github.com/ysolovyov/knorozov/internal/server/models"
	"github.com/ysolovyov/knorozov/internal/server/repositories/repomanager"
)

// newTestDB returns a throwaway DB handle whose transactions commit against
// nothing; the in-memory repositories ignore it.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:services_tests?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.AccessSecretKey = "test-access-secret"
	cfg.RefreshSecretKey = "test-refresh-secret"
	return cfg
}

func newTestUserService(t *testing.T) (*UserService, *repomanager.InMemoryRepositoryManager) {
	t.Helper()
	rm := repomanager.NewInMemoryRepositoryManager()
	return NewUserService(newTestDB(t), rm, newTestConfig()), rm
}

func signUpUser(t *testing.T, s *UserService, login string) *models.User {
	t.Helper()
	u, err := s.SignUp(context.Background(), login, "pw-"+login)
	require.NoError(t, err)
	return u
}

func TestSignUp_FirstUserIsAdmin(t *testing.T) {
	s, _ := newTestUserService(t)
	ctx := context.Background()

	first, err := s.SignUp(ctx, "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, []string{"admin"}, first.Roles)
	assert.NotEmpty(t, first.ID)

	second, err := s.SignUp(ctx, "bob", "secret")
	require.NoError(t, err)
	assert.Empty(t, second.Roles)
}

func TestSignUp_DuplicateLogin(t *testing.T) {
	s, _ := newTestUserService(t)
	ctx := context.Background()

	signUpUser(t, s, "alice")

	_, err := s.SignUp(ctx, "alice", "another-password")
	require.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestLogin_Success(t *testing.T) {
	s, _ := newTestUserService(t)
	ctx := context.Background()

	signUpUser(t, s, "alice")

	pair, err := s.Login(ctx, "alice", "pw-alice")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
}

func TestLogin_WrongPasswordAndUnknownUserIndistinguishable(t *testing.T) {
	s, _ := newTestUserService(t)
	ctx := context.Background()

	signUpUser(t, s, "alice")

	_, errWrongPassword := s.Login(ctx, "alice", "nope")
	_, errUnknownUser := s.Login(ctx, "nobody", "nope")

	require.ErrorIs(t, errWrongPassword, common.ErrInvalidCredentials)
	require.ErrorIs(t, errUnknownUser, common.ErrInvalidCredentials)
}

func TestAuthenticate_RoundTrip(t *testing.T) {
	s, _ := newTestUserService(t)
	ctx := context.Background()

	signUpUser(t, s, "alice")

	pair, err := s.Login(ctx, "alice", "pw-alice")
	require.NoError(t, err)

	user, err := s.Authenticate(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Login)
	assert.Equal(t, []string{"admin"}, user.Roles)
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	rm := repomanager.NewInMemoryRepositoryManager()
	cfg := newTestConfig()
	cfg.AccessTokenValidityDuration = -1 * time.Minute
	s := NewUserService(newTestDB(t), rm, cfg)
	ctx := context.Background()

	signUpUser(t, s, "alice")

	pair, err := s.Login(ctx, "alice", "pw-alice")
	require.NoError(t, err)

	// Expired must be reported as expired, never as invalid.
	_, err = s.Authenticate(ctx, pair.AccessToken)
	require.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	s, _ := newTestUserService(t)

	_, err := s.Authenticate(context.Background(), "garbage")
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestAuthenticate_RefreshTokenRejected(t *testing.T) {
	s, _ := newTestUserService(t)
	ctx := context.Background()

	signUpUser(t, s, "alice")

	pair, err := s.Login(ctx, "alice", "pw-alice")
	require.NoError(t, err)

	// The refresh token is signed with a different secret and must not pass
	// where an access token is expected.
	_, err = s.Authenticate(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestAuthenticate_UserNotFound(t *testing.T) {
	s, _ := newTestUserService(t)

	token, err := auth.IssueToken("ghost", []byte("test-access-secret"), time.Hour)
	require.NoError(t, err)

	_, err = s.Authenticate(context.Background(), token)
	require.ErrorIs(t, err, common.ErrUserNotFound)
}

func TestUpdatePassword(t *testing.T) {
	s, _ := newTestUserService(t)
	ctx := context.Background()

	alice := signUpUser(t, s, "alice")

	require.NoError(t, s.UpdatePassword(ctx, alice, "new-password"))

	_, err := s.Login(ctx, "alice", "pw-alice")
	require.ErrorIs(t, err, common.ErrInvalidCredentials)

	_, err = s.Login(ctx, "alice", "new-password")
	require.NoError(t, err)
}

func TestListUsers_AdminOnly(t *testing.T) {
	s, _ := newTestUserService(t)
	ctx := context.Background()

	admin := signUpUser(t, s, "alice")
	bob := signUpUser(t, s, "bob")

	users, err := s.ListUsers(ctx, admin)
	require.NoError(t, err)
	require.Len(t, users, 2)

	_, err = s.ListUsers(ctx, bob)
	require.ErrorIs(t, err, common.ErrorForbidden)
}

func TestDeleteUser(t *testing.T) {
	s, _ := newTestUserService(t)
	ctx := context.Background()

	admin := signUpUser(t, s, "alice")
	bob := signUpUser(t, s, "bob")

	t.Run("non-admin actor is rejected", func(t *testing.T) {
		err := s.DeleteUser(ctx, bob, "alice")
		require.ErrorIs(t, err, common.ErrorForbidden)
	})

	t.Run("admin target is never deletable", func(t *testing.T) {
		err := s.DeleteUser(ctx, admin, "alice")
		require.ErrorIs(t, err, common.ErrorForbidden)

		_, err = s.GetUser(ctx, "alice")
		require.NoError(t, err)
	})

	t.Run("missing target", func(t *testing.T) {
		err := s.DeleteUser(ctx, admin, "nobody")
		require.ErrorIs(t, err, common.ErrorNotFound)
	})

	t.Run("success", func(t *testing.T) {
		require.NoError(t, s.DeleteUser(ctx, admin, "bob"))

		_, err := s.GetUser(ctx, "bob")
		require.ErrorIs(t, err, common.ErrorNotFound)
	})
}

func registerLanguages(t *testing.T, rm *repomanager.InMemoryRepositoryManager, codes ...string) {
	t.Helper()
	for _, code := range codes {
		_, err := rm.Languages(nil).Create(context.Background(), &models.Language{Code: code, Name: code})
		require.NoError(t, err)
	}
}

func TestSetRoles(t *testing.T) {
	s, rm := newTestUserService(t)
	ctx := context.Background()

	admin := signUpUser(t, s, "alice")
	signUpUser(t, s, "bob")
	registerLanguages(t, rm, "fr", "de")

	require.NoError(t, s.SetRoles(ctx, admin, "bob", []string{"fr", "de", "fr"}))

	bob, err := s.GetUser(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, []string{"de", "fr"}, bob.Roles, "duplicates collapse")

	// idempotent: applying the same set twice yields the same role set
	require.NoError(t, s.SetRoles(ctx, admin, "bob", []string{"fr", "de", "fr"}))
	bob, err = s.GetUser(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, []string{"de", "fr"}, bob.Roles)
}

func TestSetRoles_UnknownLanguage(t *testing.T) {
	s, rm := newTestUserService(t)
	ctx := context.Background()

	admin := signUpUser(t, s, "alice")
	signUpUser(t, s, "bob")
	registerLanguages(t, rm, "fr")

	err := s.SetRoles(ctx, admin, "bob", []string{"fr", "xx", "yy"})

	var unknownLang *common.UnknownLanguageError
	require.ErrorAs(t, err, &unknownLang)
	assert.Equal(t, "xx", unknownLang.Code, "first invalid code in input order")

	bob, err := s.GetUser(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, bob.Roles, "no state change on failure")
}

func TestSetRoles_Authorization(t *testing.T) {
	s, rm := newTestUserService(t)
	ctx := context.Background()

	admin := signUpUser(t, s, "alice")
	bob := signUpUser(t, s, "bob")
	registerLanguages(t, rm, "fr")

	t.Run("non-admin actor", func(t *testing.T) {
		err := s.SetRoles(ctx, bob, "bob", []string{"fr"})
		require.ErrorIs(t, err, common.ErrorForbidden)
	})

	t.Run("admin target is immutable", func(t *testing.T) {
		err := s.SetRoles(ctx, admin, "alice", []string{"fr"})
		require.ErrorIs(t, err, common.ErrorForbidden)
	})

	t.Run("missing target", func(t *testing.T) {
		err := s.SetRoles(ctx, admin, "nobody", []string{"fr"})
		require.ErrorIs(t, err, common.ErrorNotFound)
	})
}

func TestAddThenRemoveRoles_RestoresOriginalSet(t *testing.T) {
	s, rm := newTestUserService(t)
	ctx := context.Background()

	admin := signUpUser(t, s, "alice")
	signUpUser(t, s, "bob")
	registerLanguages(t, rm, "fr", "de", "es")

	require.NoError(t, s.SetRoles(ctx, admin, "bob", []string{"fr"}))

	require.NoError(t, s.AddRoles(ctx, admin, "bob", []string{"de", "es"}))
	bob, err := s.GetUser(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, []string{"de", "es", "fr"}, bob.Roles)

	require.NoError(t, s.RemoveRoles(ctx, admin, "bob", []string{"de", "es"}))
	bob, err = s.GetUser(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, []string{"fr"}, bob.Roles, "add then remove restores the pre-add state")
}

func TestAddRoles_UnionWithExisting(t *testing.T) {
	s, rm := newTestUserService(t)
	ctx := context.Background()

	admin := signUpUser(t, s, "alice")
	signUpUser(t, s, "bob")
	registerLanguages(t, rm, "fr", "de")

	require.NoError(t, s.SetRoles(ctx, admin, "bob", []string{"fr"}))
	require.NoError(t, s.AddRoles(ctx, admin, "bob", []string{"fr", "de"}))

	bob, err := s.GetUser(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, []string{"de", "fr"}, bob.Roles)
}

func TestGetUser_NotFound(t *testing.T) {
	s, _ := newTestUserService(t)

	_, err := s.GetUser(context.Background(), "nobody")
	require.ErrorIs(t, err, common.ErrorNotFound)
}
