package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yelo29/barangayreservetest-1/internal/audit"
	"github.com/yelo29/barangayreservetest-1/internal/httperr"
	"github.com/yelo29/barangayreservetest-1/internal/infra/repository"
	"github.com/yelo29/barangayreservetest-1/internal/models"
)

type memRevoker struct {
	revoked map[string]time.Time
}

func (m *memRevoker) Revoke(_ context.Context, id string, until time.Time) error {
	m.revoked[id] = until
	return nil
}

func (m *memRevoker) IsRevoked(_ context.Context, id string) (bool, error) {
	_, ok := m.revoked[id]
	return ok, nil
}

type rejectAll struct{}

func (rejectAll) Valid(context.Context, string) bool { return false }

func newTestService(t *testing.T, opts ...Option) (*Service, *repository.MemoryStore) {
	t.Helper()
	store := repository.NewMemoryStore()
	opts = append([]Option{WithHasher(BcryptHasher{Cost: bcrypt.MinCost})}, opts...)
	svc := NewService(store, NewTokenIssuer("test-secret", time.Hour), audit.New(store, nil), opts...)
	return svc, store
}

func TestRegisterThenLogin(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	reg, err := svc.Register(ctx, RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "pw123"})
	require.NoError(t, err)
	assert.NotEmpty(t, reg.Token)
	assert.Equal(t, "resident", reg.User.Role)
	assert.False(t, reg.User.IsAuthenticated)
	assert.Equal(t, "unverified", reg.User.VerificationType)
	assert.Zero(t, reg.User.Discount)

	stored, err := store.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "pw123", stored.PasswordHash)

	login, err := svc.Login(ctx, "alice@example.com", "pw123")
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)
	assert.False(t, login.User.IsAuthenticated)

	_, err = svc.Login(ctx, "alice@example.com", "wrong")
	assert.True(t, httperr.Is(err, httperr.KindUnauthorized))
}

func TestRegister_DuplicateEmailIsConflict(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@example.com", Password: "pw"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Name: "B", Email: "A@Example.com ", Password: "pw"})
	assert.True(t, httperr.Is(err, httperr.KindConflict))
}

func TestRegister_RejectsBadInput(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.Register(ctx, RegisterInput{Email: "a@example.com", Password: "pw"})
	assert.True(t, httperr.Is(err, httperr.KindValidation))

	_, err = svc.Register(ctx, RegisterInput{Name: "A", Email: "a@example.com", Password: "pw", Role: "official"})
	assert.True(t, httperr.Is(err, httperr.KindForbidden))

	_, err = svc.Register(ctx, RegisterInput{Name: "A", Email: "a@example.com", Password: "pw", Role: "mayor"})
	assert.True(t, httperr.Is(err, httperr.KindValidation))
}

func TestRegister_EmailDomainCheck(t *testing.T) {
	svc, _ := newTestService(t, WithEmailChecker(rejectAll{}))

	_, err := svc.Register(context.Background(), RegisterInput{Name: "A", Email: "a@nowhere.invalid", Password: "pw"})
	assert.True(t, httperr.Is(err, httperr.KindValidation))
}

func TestLogin_UnknownUserAndEmptyHash(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	_, err := svc.Login(ctx, "ghost@example.com", "pw")
	assert.True(t, httperr.Is(err, httperr.KindUnauthorized))

	require.NoError(t, store.CreateUser(ctx, &models.User{ID: "legacy", Email: "legacy@example.com", Role: "resident"}))

	_, err = svc.Login(ctx, "legacy@example.com", "")
	assert.True(t, httperr.Is(err, httperr.KindValidation))
	_, err = svc.Login(ctx, "legacy@example.com", "anything")
	assert.True(t, httperr.Is(err, httperr.KindUnauthorized))
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	rev := &memRevoker{revoked: map[string]time.Time{}}
	svc, _ := newTestService(t, WithRevoker(rev))

	reg, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@example.com", Password: "pw"})
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "")
	assert.True(t, httperr.Is(err, httperr.KindUnauthorized))

	_, err = svc.Authenticate(ctx, "garbage")
	assert.True(t, httperr.Is(err, httperr.KindForbidden))

	claims, err := svc.Authenticate(ctx, reg.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, claims.UserID)
	assert.Equal(t, "a@example.com", claims.Email)

	require.NoError(t, svc.Logout(ctx, claims))
	_, err = svc.Authenticate(ctx, reg.Token)
	assert.True(t, httperr.Is(err, httperr.KindForbidden))
}
