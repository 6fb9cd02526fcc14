package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yelo29/barangayreservetest-1/internal/audit"
	"github.com/yelo29/barangayreservetest-1/internal/domain"
	"github.com/yelo29/barangayreservetest-1/internal/domain/account"
	"github.com/yelo29/barangayreservetest-1/internal/httperr"
	"github.com/yelo29/barangayreservetest-1/internal/idgen"
	"github.com/yelo29/barangayreservetest-1/internal/models"
	"github.com/yelo29/barangayreservetest-1/internal/validators"
)

// EmailChecker rejects addresses whose domain cannot receive mail.
type EmailChecker interface {
	Valid(ctx context.Context, email string) bool
}

type Service struct {
	users   account.Repository
	hasher  PasswordHasher
	tokens  *TokenIssuer
	revoker Revoker
	audit   *audit.Logger
	emails  EmailChecker
	now     func() time.Time
}

type Option func(*Service)

func WithRevoker(r Revoker) Option {
	return func(s *Service) { s.revoker = r }
}

func WithEmailChecker(c EmailChecker) Option {
	return func(s *Service) { s.emails = c }
}

func WithHasher(h PasswordHasher) Option {
	return func(s *Service) { s.hasher = h }
}

func NewService(users account.Repository, tokens *TokenIssuer, auditLog *audit.Logger, opts ...Option) *Service {
	s := &Service{
		users:   users,
		hasher:  BcryptHasher{Cost: 10},
		tokens:  tokens,
		revoker: NopRevoker{},
		audit:   auditLog,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ===============================
// Inputs / outputs
// ===============================

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

type Session struct {
	Token string             `json:"token"`
	User  account.PublicUser `json:"user"`
}

// ===============================
// Register
// ===============================

func (s *Service) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	name := strings.TrimSpace(in.Name)
	email := validators.NormalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, httperr.Validation("Name, email and password are required")
	}

	role := strings.TrimSpace(in.Role)
	if role == "" {
		role = account.RoleResident
	}
	if !account.IsValidRole(role) {
		return nil, httperr.Validation("Role must be resident or official")
	}
	if role == account.RoleOfficial {
		return nil, httperr.Forbidden("Official accounts cannot be self-registered")
	}

	if s.emails != nil && !s.emails.Valid(ctx, email) {
		return nil, httperr.Validation("Email domain does not accept mail")
	}

	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return nil, httperr.Conflict("Email already registered")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.Internal("failed to look up user", fmt.Errorf("get user by email: %w", err))
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, httperr.Internal("failed to hash password", err)
	}

	user := &models.User{
		ID:               idgen.NewID(),
		Name:             name,
		Email:            email,
		PasswordHash:     hash,
		Role:             role,
		IsAuthenticated:  false,
		VerificationType: account.VerificationUnverified,
		Discount:         0,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, httperr.Conflict("Email already registered")
		}
		return nil, httperr.Internal("failed to create user", fmt.Errorf("create user: %w", err))
	}

	s.audit.Record(ctx, user.ID, audit.ActionUserRegistered, "user", user.ID, map[string]string{"email": email})

	return s.session(user)
}

// ===============================
// Login / logout
// ===============================

func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	email = validators.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, httperr.Validation("Email and password are required")
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.Unauthorized("Invalid credentials")
		}
		return nil, httperr.Internal("failed to look up user", fmt.Errorf("get user by email: %w", err))
	}

	if !s.hasher.Verify(user.PasswordHash, password) {
		return nil, httperr.Unauthorized("Invalid credentials")
	}

	return s.session(user)
}

// Logout revokes the token until it would have expired anyway.
func (s *Service) Logout(ctx context.Context, claims *Claims) error {
	if claims == nil {
		return httperr.Unauthorized("No token provided")
	}
	if err := s.revoker.Revoke(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
		return httperr.Internal("failed to revoke token", fmt.Errorf("revoke %s: %w", claims.TokenID, err))
	}
	return nil
}

// ===============================
// Token verification
// ===============================

// Authenticate validates a bearer token. Invalid, expired and revoked tokens
// are all Forbidden.
func (s *Service) Authenticate(ctx context.Context, token string) (*Claims, error) {
	if token == "" {
		return nil, httperr.Unauthorized("No token provided")
	}

	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, httperr.Forbidden("Invalid or expired token")
	}

	revoked, err := s.revoker.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return nil, httperr.Internal("failed to check token", fmt.Errorf("revocation lookup: %w", err))
	}
	if revoked {
		return nil, httperr.Forbidden("Token has been revoked")
	}

	return claims, nil
}

func (s *Service) session(user *models.User) (*Session, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, httperr.Internal("failed to generate token", err)
	}
	return &Session{Token: token, User: account.Public(user)}, nil
}
