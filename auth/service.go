package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/princinho/schoolpanel/models"
	"golang.org/x/crypto/bcrypt"
)

// First-run administrator created by Bootstrap. Not meant for production.
const (
	BootstrapEmail    = "admin@school.com"
	BootstrapPassword = "admin123"
	BootstrapFullName = "School Administrator"
)

type Service struct {
	store     CredentialStore
	tokens    *TokenIssuer
	cost      int
	now       func() time.Time
	dummyHash string
}

type Option func(*Service)

// WithClock replaces time.Now for token issuance, verification and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithHashCost sets the bcrypt cost used for new password hashes.
func WithHashCost(cost int) Option {
	return func(s *Service) { s.cost = cost }
}

// NewService applies opts over bcrypt.DefaultCost and the system clock. It
// fails when store or tokens is nil or the hash cost is out of range.
func NewService(store CredentialStore, tokens *TokenIssuer, opts ...Option) (*Service, error) {
	if store == nil || tokens == nil {
		return nil, errors.New("auth: store and token issuer are required")
	}
	s := &Service{
		store:  store,
		tokens: tokens,
		cost:   bcrypt.DefaultCost,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cost < bcrypt.MinCost || s.cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("auth: bcrypt cost %d out of range", s.cost)
	}

	// compared against on unknown emails so both failure paths cost one bcrypt run
	dummy, err := HashPasswordCost(uuid.NewString(), s.cost)
	if err != nil {
		return nil, err
	}
	s.dummyHash = dummy
	return s, nil
}

func (s *Service) Tokens() *TokenIssuer { return s.tokens }

// HashPassword hashes with the service's configured cost.
func (s *Service) HashPassword(plain string) (string, error) {
	return HashPasswordCost(plain, s.cost)
}

// Authenticate resolves email/password to an active account. Unknown email
// and wrong password are both ErrInvalidCredentials; the active flag is only
// consulted once the password matched.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			VerifyPassword(password, s.dummyHash)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("auth: find account: %w", err)
	}
	if !VerifyPassword(password, user.HashedPassword) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountDeactivated
	}
	return user, nil
}

type LoginResult struct {
	Token string
	User  *models.User
}

func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	token, err := s.tokens.Issue(user.Email, s.now())
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: user}, nil
}

// AuthenticateRequest turns a presented bearer token into the live account it
// names. Tokens whose subject was deleted or deactivated since issuance are
// rejected here, since tokens themselves cannot be revoked.
func (s *Service) AuthenticateRequest(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: missing token", ErrInvalidToken)
	}
	email, err := s.tokens.Verify(token, s.now())
	if err != nil {
		return nil, err
	}
	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, fmt.Errorf("%w: unknown subject", ErrInvalidToken)
		}
		return nil, fmt.Errorf("auth: find account: %w", err)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: account deactivated", ErrInvalidToken)
	}
	return user, nil
}

// RequireRole returns ErrForbidden unless user's role is min or above.
func RequireRole(user *models.User, min models.Role) error {
	if user == nil || !user.Role.AtLeast(min) {
		return ErrForbidden
	}
	return nil
}

// Bootstrap creates the first administrator when no account exists. The
// count-then-insert race is closed by the store's unique email constraint:
// a concurrent loser sees ErrDuplicateEmail and reports ErrBootstrapAlreadyDone.
func (s *Service) Bootstrap(ctx context.Context) (*models.User, error) {
	n, err := s.store.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("auth: count accounts: %w", err)
	}
	if n > 0 {
		return nil, ErrBootstrapAlreadyDone
	}

	user, err := s.newAccount(BootstrapEmail, BootstrapFullName, BootstrapPassword, models.RoleAdmin)
	if err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, user); err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return nil, ErrBootstrapAlreadyDone
		}
		return nil, fmt.Errorf("auth: create admin: %w", err)
	}
	return user, nil
}

type RegisterInput struct {
	Email    string
	FullName string
	Password string
	Role     models.Role
}

// Register creates a new account. An empty role defaults to editor.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	role := in.Role
	if role == "" {
		role = models.RoleEditor
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	user, err := s.newAccount(strings.TrimSpace(in.Email), strings.TrimSpace(in.FullName), in.Password, role)
	if err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, user); err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("auth: create account: %w", err)
	}
	return user, nil
}

// ChangePassword re-hashes the password of user after checking current.
// Tokens issued before the change stay valid until they expire.
func (s *Service) ChangePassword(ctx context.Context, user *models.User, current, next string) error {
	if !VerifyPassword(current, user.HashedPassword) {
		return ErrInvalidCredentials
	}
	hash, err := s.HashPassword(next)
	if err != nil {
		return err
	}
	now := s.now().UTC()
	if err := s.store.UpdatePassword(ctx, user.ID, hash, now); err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return ErrInvalidToken
		}
		return fmt.Errorf("auth: update password: %w", err)
	}
	user.HashedPassword = hash
	user.UpdatedAt = now
	return nil
}

func (s *Service) newAccount(email, fullName, password string, role models.Role) (*models.User, error) {
	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	return &models.User{
		ID:             uuid.NewString(),
		Email:          email,
		FullName:       fullName,
		Role:           role,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
		HashedPassword: hash,
	}, nil
}
