package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/xXRex45Xx/MyPortfolio/internal/model"
	"github.com/xXRex45Xx/MyPortfolio/internal/store"
)

// ErrInvalidCredentials is the single failure returned for any auth miss:
// unknown username, wrong password, or a bad/expired token. Callers must not
// be able to tell which one happened.
var ErrInvalidCredentials = errors.New("invalid credentials")

const (
	// RoleAdmin is the role claim carried by every issued token.
	RoleAdmin = "Admin"

	// TokenTTL is the fixed token lifetime. There is no refresh mechanism;
	// clients log in again after expiry.
	TokenTTL = 24 * time.Hour

	// clockSkew is the leeway allowed when validating token time claims.
	clockSkew = 5 * time.Minute

	signingMethodName = "HS512"
)

// Principal is the authenticated identity extracted from a valid token.
type Principal struct {
	AdminID  int64
	Username string
	Role     string
}

// AuthService verifies admin credentials and issues and validates the
// HMAC-SHA-512 signed bearer tokens that gate the admin API. Tokens are
// self-contained; the server keeps no session state.
type AuthService struct {
	store    *store.Store
	secret   []byte
	issuer   string
	audience string
}

// NewAuthService creates an AuthService. The secret, issuer, and audience
// are mandatory configuration; config loading rejects empty values before
// this is ever called.
func NewAuthService(st *store.Store, secret, issuer, audience string) *AuthService {
	return &AuthService{
		store:    st,
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
	}
}

type adminClaims struct {
	AdminID int64  `json:"admin_id"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

// Login verifies the username/password pair and returns a signed token.
// Unknown usernames and wrong passwords both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	admin, err := s.store.GetAdminByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("look up admin: %w", err)
	}

	if err := VerifyPassword(password, admin.PasswordHash); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.IssueToken(admin)
}

// IssueToken mints a signed token for the given admin, valid for TokenTTL.
func (s *AuthService) IssueToken(admin *model.Admin) (string, error) {
	now := time.Now()
	claims := adminClaims{
		AdminID: admin.ID,
		Role:    RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   admin.Username,
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken checks a bearer token's signature, issuer, audience, and
// expiry (with clock-skew leeway) and returns the embedded identity. Any
// failure collapses to ErrInvalidCredentials.
func (s *AuthService) ValidateToken(ctx context.Context, tokenStr string) (*Principal, error) {
	claims := &adminClaims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{signingMethodName}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithLeeway(clockSkew),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidCredentials
	}
	if claims.Role != RoleAdmin {
		return nil, ErrInvalidCredentials
	}

	return &Principal{
		AdminID:  claims.AdminID,
		Username: claims.Subject,
		Role:     claims.Role,
	}, nil
}

// ResetPassword verifies the old password and replaces the stored hash in a
// single update. Verification failures are generic; persistence failures
// after a successful verification surface as errors, never silently.
func (s *AuthService) ResetPassword(ctx context.Context, username, oldPassword, newPassword string) error {
	admin, err := s.store.GetAdminByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("look up admin: %w", err)
	}

	if err := VerifyPassword(oldPassword, admin.PasswordHash); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash new password: %w", err)
	}
	if err := s.store.UpdateAdminPassword(ctx, admin.ID, hash); err != nil {
		return fmt.Errorf("persist new password: %w", err)
	}
	return nil
}
