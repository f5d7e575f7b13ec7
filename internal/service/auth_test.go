package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/xXRex45Xx/MyPortfolio/internal/model"
	"github.com/xXRex45Xx/MyPortfolio/internal/store"
)

const (
	testSecret   = "test-secret-key-for-hs512-signing"
	testIssuer   = "portfolio-test"
	testAudience = "portfolio-client-test"
	testPassword = "hunter2hunter2"
)

func newTestAuth(t *testing.T) (*AuthService, *store.Store) {
	t.Helper()
	st, err := store.Open(store.DriverSQLite, "")
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return NewAuthService(st, testSecret, testIssuer, testAudience), st
}

func seedAdmin(t *testing.T, st *store.Store) *model.Admin {
	t.Helper()
	hash, err := HashPassword(testPassword)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	admin := &model.Admin{Username: "admin", PasswordHash: hash}
	if err := st.CreateAdmin(context.Background(), admin); err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}
	return admin
}

func TestLoginIssuesValidToken(t *testing.T) {
	auth, st := newTestAuth(t)
	admin := seedAdmin(t, st)
	ctx := context.Background()

	token, err := auth.Login(ctx, "admin", testPassword)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	principal, err := auth.ValidateToken(ctx, token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if principal.Username != "admin" {
		t.Errorf("Username = %q, want admin", principal.Username)
	}
	if principal.AdminID != admin.ID {
		t.Errorf("AdminID = %d, want %d", principal.AdminID, admin.ID)
	}
	if principal.Role != RoleAdmin {
		t.Errorf("Role = %q, want %q", principal.Role, RoleAdmin)
	}
}

func TestLoginFailureIsGeneric(t *testing.T) {
	auth, st := newTestAuth(t)
	seedAdmin(t, st)
	ctx := context.Background()

	_, errUnknownUser := auth.Login(ctx, "nobody", testPassword)
	_, errWrongPassword := auth.Login(ctx, "admin", "wrong password")

	if !errors.Is(errUnknownUser, ErrInvalidCredentials) {
		t.Errorf("unknown user: %v, want ErrInvalidCredentials", errUnknownUser)
	}
	if !errors.Is(errWrongPassword, ErrInvalidCredentials) {
		t.Errorf("wrong password: %v, want ErrInvalidCredentials", errWrongPassword)
	}
	// The two failures must be indistinguishable.
	if errUnknownUser.Error() != errWrongPassword.Error() {
		t.Errorf("failure messages differ: %q vs %q", errUnknownUser, errWrongPassword)
	}
}

func TestValidateTokenRejectsOtherKey(t *testing.T) {
	auth, st := newTestAuth(t)
	admin := seedAdmin(t, st)

	other := NewAuthService(st, "a-completely-different-secret", testIssuer, testAudience)
	token, err := other.IssueToken(admin)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	if _, err := auth.ValidateToken(context.Background(), token); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("token signed with other key: %v, want ErrInvalidCredentials", err)
	}
}

// signTestToken builds a token bypassing IssueToken so tests can control
// individual claims.
func signTestToken(t *testing.T, secret string, mutate func(*adminClaims)) string {
	t.Helper()
	now := time.Now()
	claims := adminClaims{
		AdminID: 1,
		Role:    RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin",
			Issuer:    testIssuer,
			Audience:  jwt.ClaimStrings{testAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	mutate(&claims)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign test token: %v", err)
	}
	return signed
}

func TestValidateTokenClaims(t *testing.T) {
	auth, _ := newTestAuth(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{
			name:  "valid",
			token: signTestToken(t, testSecret, func(c *adminClaims) {}),
		},
		{
			name: "expired beyond skew",
			token: signTestToken(t, testSecret, func(c *adminClaims) {
				c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-10 * time.Minute))
			}),
			wantErr: true,
		},
		{
			name: "expired within skew",
			token: signTestToken(t, testSecret, func(c *adminClaims) {
				c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
			}),
		},
		{
			name: "wrong issuer",
			token: signTestToken(t, testSecret, func(c *adminClaims) {
				c.Issuer = "someone-else"
			}),
			wantErr: true,
		},
		{
			name: "wrong audience",
			token: signTestToken(t, testSecret, func(c *adminClaims) {
				c.Audience = jwt.ClaimStrings{"other-client"}
			}),
			wantErr: true,
		},
		{
			name: "missing expiry",
			token: signTestToken(t, testSecret, func(c *adminClaims) {
				c.ExpiresAt = nil
			}),
			wantErr: true,
		},
		{
			name: "missing role",
			token: signTestToken(t, testSecret, func(c *adminClaims) {
				c.Role = ""
			}),
			wantErr: true,
		},
		{
			name:    "garbage",
			token:   "not.a.token",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := auth.ValidateToken(ctx, tt.token)
			if tt.wantErr && !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("ValidateToken = %v, want ErrInvalidCredentials", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateToken: %v", err)
			}
		})
	}
}

func TestValidateTokenRejectsNoneAlgorithm(t *testing.T) {
	auth, _ := newTestAuth(t)

	claims := adminClaims{
		AdminID: 1,
		Role:    RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin",
			Issuer:    testIssuer,
			Audience:  jwt.ClaimStrings{testAudience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none token: %v", err)
	}

	if _, err := auth.ValidateToken(context.Background(), unsigned); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("alg=none token: %v, want ErrInvalidCredentials", err)
	}
}

func TestResetPassword(t *testing.T) {
	auth, st := newTestAuth(t)
	seedAdmin(t, st)
	ctx := context.Background()

	if err := auth.ResetPassword(ctx, "admin", "wrong-old", "newpassword1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong old password: %v, want ErrInvalidCredentials", err)
	}
	if err := auth.ResetPassword(ctx, "ghost", testPassword, "newpassword1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user: %v, want ErrInvalidCredentials", err)
	}

	if err := auth.ResetPassword(ctx, "admin", testPassword, "newpassword1"); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}

	// Old password no longer works; the caller must log in again with the new one.
	if _, err := auth.Login(ctx, "admin", testPassword); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("old password after reset: %v, want ErrInvalidCredentials", err)
	}
	if _, err := auth.Login(ctx, "admin", "newpassword1"); err != nil {
		t.Errorf("new password after reset: %v", err)
	}
}
