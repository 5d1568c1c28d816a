package auth

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const testSecret = "test-secret"

func TestSessionTokenRoundTrip(t *testing.T) {
	token, err := CreateSessionToken("octocat", testSecret)
	if err != nil {
		t.Fatalf("CreateSessionToken() error: %v", err)
	}

	claims, err := ValidateSessionToken(token, testSecret)
	if err != nil {
		t.Fatalf("ValidateSessionToken() error: %v", err)
	}
	if claims.GithubUserLogin != "octocat" {
		t.Errorf("GithubUserLogin = %q, want octocat", claims.GithubUserLogin)
	}
}

func TestValidateSessionTokenWrongSecret(t *testing.T) {
	token, err := CreateSessionToken("octocat", testSecret)
	if err != nil {
		t.Fatalf("CreateSessionToken() error: %v", err)
	}

	if _, err := ValidateSessionToken(token, "other-secret"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("error = %v, want ErrInvalidToken", err)
	}
}

func TestValidateSessionTokenExpired(t *testing.T) {
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
		GithubUserLogin: "octocat",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("signing expired token: %v", err)
	}

	if _, err := ValidateSessionToken(token, testSecret); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("error = %v, want ErrTokenExpired", err)
	}
}

func TestValidateSessionTokenGarbage(t *testing.T) {
	if _, err := ValidateSessionToken("not-a-jwt", testSecret); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("error = %v, want ErrInvalidToken", err)
	}
}

func TestGateAuthorize(t *testing.T) {
	valid, err := CreateSessionToken("octocat", testSecret)
	if err != nil {
		t.Fatalf("CreateSessionToken() error: %v", err)
	}

	tests := []struct {
		name     string
		secret   string
		disabled bool
		header   string
		wantErr  bool
	}{
		{name: "no secret accepts everything", secret: "", header: ""},
		{name: "disabled gate accepts everything", secret: testSecret, disabled: true, header: ""},
		{name: "valid bearer token", secret: testSecret, header: "Bearer " + valid},
		{name: "missing header", secret: testSecret, header: "", wantErr: true},
		{name: "non-bearer header", secret: testSecret, header: "token abc", wantErr: true},
		{name: "invalid token", secret: testSecret, header: "Bearer garbage", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGate(tt.secret, tt.disabled)
			r := httptest.NewRequest("POST", "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}

			err := g.Authorize(r)
			if tt.wantErr && err == nil {
				t.Error("Authorize() expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Authorize() unexpected error: %v", err)
			}
		})
	}
}
