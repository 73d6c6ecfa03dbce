package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every verification failure. Callers must not leak
// anything more specific to the client.
var ErrInvalidToken = errors.New("invalid token")

// Verifier resolves a bearer token to an opaque user identity.
type Verifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// JWTVerifier validates HS256 tokens locally. Identity comes from the "sub"
// claim, falling back to "user_id" for tokens minted by older issuers.
type JWTVerifier struct {
	Secret []byte
}

func (v *JWTVerifier) Verify(_ context.Context, tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return v.Secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	if strings.TrimSpace(sub) == "" {
		sub, _ = claims["user_id"].(string)
	}
	if strings.TrimSpace(sub) == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}

// IntrospectionVerifier posts the token to an external introspection endpoint
// (RFC 7662 shape: form-encoded "token", JSON {active, sub} back).
type IntrospectionVerifier struct {
	URL    string
	Client *http.Client
}

func NewIntrospectionVerifier(endpoint string) *IntrospectionVerifier {
	return &IntrospectionVerifier{
		URL:    endpoint,
		Client: &http.Client{Timeout: 5 * time.Second},
	}
}

func (v *IntrospectionVerifier) Verify(ctx context.Context, token string) (string, error) {
	form := url.Values{"token": {token}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.URL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := v.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		return "", ErrInvalidToken
	}

	var out struct {
		Active bool   `json:"active"`
		Sub    string `json:"sub"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return "", ErrInvalidToken
	}
	if !out.Active || strings.TrimSpace(out.Sub) == "" {
		return "", ErrInvalidToken
	}
	return out.Sub, nil
}
