package auth

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const jwksCacheTTL = 1 * time.Hour

// Verifier verifies bearer JWTs against a single JWKS endpoint. The key set
// is fetched lazily and cached; there is no login flow here, only signature
// and claims verification for optional request personalization.
type Verifier struct {
	jwksURL string

	mu      sync.RWMutex
	keys    jwk.Set
	expires time.Time
}

// NewVerifier creates a verifier for the given JWKS URL.
func NewVerifier(jwksURL string) *Verifier {
	return &Verifier{jwksURL: jwksURL}
}

// Verify parses and validates a token and returns its subject claim.
func (v *Verifier) Verify(ctx context.Context, tokenString string) (string, error) {
	keys, err := v.getKeys(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get JWKS: %w", err)
	}

	token, err := jwt.Parse([]byte(tokenString), jwt.WithKeySet(keys), jwt.WithValidate(true))
	if err != nil {
		return "", fmt.Errorf("failed to parse/verify token: %w", err)
	}

	sub := token.Subject()
	if sub == "" {
		return "", fmt.Errorf("token missing subject claim")
	}
	return sub, nil
}

func (v *Verifier) getKeys(ctx context.Context) (jwk.Set, error) {
	v.mu.RLock()
	if v.keys != nil && time.Now().Before(v.expires) {
		keys := v.keys
		v.mu.RUnlock()
		return keys, nil
	}
	v.mu.RUnlock()

	keys, err := v.fetchJWKS(ctx)
	if err != nil {
		return nil, err
	}

	v.mu.Lock()
	v.keys = keys
	v.expires = time.Now().Add(jwksCacheTTL)
	v.mu.Unlock()

	return keys, nil
}

func (v *Verifier) fetchJWKS(ctx context.Context) (jwk.Set, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.jwksURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch JWKS: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("JWKS endpoint returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read JWKS response: %w", err)
	}

	keys, err := jwk.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse JWKS: %w", err)
	}

	return keys, nil
}
