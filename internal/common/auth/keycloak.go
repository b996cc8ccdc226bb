// internal/common/auth/keycloak.go
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sanjaykumar079/farmer-backend/internal/common/errors"
	httpclient "github.com/sanjaykumar079/farmer-backend/internal/common/http"
)

// KeycloakClient verifies bearer tokens against a Keycloak realm.
type KeycloakClient struct {
	baseURL      string
	realm        string
	clientID     string
	clientSecret string
	httpClient   *httpclient.Client
}

// Identity is the verified user behind a bearer token.
type Identity struct {
	Subject  string `json:"sub"`
	Email    string `json:"email"`
	Username string `json:"preferred_username"`
	Name     string `json:"name"`
}

// Verifier is the identity collaborator contract the HTTP layer depends on.
type Verifier interface {
	VerifyToken(ctx context.Context, token string) (*Identity, error)
}

// NewKeycloakClient creates a new instance of KeycloakClient.
func NewKeycloakClient(baseURL, realm, clientID, clientSecret string) *KeycloakClient {
	return &KeycloakClient{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		realm:        realm,
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   httpclient.NewClient(30 * time.Second),
	}
}

// VerifyToken resolves a bearer token to an Identity via the realm's
// userinfo endpoint. An invalid or expired token yields an authentication
// StandardError, never a panic.
func (k *KeycloakClient) VerifyToken(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, errors.NewAuthenticationError("missing bearer token")
	}

	infoURL := fmt.Sprintf("%s/realms/%s/protocol/openid-connect/userinfo", k.baseURL, k.realm)

	req, err := http.NewRequestWithContext(ctx, "GET", infoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := k.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute userinfo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, errors.NewAuthenticationError(fmt.Sprintf("token rejected with status %d", resp.StatusCode))
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("keycloak userinfo request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var identity Identity
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return nil, fmt.Errorf("failed to decode userinfo response: %w", err)
	}

	if identity.Subject == "" {
		return nil, errors.NewAuthenticationError("userinfo response missing subject")
	}

	return &identity, nil
}
