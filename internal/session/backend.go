package session

import (
	"context"
	"net/http"

	"github.com/klasora/console-go/internal/api"
	"github.com/klasora/console-go/internal/models"
	appErrors "github.com/klasora/console-go/pkg/errors"
)

// apiBackend is the production Backend over the authenticated HTTP client.
type apiBackend struct {
	client *api.Client
}

// NewAPIBackend builds the production backend.
func NewAPIBackend(client *api.Client) Backend {
	return &apiBackend{client: client}
}

// Login posts credentials, persists the returned token pair, then resolves
// the full user profile. If the profile fetch fails the tokens are
// discarded so a failed login never retains partial state.
func (b *apiBackend) Login(ctx context.Context, email, password string) (*models.User, error) {
	out := &models.LoginResponse{}
	req := models.LoginRequest{Email: email, Password: password}
	if _, err := b.client.Do(ctx, http.MethodPost, "/api/auth/login", nil, req, out); err != nil {
		return nil, err
	}

	pair := models.TokenPair{
		AccessToken:  out.AccessToken,
		RefreshToken: out.RefreshToken,
		TokenType:    out.TokenType,
	}
	if err := b.client.SetTokens(pair, out.TenantID); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist tokens")
	}

	user, err := b.FetchUser(ctx)
	if err != nil {
		b.client.ClearTokens()
		return nil, err
	}
	return user, nil
}

func (b *apiBackend) FetchUser(ctx context.Context) (*models.User, error) {
	user := &models.User{}
	if _, err := b.client.Do(ctx, http.MethodGet, "/api/auth/me", nil, nil, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (b *apiBackend) Refresh(ctx context.Context) error {
	return b.client.Refresh(ctx)
}

func (b *apiBackend) HasCredentials() bool {
	return b.client.HasTokens()
}

func (b *apiBackend) Discard() {
	b.client.ClearTokens()
}
