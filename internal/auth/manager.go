package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/alexedwards/scs/v2"
	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"newsroom/internal/config"
)

// Session keys used by the login flow.
const (
	sessionKeyState = "oauth_state"
	sessionKeyNonce = "oauth_nonce"
	sessionKeyUser  = "user"
)

var (
	// ErrStateMismatch is returned when the callback state does not match
	// the value stored at login time.
	ErrStateMismatch = errors.New("auth: state mismatch")
	// ErrNonceMismatch is returned when the ID token nonce does not match
	// the value stored at login time.
	ErrNonceMismatch = errors.New("auth: nonce mismatch")
)

// Manager runs the OIDC authorization-code flow and stores the resolved
// identity in the session.
type Manager struct {
	Sessions *scs.SessionManager

	oauth    oauth2.Config
	verifier *oidc.IDTokenVerifier
	log      *slog.Logger
}

// NewManager builds a Manager from the fixed provider endpoints in cfg.
// The JWKS key set is fetched lazily on first token verification.
func NewManager(cfg *config.Config, sessions *scs.SessionManager, log *slog.Logger) *Manager {
	keySet := oidc.NewRemoteKeySet(context.Background(), cfg.OIDCJWKSURL)
	verifier := oidc.NewVerifier(cfg.OIDCIssuer, keySet, &oidc.Config{
		ClientID: cfg.OIDCClientID,
	})
	log.Info("oidc client registered", "client", cfg.OIDCClientName, "issuer", cfg.OIDCIssuer)

	return &Manager{
		Sessions: sessions,
		oauth: oauth2.Config{
			ClientID:     cfg.OIDCClientID,
			ClientSecret: cfg.OIDCClientSecret,
			RedirectURL:  cfg.OIDCRedirectURL,
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.OIDCAuthURL,
				TokenURL: cfg.OIDCTokenURL,
			},
			Scopes: []string{oidc.ScopeOpenID, "email", "profile"},
		},
		verifier: verifier,
		log:      log,
	}
}

// BeginLogin stores fresh state and nonce values in the session and
// returns the provider authorization URL to redirect the caller to.
func (m *Manager) BeginLogin(ctx context.Context) string {
	state := uuid.NewString()
	nonce := uuid.NewString()
	m.Sessions.Put(ctx, sessionKeyState, state)
	m.Sessions.Put(ctx, sessionKeyNonce, nonce)
	return m.oauth.AuthCodeURL(state, oidc.Nonce(nonce))
}

// CompleteLogin handles the provider callback: it checks the state,
// exchanges the code, verifies the ID token against the stored nonce,
// resolves the role from the name claim and stores the identity in the
// session. Any failure aborts the login.
func (m *Manager) CompleteLogin(ctx context.Context, state, code string) (Identity, error) {
	wantState := m.Sessions.PopString(ctx, sessionKeyState)
	if wantState == "" || state != wantState {
		return Identity{}, ErrStateMismatch
	}

	token, err := m.oauth.Exchange(ctx, code)
	if err != nil {
		return Identity{}, fmt.Errorf("auth: token exchange: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return Identity{}, errors.New("auth: token response missing id_token")
	}

	idToken, err := m.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return Identity{}, fmt.Errorf("auth: verify id_token: %w", err)
	}

	wantNonce := m.Sessions.PopString(ctx, sessionKeyNonce)
	if wantNonce == "" || idToken.Nonce != wantNonce {
		return Identity{}, ErrNonceMismatch
	}

	var claims struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return Identity{}, fmt.Errorf("auth: parse claims: %w", err)
	}

	ident := Identity{
		Subject: idToken.Subject,
		Name:    claims.Name,
		Email:   claims.Email,
		Role:    ResolveRole(claims.Name),
	}

	if err := m.SignIn(ctx, ident); err != nil {
		return Identity{}, err
	}

	m.log.Info("user logged in", "sub", ident.Subject, "name", ident.Name, "role", ident.Role)
	return ident, nil
}

// SignIn stores an identity in the session under a fresh session token.
// CompleteLogin calls it after verification; tests use it to establish a
// logged-in session without a provider round trip.
func (m *Manager) SignIn(ctx context.Context, ident Identity) error {
	// New privilege level, new session token.
	if err := m.Sessions.RenewToken(ctx); err != nil {
		return fmt.Errorf("auth: renew session: %w", err)
	}
	m.Sessions.Put(ctx, sessionKeyUser, ident)
	return nil
}

// CurrentUser returns the session identity, or the anonymous identity
// if nobody is logged in.
func (m *Manager) CurrentUser(ctx context.Context) Identity {
	ident, ok := m.Sessions.Get(ctx, sessionKeyUser).(Identity)
	if !ok {
		return Anonymous()
	}
	return ident
}

// Logout destroys the session.
func (m *Manager) Logout(ctx context.Context) error {
	return m.Sessions.Destroy(ctx)
}
