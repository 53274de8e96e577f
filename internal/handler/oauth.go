package handler

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/templui/nocturne/internal/config"
	"github.com/templui/nocturne/internal/ctxkeys"
	"github.com/templui/nocturne/internal/render"
	"github.com/templui/nocturne/internal/service"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"
)

const oauthStateCookie = "oauth_state"

var errOAuthNoEmail = errors.New("provider returned no email address")

// oauthIdentity is what a provider tells us about the signed-in user.
type oauthIdentity struct {
	Email string
	Name  string
}

type oauthProvider struct {
	name     string
	config   *oauth2.Config
	identify func(ctx context.Context, client *http.Client) (oauthIdentity, error)
}

type oauthHandler struct {
	authService *service.AuthService
	appURL      string
	providers   map[string]*oauthProvider
}

// NewOAuthHandler registers the providers that have client credentials.
func NewOAuthHandler(authService *service.AuthService, cfg *config.Config) *oauthHandler {
	h := &oauthHandler{
		authService: authService,
		appURL:      cfg.AppURL,
		providers:   map[string]*oauthProvider{},
	}

	if cfg.GoogleClientID != "" {
		h.providers["google"] = &oauthProvider{
			name: "google",
			config: &oauth2.Config{
				ClientID:     cfg.GoogleClientID,
				ClientSecret: cfg.GoogleClientSecret,
				RedirectURL:  cfg.AppURL + "/api/auth/google/callback",
				Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
				Endpoint:     google.Endpoint,
			},
			identify: googleIdentity,
		}
	}

	if cfg.GitHubClientID != "" {
		h.providers["github"] = &oauthProvider{
			name: "github",
			config: &oauth2.Config{
				ClientID:     cfg.GitHubClientID,
				ClientSecret: cfg.GitHubClientSecret,
				RedirectURL:  cfg.AppURL + "/api/auth/github/callback",
				Scopes:       []string{"user:email"},
				Endpoint:     github.Endpoint,
			},
			identify: githubIdentity,
		}
	}

	return h
}

// Begin redirects to the provider consent screen.
func (h *oauthHandler) Begin(provider string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := h.providers[provider]
		if !ok {
			render.Error(w, http.StatusNotFound, provider+" sign in is not configured")
			return
		}

		state, err := generateOAuthState()
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		cfg := ctxkeys.Config(r.Context())
		isProduction := cfg != nil && cfg.IsProduction()

		http.SetCookie(w, &http.Cookie{
			Name:     oauthStateCookie,
			Value:    state,
			Path:     "/",
			HttpOnly: true,
			Secure:   isProduction,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   600, // 10 minutes
		})

		http.Redirect(w, r, p.config.AuthCodeURL(state), http.StatusTemporaryRedirect)
	}
}

// Callback completes the flow, starts a session cookie and returns the
// browser to the app.
func (h *oauthHandler) Callback(provider string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := h.providers[provider]
		if !ok {
			render.Error(w, http.StatusNotFound, provider+" sign in is not configured")
			return
		}

		state := r.URL.Query().Get("state")
		cookie, err := r.Cookie(oauthStateCookie)
		if err != nil || state == "" || cookie.Value != state {
			slog.Warn("oauth state validation failed", "provider", provider, "error", err)
			render.Error(w, http.StatusBadRequest, "oauth state mismatch")
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:   oauthStateCookie,
			Value:  "",
			Path:   "/",
			MaxAge: -1,
		})

		code := r.URL.Query().Get("code")
		if code == "" {
			slog.Warn("oauth callback missing code", "provider", provider)
			render.Error(w, http.StatusBadRequest, "oauth callback missing code")
			return
		}

		token, err := p.config.Exchange(r.Context(), code)
		if err != nil {
			slog.Error("oauth token exchange failed", "provider", provider, "error", err)
			render.Error(w, http.StatusBadGateway, "oauth authentication failed")
			return
		}

		identity, err := p.identify(r.Context(), p.config.Client(r.Context(), token))
		if err != nil {
			slog.Error("failed to get oauth user info", "provider", provider, "error", err)
			render.Error(w, http.StatusBadGateway, "oauth authentication failed")
			return
		}

		user, err := h.authService.AuthenticateOAuth(r.Context(), identity.Email, identity.Name, provider)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		jwtToken, expiresAt, err := h.authService.GenerateJWT(user)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		h.authService.SetJWTCookie(w, jwtToken, expiresAt)

		slog.Info("user logged in with oauth", "user_id", user.ID, "provider", provider)
		http.Redirect(w, r, h.appURL+"/", http.StatusSeeOther)
	}
}

func googleIdentity(ctx context.Context, client *http.Client) (oauthIdentity, error) {
	var info struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	err := getJSON(ctx, client, "https://www.googleapis.com/oauth2/v2/userinfo", &info)
	if err != nil {
		return oauthIdentity{}, err
	}
	if info.Email == "" {
		return oauthIdentity{}, errOAuthNoEmail
	}
	return oauthIdentity{Email: info.Email, Name: info.Name}, nil
}

// githubIdentity falls back to /user/emails when the profile email is private.
func githubIdentity(ctx context.Context, client *http.Client) (oauthIdentity, error) {
	var info struct {
		Email string `json:"email"`
		Name  string `json:"name"`
		Login string `json:"login"`
	}
	err := getJSON(ctx, client, "https://api.github.com/user", &info)
	if err != nil {
		return oauthIdentity{}, err
	}

	name := info.Name
	if name == "" {
		name = info.Login
	}

	if info.Email != "" {
		return oauthIdentity{Email: info.Email, Name: name}, nil
	}

	var emails []struct {
		Email    string `json:"email"`
		Primary  bool   `json:"primary"`
		Verified bool   `json:"verified"`
	}
	err = getJSON(ctx, client, "https://api.github.com/user/emails", &emails)
	if err != nil {
		return oauthIdentity{}, err
	}

	for _, e := range emails {
		if e.Primary && e.Verified {
			return oauthIdentity{Email: e.Email, Name: name}, nil
		}
	}
	return oauthIdentity{}, errOAuthNoEmail
}

func getJSON(ctx context.Context, client *http.Client, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		closeErr := resp.Body.Close()
		if closeErr != nil {
			slog.Error("failed to close response body", "error", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: unexpected status %d", url, resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(v)
}

func generateOAuthState() (string, error) {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
