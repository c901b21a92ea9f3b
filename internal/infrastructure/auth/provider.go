package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"

	"tzsync/internal/domain/session"
	sharedConfig "tzsync/internal/shared/config"
	apperrors "tzsync/internal/shared/errors"
)

const (
	// defaultHTTPTimeout applies when a provider has no timeout configured
	defaultHTTPTimeout = 10 * time.Second

	// maxProfileBytes caps the profile body read from a provider
	maxProfileBytes = 1 << 20
)

// Provider is one OAuth 2.0 identity provider.
type Provider interface {
	Name() string
	// BuildAuthorizationURL returns the consent URL for state. A non-empty
	// redirectOverride replaces the configured callback URI. When PKCE is
	// enabled the returned verifier must be kept for ExchangeCode.
	BuildAuthorizationURL(state, redirectOverride string) (authURL, codeVerifier string, err error)
	// ExchangeCode trades an authorization code for an access token.
	ExchangeCode(ctx context.Context, code, codeVerifier string) (string, error)
	// FetchProfile loads and narrows the authenticated user's profile.
	FetchProfile(ctx context.Context, accessToken string) (*session.Identity, error)
}

// Endpoints lets tests point a provider at an httptest server.
type Endpoints struct {
	AuthURL    string
	TokenURL   string
	ProfileURL string
}

// oauthClient holds what every provider shares: the oauth2 config, a bounded
// http client and the profile endpoint.
type oauthClient struct {
	name       string
	config     *oauth2.Config
	httpClient *http.Client
	profileURL string
	usePKCE    bool
}

func newOAuthClient(name string, cfg sharedConfig.ProviderConfig, defaults Endpoints, override Endpoints, scopes []string, authStyle oauth2.AuthStyle) *oauthClient {
	endpoints := defaults
	if override.AuthURL != "" {
		endpoints.AuthURL = override.AuthURL
	}
	if override.TokenURL != "" {
		endpoints.TokenURL = override.TokenURL
	}
	if override.ProfileURL != "" {
		endpoints.ProfileURL = override.ProfileURL
	}

	timeout := cfg.Timeout()
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}

	return &oauthClient{
		name: name,
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   endpoints.AuthURL,
				TokenURL:  endpoints.TokenURL,
				AuthStyle: authStyle,
			},
		},
		httpClient: &http.Client{Timeout: timeout},
		profileURL: endpoints.ProfileURL,
		usePKCE:    cfg.UsePKCE,
	}
}

func (c *oauthClient) Name() string {
	return c.name
}

func (c *oauthClient) BuildAuthorizationURL(state, redirectOverride string) (string, string, error) {
	if state == "" {
		return "", "", apperrors.NewValidationError("state cannot be empty")
	}

	var opts []oauth2.AuthCodeOption
	if redirectOverride != "" {
		opts = append(opts, oauth2.SetAuthURLParam("redirect_uri", redirectOverride))
	}

	var codeVerifier string
	if c.usePKCE {
		verifier, challenge, err := generatePKCEParams()
		if err != nil {
			return "", "", apperrors.NewInternalError("failed to generate PKCE parameters").WithCause(err)
		}
		codeVerifier = verifier
		opts = append(opts,
			oauth2.SetAuthURLParam("code_challenge", challenge),
			oauth2.SetAuthURLParam("code_challenge_method", "S256"),
		)
	}

	return c.config.AuthCodeURL(state, opts...), codeVerifier, nil
}

func (c *oauthClient) ExchangeCode(ctx context.Context, code, codeVerifier string) (string, error) {
	if code == "" {
		return "", apperrors.NewValidationError("authorization code is required")
	}

	var opts []oauth2.AuthCodeOption
	if codeVerifier != "" {
		opts = append(opts, oauth2.VerifierOption(codeVerifier))
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	token, err := c.config.Exchange(ctx, code, opts...)
	if err != nil {
		return "", classifyError(c.name, "token exchange failed", err)
	}
	if token.AccessToken == "" {
		return "", apperrors.NewProviderError("token exchange failed", c.name+": empty access token")
	}

	return token.AccessToken, nil
}

// getJSON performs an authenticated GET against the profile endpoint and
// decodes the body into out.
func (c *oauthClient) getJSON(ctx context.Context, accessToken string, out any, headers map[string]string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.profileURL, nil)
	if err != nil {
		return apperrors.NewInternalError("failed to create profile request").WithCause(err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifyError(c.name, "profile request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxProfileBytes))
	if err != nil {
		return classifyError(c.name, "profile request failed", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apperrors.NewProviderError("profile request failed", fmt.Sprintf("%s: status %d", c.name, resp.StatusCode))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return apperrors.NewProviderError("profile response is malformed", c.name).WithCause(err)
	}

	return nil
}

// classifyError separates transport failures from provider rejections.
func classifyError(provider, message string, err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		detail := provider
		if retrieveErr.Response != nil {
			detail = fmt.Sprintf("%s: status %d", provider, retrieveErr.Response.StatusCode)
		}
		if retrieveErr.ErrorCode != "" {
			detail += " " + retrieveErr.ErrorCode
		}
		return apperrors.NewProviderError(message, detail).WithCause(err)
	}

	var urlErr *url.Error
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.As(err, &netErr) || errors.As(err, &urlErr) {
		return apperrors.NewNetworkError("identity provider unreachable", provider).WithCause(err)
	}

	return apperrors.NewProviderError(message, provider).WithCause(err)
}
