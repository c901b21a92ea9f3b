package auth

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharedConfig "tzsync/internal/shared/config"
	apperrors "tzsync/internal/shared/errors"
)

func testProviderConfig(pkce bool) sharedConfig.ProviderConfig {
	return sharedConfig.ProviderConfig{
		ClientID:       "client-id",
		ClientSecret:   "client-secret",
		RedirectURL:    "http://localhost:8080/auth/discord/callback",
		UsePKCE:        pkce,
		TimeoutSeconds: 2,
	}
}

// fakeProvider serves a token endpoint and a profile endpoint.
type fakeProvider struct {
	server        *httptest.Server
	tokenCalls    atomic.Int32
	tokenStatus   int
	tokenBody     any
	profileStatus int
	profileBody   any
	lastForm      url.Values
}

func newFakeProvider(t *testing.T) *fakeProvider {
	f := &fakeProvider{
		tokenStatus:   http.StatusOK,
		tokenBody:     map[string]any{"access_token": "provider-token", "token_type": "Bearer", "expires_in": 3600},
		profileStatus: http.StatusOK,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		f.tokenCalls.Add(1)
		_ = r.ParseForm()
		f.lastForm = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.tokenStatus)
		_ = json.NewEncoder(w).Encode(f.tokenBody)
	})
	mux.HandleFunc("/profile", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer provider-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.profileStatus)
		_ = json.NewEncoder(w).Encode(f.profileBody)
	})

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeProvider) endpoints() Endpoints {
	return Endpoints{
		AuthURL:    f.server.URL + "/authorize",
		TokenURL:   f.server.URL + "/token",
		ProfileURL: f.server.URL + "/profile",
	}
}

func TestBuildAuthorizationURL(t *testing.T) {
	p := NewDiscordProvider(testProviderConfig(false), Endpoints{})

	authURL, verifier, err := p.BuildAuthorizationURL("state-123", "")
	require.NoError(t, err)
	assert.Empty(t, verifier)

	u, err := url.Parse(authURL)
	require.NoError(t, err)
	assert.Equal(t, "discord.com", u.Host)

	q := u.Query()
	assert.Equal(t, "client-id", q.Get("client_id"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "identify", q.Get("scope"))
	assert.Equal(t, "state-123", q.Get("state"))
	assert.Equal(t, "http://localhost:8080/auth/discord/callback", q.Get("redirect_uri"))
	assert.Empty(t, q.Get("code_challenge"))
}

func TestBuildAuthorizationURL_OverrideAndPKCE(t *testing.T) {
	p := NewGitHubProvider(testProviderConfig(true), Endpoints{})

	authURL, verifier, err := p.BuildAuthorizationURL("s", "https://app.example.com/cb")
	require.NoError(t, err)
	require.NotEmpty(t, verifier)

	u, err := url.Parse(authURL)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "https://app.example.com/cb", q.Get("redirect_uri"))
	assert.Equal(t, "S256", q.Get("code_challenge_method"))

	sum := sha256.Sum256([]byte(verifier))
	assert.Equal(t, base64.RawURLEncoding.EncodeToString(sum[:]), q.Get("code_challenge"))
}

func TestBuildAuthorizationURL_EmptyState(t *testing.T) {
	p := NewGoogleProvider(testProviderConfig(false), Endpoints{})
	_, _, err := p.BuildAuthorizationURL("", "")
	assert.True(t, apperrors.IsValidationError(err))
}

func TestExchangeCode_Success(t *testing.T) {
	fake := newFakeProvider(t)
	p := NewDiscordProvider(testProviderConfig(true), fake.endpoints())

	token, err := p.ExchangeCode(context.Background(), "auth-code", "the-verifier")
	require.NoError(t, err)
	assert.Equal(t, "provider-token", token)

	assert.Equal(t, "auth-code", fake.lastForm.Get("code"))
	assert.Equal(t, "authorization_code", fake.lastForm.Get("grant_type"))
	assert.Equal(t, "client-id", fake.lastForm.Get("client_id"))
	assert.Equal(t, "the-verifier", fake.lastForm.Get("code_verifier"))
}

func TestExchangeCode_Non2xx(t *testing.T) {
	fake := newFakeProvider(t)
	fake.tokenStatus = http.StatusBadRequest
	fake.tokenBody = map[string]any{"error": "invalid_grant"}
	p := NewDiscordProvider(testProviderConfig(false), fake.endpoints())

	_, err := p.ExchangeCode(context.Background(), "bad", "")
	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeProvider, appErr.Type)
	assert.Equal(t, http.StatusBadGateway, appErr.Code)
}

func TestExchangeCode_MissingAccessToken(t *testing.T) {
	fake := newFakeProvider(t)
	fake.tokenBody = map[string]any{"token_type": "Bearer"}
	p := NewDiscordProvider(testProviderConfig(false), fake.endpoints())

	_, err := p.ExchangeCode(context.Background(), "code", "")
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeProvider, appErr.Type)
}

func TestExchangeCode_Unreachable(t *testing.T) {
	fake := newFakeProvider(t)
	endpoints := fake.endpoints()
	fake.server.Close()

	p := NewDiscordProvider(testProviderConfig(false), endpoints)
	_, err := p.ExchangeCode(context.Background(), "code", "")
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeNetwork, appErr.Type)
	assert.Equal(t, http.StatusServiceUnavailable, appErr.Code)
}

func TestExchangeCode_Timeout(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(3 * time.Second):
		}
	}))
	defer slow.Close()

	cfg := testProviderConfig(false)
	cfg.TimeoutSeconds = 1
	p := NewDiscordProvider(cfg, Endpoints{TokenURL: slow.URL})

	_, err := p.ExchangeCode(context.Background(), "code", "")
	assert.Equal(t, apperrors.ErrorTypeNetwork, apperrors.GetAppError(err).Type)
}

func TestExchangeCode_EmptyCode(t *testing.T) {
	p := NewDiscordProvider(testProviderConfig(false), Endpoints{})
	_, err := p.ExchangeCode(context.Background(), "", "")
	assert.True(t, apperrors.IsValidationError(err))
}

func TestDiscordFetchProfile(t *testing.T) {
	fake := newFakeProvider(t)
	fake.profileBody = map[string]any{"id": "42", "username": "alice", "avatar": "a1b2"}
	p := NewDiscordProvider(testProviderConfig(false), fake.endpoints())

	identity, err := p.FetchProfile(context.Background(), "provider-token")
	require.NoError(t, err)
	assert.Equal(t, "42", identity.ID)
	assert.Equal(t, "alice", identity.Username)
	require.NotNil(t, identity.Avatar)
	assert.Equal(t, "https://cdn.discordapp.com/avatars/42/a1b2.png", *identity.Avatar)
}

func TestDiscordFetchProfile_NoAvatar(t *testing.T) {
	fake := newFakeProvider(t)
	fake.profileBody = map[string]any{"id": "42", "username": "alice", "avatar": nil}
	p := NewDiscordProvider(testProviderConfig(false), fake.endpoints())

	identity, err := p.FetchProfile(context.Background(), "provider-token")
	require.NoError(t, err)
	assert.Nil(t, identity.Avatar)
}

func TestFetchProfile_SanitizesMarkup(t *testing.T) {
	fake := newFakeProvider(t)
	fake.profileBody = map[string]any{"id": "7", "username": "<script>alert(1)</script>bob<b>!</b>"}
	p := NewDiscordProvider(testProviderConfig(false), fake.endpoints())

	identity, err := p.FetchProfile(context.Background(), "provider-token")
	require.NoError(t, err)
	assert.NotContains(t, identity.Username, "<")
	assert.Contains(t, identity.Username, "bob")
}

func TestNarrowIdentity_KeepsPlainText(t *testing.T) {
	tests := []struct {
		name     string
		username string
		want     string
	}{
		{"apostrophe", "Conan O'Brien", "Conan O'Brien"},
		{"ampersand", "Tom & Jerry", "Tom & Jerry"},
		{"quotes", `say "hi"`, `say "hi"`},
		{"comparison", "a < b", "a < b"},
		{"tags stripped", "<b>alice</b>", "alice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, err := narrowIdentity("google", "1", tt.username, "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, identity.Username)
		})
	}
}

func TestNarrowIdentity_TruncatesOnRuneBoundary(t *testing.T) {
	username := strings.Repeat("a", 254) + "ééé"

	identity, err := narrowIdentity("discord", "1", username, "")
	require.NoError(t, err)
	assert.True(t, utf8.ValidString(identity.Username))
	assert.Equal(t, maxUsernameLength, utf8.RuneCountInString(identity.Username))
	assert.Equal(t, strings.Repeat("a", 254)+"é", identity.Username)
}

func TestNarrowIdentity_DropsInvalidUTF8(t *testing.T) {
	identity, err := narrowIdentity("discord", "1", "bo\xffb", "")
	require.NoError(t, err)
	assert.Equal(t, "bob", identity.Username)
}

func TestFetchProfile_MissingID(t *testing.T) {
	fake := newFakeProvider(t)
	fake.profileBody = map[string]any{"username": "ghost"}
	p := NewDiscordProvider(testProviderConfig(false), fake.endpoints())

	_, err := p.FetchProfile(context.Background(), "provider-token")
	assert.Equal(t, apperrors.ErrorTypeProvider, apperrors.GetAppError(err).Type)
}

func TestFetchProfile_Non2xx(t *testing.T) {
	fake := newFakeProvider(t)
	fake.profileStatus = http.StatusInternalServerError
	fake.profileBody = map[string]any{"message": "oops"}
	p := NewDiscordProvider(testProviderConfig(false), fake.endpoints())

	_, err := p.FetchProfile(context.Background(), "provider-token")
	assert.Equal(t, apperrors.ErrorTypeProvider, apperrors.GetAppError(err).Type)
}

func TestFetchProfile_Malformed(t *testing.T) {
	fake := newFakeProvider(t)
	fake.profileBody = "not an object"
	p := NewDiscordProvider(testProviderConfig(false), fake.endpoints())

	_, err := p.FetchProfile(context.Background(), "provider-token")
	assert.Equal(t, apperrors.ErrorTypeProvider, apperrors.GetAppError(err).Type)
}

func TestGitHubFetchProfile(t *testing.T) {
	fake := newFakeProvider(t)
	fake.profileBody = map[string]any{"id": 1234, "login": "octocat", "name": "The Octocat", "avatar_url": "https://avatars.githubusercontent.com/u/1234"}
	p := NewGitHubProvider(testProviderConfig(false), fake.endpoints())

	identity, err := p.FetchProfile(context.Background(), "provider-token")
	require.NoError(t, err)
	assert.Equal(t, "1234", identity.ID)
	assert.Equal(t, "octocat", identity.Username)
	require.NotNil(t, identity.Avatar)
	assert.Equal(t, "https://avatars.githubusercontent.com/u/1234", *identity.Avatar)
}

func TestGoogleFetchProfile(t *testing.T) {
	fake := newFakeProvider(t)
	fake.profileBody = map[string]any{"sub": "g-1", "email": "a@example.com", "picture": "javascript:alert(1)"}
	p := NewGoogleProvider(testProviderConfig(false), fake.endpoints())

	identity, err := p.FetchProfile(context.Background(), "provider-token")
	require.NoError(t, err)
	assert.Equal(t, "g-1", identity.ID)
	assert.Equal(t, "a@example.com", identity.Username)
	assert.Nil(t, identity.Avatar)
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry(sharedConfig.OAuthConfig{
		Discord: testProviderConfig(false),
		Google:  testProviderConfig(false),
	})

	assert.Equal(t, []string{"discord", "google"}, reg.Names())

	p, err := reg.Get("discord")
	require.NoError(t, err)
	assert.Equal(t, "discord", p.Name())

	_, err = reg.Get("github")
	assert.True(t, apperrors.IsNotFoundError(err))
}
