package auth

import (
	"context"

	"golang.org/x/oauth2"

	"tzsync/internal/domain/session"
	sharedConfig "tzsync/internal/shared/config"
)

// GoogleProviderName is the route segment for Google logins.
const GoogleProviderName = "google"

var googleEndpoints = Endpoints{
	AuthURL:    "https://accounts.google.com/o/oauth2/auth",
	TokenURL:   "https://oauth2.googleapis.com/token",
	ProfileURL: "https://openidconnect.googleapis.com/v1/userinfo",
}

type GoogleProvider struct {
	*oauthClient
}

type googleUserInfo struct {
	Sub     string `json:"sub"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

func NewGoogleProvider(cfg sharedConfig.ProviderConfig, endpoints Endpoints) *GoogleProvider {
	return &GoogleProvider{
		oauthClient: newOAuthClient(GoogleProviderName, cfg, googleEndpoints, endpoints,
			[]string{"openid", "profile"}, oauth2.AuthStyleInParams),
	}
}

func (p *GoogleProvider) FetchProfile(ctx context.Context, accessToken string) (*session.Identity, error) {
	var info googleUserInfo
	if err := p.getJSON(ctx, accessToken, &info, nil); err != nil {
		return nil, err
	}

	name := info.Name
	if name == "" {
		name = info.Email
	}
	return narrowIdentity(p.name, info.Sub, name, info.Picture)
}

var _ Provider = (*GoogleProvider)(nil)
