package auth

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"

	"tzsync/internal/domain/session"
	sharedConfig "tzsync/internal/shared/config"
)

// DiscordProviderName is the route segment for Discord logins.
const DiscordProviderName = "discord"

var discordEndpoints = Endpoints{
	AuthURL:    "https://discord.com/oauth2/authorize",
	TokenURL:   "https://discord.com/api/oauth2/token",
	ProfileURL: "https://discord.com/api/users/@me",
}

const discordAvatarBase = "https://cdn.discordapp.com/avatars"

// DiscordProvider signs users in with the "identify" scope.
type DiscordProvider struct {
	*oauthClient
}

type discordUser struct {
	ID         string  `json:"id"`
	Username   string  `json:"username"`
	GlobalName *string `json:"global_name"`
	Avatar     *string `json:"avatar"`
}

// NewDiscordProvider creates a Discord provider. Zero-valued endpoints use Discord's.
func NewDiscordProvider(cfg sharedConfig.ProviderConfig, endpoints Endpoints) *DiscordProvider {
	return &DiscordProvider{
		oauthClient: newOAuthClient(DiscordProviderName, cfg, discordEndpoints, endpoints,
			[]string{"identify"}, oauth2.AuthStyleInParams),
	}
}

func (p *DiscordProvider) FetchProfile(ctx context.Context, accessToken string) (*session.Identity, error) {
	var user discordUser
	if err := p.getJSON(ctx, accessToken, &user, nil); err != nil {
		return nil, err
	}

	var avatar string
	if user.Avatar != nil && *user.Avatar != "" {
		avatar = fmt.Sprintf("%s/%s/%s.png", discordAvatarBase, user.ID, *user.Avatar)
	}

	return narrowIdentity(p.name, user.ID, user.Username, avatar)
}

var _ Provider = (*DiscordProvider)(nil)
