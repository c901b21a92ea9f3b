package auth

import (
	"context"
	"strconv"

	"golang.org/x/oauth2"

	"tzsync/internal/domain/session"
	sharedConfig "tzsync/internal/shared/config"
)

// GitHubProviderName is the route segment for GitHub logins.
const GitHubProviderName = "github"

var githubEndpoints = Endpoints{
	AuthURL:    "https://github.com/login/oauth/authorize",
	TokenURL:   "https://github.com/login/oauth/access_token",
	ProfileURL: "https://api.github.com/user",
}

type GitHubProvider struct {
	*oauthClient
}

type githubUserInfo struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

func NewGitHubProvider(cfg sharedConfig.ProviderConfig, endpoints Endpoints) *GitHubProvider {
	return &GitHubProvider{
		oauthClient: newOAuthClient(GitHubProviderName, cfg, githubEndpoints, endpoints,
			[]string{"read:user"}, oauth2.AuthStyleInParams),
	}
}

func (p *GitHubProvider) FetchProfile(ctx context.Context, accessToken string) (*session.Identity, error) {
	var info githubUserInfo
	headers := map[string]string{"Accept": "application/vnd.github.v3+json"}
	if err := p.getJSON(ctx, accessToken, &info, headers); err != nil {
		return nil, err
	}

	var id string
	if info.ID > 0 {
		id = strconv.FormatInt(info.ID, 10)
	}

	// login is the stable handle; display names are optional on GitHub
	return narrowIdentity(p.name, id, info.Login, info.AvatarURL)
}

var _ Provider = (*GitHubProvider)(nil)
