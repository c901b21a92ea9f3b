package auth

import (
	"sort"

	sharedConfig "tzsync/internal/shared/config"
	apperrors "tzsync/internal/shared/errors"
)

// Registry resolves the provider named in a login route.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry registers every provider that has credentials configured.
func NewRegistry(cfg sharedConfig.OAuthConfig) *Registry {
	r := &Registry{providers: make(map[string]Provider)}
	if cfg.Discord.Enabled() {
		r.Register(NewDiscordProvider(cfg.Discord, Endpoints{}))
	}
	if cfg.GitHub.Enabled() {
		r.Register(NewGitHubProvider(cfg.GitHub, Endpoints{}))
	}
	if cfg.Google.Enabled() {
		r.Register(NewGoogleProvider(cfg.Google, Endpoints{}))
	}
	return r
}

// NewRegistryWith builds a registry from ready providers.
func NewRegistryWith(providers ...Provider) *Registry {
	r := &Registry{providers: make(map[string]Provider)}
	for _, p := range providers {
		r.Register(p)
	}
	return r
}

func (r *Registry) Register(p Provider) {
	r.providers[p.Name()] = p
}

// Get returns a not_found error for unknown or unconfigured providers.
func (r *Registry) Get(name string) (Provider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, apperrors.NewNotFoundError("unknown identity provider", name)
	}
	return p, nil
}

// Names lists the registered providers in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
