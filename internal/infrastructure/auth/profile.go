package auth

import (
	"html"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"tzsync/internal/domain/session"
	apperrors "tzsync/internal/shared/errors"
)

// maxUsernameLength matches the username column width, counted in characters.
const maxUsernameLength = 255

var profilePolicy = bluemonday.StrictPolicy()

// narrowIdentity builds the session identity from provider fields. Markup is
// stripped from the username and avatars must be absolute https URLs.
func narrowIdentity(provider, id, username, avatar string) (*session.Identity, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperrors.NewProviderError("profile response is malformed", provider+": missing id")
	}

	name := strings.TrimSpace(stripMarkup(username))
	if utf8.RuneCountInString(name) > maxUsernameLength {
		name = strings.TrimSpace(string([]rune(name)[:maxUsernameLength]))
	}
	if name == "" {
		name = id
	}

	identity := &session.Identity{ID: id, Username: name}
	if avatarURL := sanitizeAvatar(avatar); avatarURL != "" {
		identity.Avatar = &avatarURL
	}
	return identity, nil
}

// stripMarkup removes tags but keeps text as typed. The policy escapes entities
// on output, which JSON encoding already covers.
func stripMarkup(raw string) string {
	return html.UnescapeString(profilePolicy.Sanitize(strings.ToValidUTF8(raw, "")))
}

func sanitizeAvatar(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "https" || u.Host == "" {
		return ""
	}
	return u.String()
}
