package utils

import (
	"net/url"
	"strings"
)

// SafeRedirect returns target when it is a same-site path or points at one of
// allowedOrigins, and "" otherwise.
func SafeRedirect(target string, allowedOrigins []string) string {
	target = strings.TrimSpace(target)
	if target == "" {
		return ""
	}

	// "//host" and "/\host" are protocol-relative in browsers
	if strings.HasPrefix(target, "/") {
		if strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
			return ""
		}
		return target
	}

	u, err := url.Parse(target)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ""
	}

	origin := u.Scheme + "://" + u.Host
	for _, allowed := range allowedOrigins {
		if strings.EqualFold(strings.TrimRight(allowed, "/"), origin) {
			return target
		}
	}
	return ""
}
