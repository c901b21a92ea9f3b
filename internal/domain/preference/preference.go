// Package preference holds the per-user timezone record and its validation rules.
package preference

import (
	"strings"
	"time"
	_ "time/tzdata" // fallback zone database for hosts without zoneinfo

	"tzsync/internal/shared/errors"
)

// MaxTimezoneLength bounds the accepted zone name. The longest IANA name is
// well under this.
const MaxTimezoneLength = 64

// Record is one user's stored preference.
type Record struct {
	UserID    string
	Username  string
	Timezone  *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TimezoneOrEmpty returns the stored zone or "".
func (r *Record) TimezoneOrEmpty() string {
	if r.Timezone == nil {
		return ""
	}
	return *r.Timezone
}

// ParseTimezone trims and validates an IANA zone name.
func ParseTimezone(raw string) (string, error) {
	tz := strings.TrimSpace(raw)
	if tz == "" {
		return "", errors.NewValidationError("timezone is required")
	}
	if len(tz) > MaxTimezoneLength {
		return "", errors.NewValidationError("timezone is too long")
	}
	if isHostZoneName(tz) {
		return "", errors.NewValidationError("invalid timezone", tz)
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return "", errors.NewValidationError("invalid timezone", tz)
	}
	return tz, nil
}

// hostOnlyPrefixes are zoneinfo directories some systems ship beside the IANA
// names. LoadLocation reads the host tree before the embedded database.
var hostOnlyPrefixes = []string{"posix/", "right/"}

// isHostZoneName reports names LoadLocation accepts that are not IANA zones:
// "Local" and "localtime" are the server's own zone, "posixrules" is a default
// rule file.
func isHostZoneName(tz string) bool {
	switch tz {
	case "Local", "localtime", "posixrules":
		return true
	}
	for _, prefix := range hostOnlyPrefixes {
		if strings.HasPrefix(tz, prefix) {
			return true
		}
	}
	return false
}

// ValidateUserID rejects blank identities before they reach the store.
func ValidateUserID(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return errors.NewValidationError("user id is required")
	}
	return nil
}
