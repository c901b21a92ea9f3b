package handlers

import (
	"tzsync/internal/application/preference/usecases"
	"tzsync/internal/domain/preference"
	"tzsync/internal/domain/session"
)

// UserRef is the public part of an identity shown next to a timezone.
type UserRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// TimezoneResponse is returned by /get and /set.
type TimezoneResponse struct {
	User     UserRef `json:"user"`
	Timezone *string `json:"timezone"`
}

// ListEntry is one value of the /list map, keyed by user id.
type ListEntry struct {
	Username string  `json:"username"`
	Timezone *string `json:"timezone"`
}

// MeResponse is returned by /me.
type MeResponse struct {
	User     session.Identity `json:"user"`
	Timezone *string          `json:"timezone"`
}

// SetTimezoneRequest accepts form, multipart and JSON bodies.
type SetTimezoneRequest struct {
	Timezone string `form:"timezone" json:"timezone" binding:"required"`
}

func toTimezoneResponse(record *preference.Record) TimezoneResponse {
	return TimezoneResponse{
		User: UserRef{
			ID:       record.UserID,
			Username: record.Username,
		},
		Timezone: record.Timezone,
	}
}

func toListResponse(records []*preference.Record) map[string]ListEntry {
	out := make(map[string]ListEntry, len(records))
	for _, record := range records {
		out[record.UserID] = ListEntry{
			Username: record.Username,
			Timezone: record.Timezone,
		}
	}
	return out
}

func toMeResponse(result *usecases.GetCurrentUserResult) MeResponse {
	return MeResponse{
		User:     result.User,
		Timezone: result.Timezone,
	}
}
