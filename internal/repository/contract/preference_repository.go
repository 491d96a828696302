package contract

import (
	"context"

	"medfollow-client/internal/session"
)

// PreferenceRepository persists the client state that survives restarts.
// Load returns zero Preferences, not an error, when nothing was saved yet.
type PreferenceRepository interface {
	Load(ctx context.Context) (session.Preferences, error)
	Save(ctx context.Context, prefs session.Preferences) error
}
