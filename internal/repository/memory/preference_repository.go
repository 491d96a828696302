package memory

import (
	"context"

	"medfollow-client/internal/repository/contract"
	"medfollow-client/internal/session"

	"github.com/patrickmn/go-cache"
)

const preferencesKey = "preferences"

type PreferenceRepository struct {
	cache *cache.Cache
}

// NewPreferenceRepository keeps preferences for the life of the process only.
func NewPreferenceRepository() contract.PreferenceRepository {
	return &PreferenceRepository{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func (r *PreferenceRepository) Load(_ context.Context) (session.Preferences, error) {
	if x, found := r.cache.Get(preferencesKey); found {
		return x.(session.Preferences), nil
	}
	return session.Preferences{}, nil
}

func (r *PreferenceRepository) Save(_ context.Context, prefs session.Preferences) error {
	r.cache.Set(preferencesKey, prefs, cache.NoExpiration)
	return nil
}
