package implementation

import (
	"context"
	"fmt"

	"medfollow-client/internal/repository/contract"
	"medfollow-client/internal/session"

	"github.com/redis/go-redis/v9"
)

const (
	fieldLanguage = "language"
	fieldTheme    = "theme"
)

// RedisPreferenceRepository keeps preferences in a hash per device so several
// kiosks can share one Redis.
type RedisPreferenceRepository struct {
	rdb *redis.Client
	key string
}

func NewRedisPreferenceRepository(rdb *redis.Client, deviceID string) contract.PreferenceRepository {
	return &RedisPreferenceRepository{rdb: rdb, key: PreferenceKey(deviceID)}
}

func PreferenceKey(deviceID string) string {
	return "medfollow:prefs:" + deviceID
}

func (r *RedisPreferenceRepository) Load(ctx context.Context) (session.Preferences, error) {
	values, err := r.rdb.HGetAll(ctx, r.key).Result()
	if err != nil {
		return session.Preferences{}, fmt.Errorf("load preferences %s: %w", r.key, err)
	}
	return session.Preferences{
		Language: session.Language(values[fieldLanguage]),
		Theme:    session.Theme(values[fieldTheme]),
	}, nil
}

func (r *RedisPreferenceRepository) Save(ctx context.Context, prefs session.Preferences) error {
	err := r.rdb.HSet(ctx, r.key,
		fieldLanguage, string(prefs.Language),
		fieldTheme, string(prefs.Theme),
	).Err()
	if err != nil {
		return fmt.Errorf("save preferences %s: %w", r.key, err)
	}
	return nil
}
