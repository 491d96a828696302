package memory

import (
	"context"
	"testing"

	"medfollow-client/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferenceRepository(t *testing.T) {
	repo := NewPreferenceRepository()
	ctx := context.Background()

	prefs, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, session.Preferences{}, prefs)

	require.NoError(t, repo.Save(ctx, session.Preferences{Language: session.Hindi, Theme: session.ThemeDark}))
	prefs, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, session.Preferences{Language: session.Hindi, Theme: session.ThemeDark}, prefs)
}
