package customdict

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDict(t *testing.T, language string) (*CustomDict, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return New(client, language), mr
}

func TestAddRemoveAll(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dict, mr := newTestDict(t, "en")

	require.NoError(t, dict.Ping(ctx))
	require.NoError(t, dict.Add(ctx, " Grok "))
	require.NoError(t, dict.Add(ctx, "kubectl"))
	require.NoError(t, dict.Add(ctx, "grok"))

	words, err := dict.All(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"grok", "kubectl"}, words)

	members, err := mr.Members("custom_dict:en")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"grok", "kubectl"}, members)

	require.NoError(t, dict.Remove(ctx, "GROK"))
	words, err = dict.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"kubectl"}, words)
}

func TestKeysPerLanguage(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	en := New(client, "en")
	vi := New(client, "vi")
	require.NoError(t, en.Add(ctx, "hello"))
	require.NoError(t, vi.Add(ctx, "xin"))

	assert.Equal(t, "custom_dict:en", en.Key())
	words, err := vi.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"xin"}, words)
}

func TestUnavailable(t *testing.T) {
	t.Parallel()

	dict, mr := newTestDict(t, "en")
	mr.Close()

	_, err := dict.All(context.Background())
	assert.Error(t, err)
}
