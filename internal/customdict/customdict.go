package customdict

import (
	"context"
	"strings"

	"github.com/redis/go-redis/v9"
)

// KeyPrefix prefixes the per-language Redis set key.
const KeyPrefix = "custom_dict"

// CustomDict wraps a Redis client to store custom dictionary words.
type CustomDict struct {
	client redis.UniversalClient
	key    string
}

// New creates a CustomDict for one language; words live in the set
// "custom_dict:<language>".
func New(client redis.UniversalClient, language string) *CustomDict {
	return &CustomDict{client: client, key: KeyPrefix + ":" + language}
}

// Key returns the Redis key of the set.
func (cd *CustomDict) Key() string { return cd.key }

// Add inserts a word into the custom dictionary. Words are stored
// lowercased.
func (cd *CustomDict) Add(ctx context.Context, word string) error {
	return cd.client.SAdd(ctx, cd.key, normalize(word)).Err()
}

// Remove deletes a word from the custom dictionary.
func (cd *CustomDict) Remove(ctx context.Context, word string) error {
	return cd.client.SRem(ctx, cd.key, normalize(word)).Err()
}

// All returns all words stored in the custom dictionary.
func (cd *CustomDict) All(ctx context.Context) ([]string, error) {
	return cd.client.SMembers(ctx, cd.key).Result()
}

// Ping checks the connection.
func (cd *CustomDict) Ping(ctx context.Context) error {
	return cd.client.Ping(ctx).Err()
}

func normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}
