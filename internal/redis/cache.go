package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Cache key patterns:
// - recommendation:{sha256(question)} - RECOMMENDATION_CACHE_TTL

// DefaultAnswerTTL is used when the configured TTL is not positive.
const DefaultAnswerTTL = 10 * time.Minute

// AnswerCache stores provider answers keyed by the exact question text.
type AnswerCache struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewAnswerCache(client *goredis.Client, ttl time.Duration) *AnswerCache {
	if ttl <= 0 {
		ttl = DefaultAnswerTTL
	}
	return &AnswerCache{client: client, ttl: ttl}
}

// GetAnswer returns ("", false, nil) on a cache miss.
func (c *AnswerCache) GetAnswer(ctx context.Context, question string) (string, bool, error) {
	answer, err := c.client.Get(ctx, answerKey(question)).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return answer, true, nil
}

func (c *AnswerCache) SetAnswer(ctx context.Context, question, answer string) error {
	return c.client.Set(ctx, answerKey(question), answer, c.ttl).Err()
}

func (c *AnswerCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func answerKey(question string) string {
	sum := sha256.Sum256([]byte(question))
	return "recommendation:" + hex.EncodeToString(sum[:])
}
