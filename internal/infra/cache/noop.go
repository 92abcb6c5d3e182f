package cache

import (
	"context"
	"time"
)

// REDIS_ADDR未設定のときに使う。常にミス扱い。
type noopCache struct{}

func NewNoopCache() Cache {
	return &noopCache{}
}

func (n *noopCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return nil
}

func (n *noopCache) Get(ctx context.Context, key string) (string, error) {
	return "", nil
}

func (n *noopCache) Del(ctx context.Context, key string) error {
	return nil
}

func (n *noopCache) GenerateKey(operation string, key string) string {
	return operation + ":" + key
}
