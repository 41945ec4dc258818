package middleware

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ fiber.Storage = (*RedisStorage)(nil)

func TestRedisStorageKeyPrefix(t *testing.T) {
	s := &RedisStorage{prefix: "colih:limiter:"}
	assert.Equal(t, "colih:limiter:127.0.0.1", s.key("127.0.0.1"))
}

func TestNewRedisStorageUnreachable(t *testing.T) {
	s, err := NewRedisStorage(RedisConfig{Addr: "127.0.0.1:1"})
	require.Error(t, err)
	assert.Nil(t, s)
	assert.Contains(t, err.Error(), "redis ping failed")
}
