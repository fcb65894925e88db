package cache

import (
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestIsCacheMiss(t *testing.T) {
	assert.True(t, IsCacheMiss(redis.Nil))
	assert.False(t, IsCacheMiss(errors.New("connection refused")))
	assert.False(t, IsCacheMiss(nil))
}

func TestKeyNamespaces(t *testing.T) {
	c := &RedisCache{keyPrefix: "complypath:"}

	// Roadmap and vendor entries for one assessment live under distinct
	// namespaces so they can be cached and invalidated together
	assert.Equal(t, "complypath:cache:roadmap:abc", c.key(KeyRoadmapPrefix+"abc"))
	assert.Equal(t, "complypath:cache:vendors:abc", c.key(KeyVendorsPrefix+"abc"))
	assert.NotEqual(t, KeyRoadmapPrefix, KeyVendorsPrefix)
}
