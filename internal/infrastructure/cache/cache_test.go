package cache

import (
	"context"
	"strings"
	"testing"

	"github.com/Knnivedh/job-rec/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobSearchKey_Normalized(t *testing.T) {
	a := JobSearchKey([]string{"Go", "  Kubernetes "}, "Remote")
	b := JobSearchKey([]string{"kubernetes", "go", ""}, " remote")
	c := JobSearchKey([]string{"go"}, "remote")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.True(t, strings.HasPrefix(a, "jobsearch:"))
}

func TestRecommendationKeys(t *testing.T) {
	assert.Equal(t, "recs:u1:r1", RecommendationsKey("u1", "r1"))
	assert.Equal(t, "recs:u1:*", RecommendationsPattern("u1"))
	assert.Equal(t, "recs:lock:u1", RecommendationsLockKey("u1"))
}

func TestRedis_DisabledIsNoop(t *testing.T) {
	ctx := context.Background()
	r := NewRedis(ctx, config.RedisConfig{}, nil)
	require.NotNil(t, r)
	assert.False(t, r.Enabled())

	var out map[string]string
	hit, err := r.GetJSON(ctx, "k", &out)
	assert.NoError(t, err)
	assert.False(t, hit)

	assert.NoError(t, r.SetJSON(ctx, "k", map[string]string{"a": "b"}, 0))
	assert.NoError(t, r.InvalidateUser(ctx, "u1"))
	assert.ErrorIs(t, r.Ping(ctx), ErrUnavailable)

	ok, err := r.SetIfNotExists(ctx, "lock", "1", 0)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, r.Close())
}

func TestRedis_NilReceiver(t *testing.T) {
	var r *Redis
	hit, err := r.GetJSON(context.Background(), "k", &struct{}{})
	assert.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, r.Delete(context.Background(), "k"))
}
