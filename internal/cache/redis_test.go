package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muhtegaralfikri/intern-log-system/internal/models"
	"github.com/muhtegaralfikri/intern-log-system/pkg/logger"
)

func setupCache(t *testing.T) *RedisCache {
	t.Helper()

	mr := miniredis.RunT(t)
	return NewRedisCacheFromAddr(mr.Addr(), logger.New("error", "json", "stdout"))
}

func TestRedisCache_SetGet(t *testing.T) {
	c := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "greeting", "hello", time.Minute))

	val, err := c.Get(ctx, "greeting")
	require.NoError(t, err)
	assert.Equal(t, "hello", val)
}

func TestRedisCache_GetMissing(t *testing.T) {
	c := setupCache(t)

	val, err := c.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Empty(t, val)
}

func TestRedisCache_Del(t *testing.T) {
	c := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", "1", time.Minute))
	require.NoError(t, c.Set(ctx, "b", "2", time.Minute))
	require.NoError(t, c.Del(ctx, "a", "b"))

	val, err := c.Get(ctx, "a")
	require.NoError(t, err)
	assert.Empty(t, val)
}

func TestJSONRoundTrip(t *testing.T) {
	c := setupCache(t)
	ctx := context.Background()

	offices := []models.OfficeLocation{
		{ID: 1, Name: "HQ", Latitude: -6.2088, Longitude: 106.8456, Radius: 100, IsActive: true},
	}
	require.NoError(t, SetJSON(ctx, c, "offices:active", offices, time.Minute))

	var got []models.OfficeLocation
	require.NoError(t, GetJSON(ctx, c, "offices:active", &got))
	require.Len(t, got, 1)
	assert.Equal(t, "HQ", got[0].Name)
	assert.InDelta(t, -6.2088, got[0].Latitude, 0.00001)
}

func TestGetJSONMiss(t *testing.T) {
	c := setupCache(t)

	var got []models.OfficeLocation
	err := GetJSON(context.Background(), c, "offices:active", &got)
	assert.ErrorIs(t, err, ErrMiss)
}
