package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(context.Background(), mr.Addr(), "")
	require.NoError(t, err)
	require.NoError(t, client.Close())

	client, err = NewRedisClient(context.Background(), "redis://"+mr.Addr()+"/0", "")
	require.NoError(t, err)
	require.NoError(t, client.Close())

	mr.RequireAuth("s3cret")
	_, err = NewRedisClient(context.Background(), mr.Addr(), "")
	assert.Error(t, err)
	client, err = NewRedisClient(context.Background(), mr.Addr(), "s3cret")
	require.NoError(t, err)
	client.Close()
}
