package helpers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRedisClient_EmptyAddrIsNil(t *testing.T) {
	require.Nil(t, NewRedisClient("", "", 0))
	require.NoError(t, PingRedis(context.Background(), nil))
}

func TestNewRedisClient_Configured(t *testing.T) {
	rdb := NewRedisClient("localhost:6390", "pw", 2)
	require.NotNil(t, rdb)
	t.Cleanup(func() { _ = rdb.Close() })

	opts := rdb.Options()
	require.Equal(t, "localhost:6390", opts.Addr)
	require.Equal(t, 2, opts.DB)
}
