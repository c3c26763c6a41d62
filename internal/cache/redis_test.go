package cache

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unusedAddr returns an address nothing is listening on.
func unusedAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestKey(t *testing.T) {
	assert.Equal(t, "library:cover:9780441013593", key("9780441013593"))
}

func TestRedisCoverCache_Unreachable(t *testing.T) {
	c := NewRedisCoverCache(unusedAddr(t), "", 0, time.Hour)
	defer c.Close()

	_, ok, err := c.Get("9780441013593")
	assert.Error(t, err)
	assert.False(t, ok)

	assert.Error(t, c.Set("9780441013593", "https://c.test/1.jpg"))
	assert.Error(t, c.Ping(context.Background()))
}
