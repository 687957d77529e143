package health

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisProbe_Unreachable(t *testing.T) {
	// Reserve a port and release it so nothing is listening there.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	p := NewRedisProbe(addr, "", 0)
	defer p.Close()

	assert.Equal(t, "redis", p.Name())
	err = p.Check(context.Background())
	assert.ErrorContains(t, err, "pinging redis")
}
