package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidTransport(t *testing.T) {
	require.True(t, validTransport("stdio"))
	require.True(t, validTransport("http"))
	require.False(t, validTransport("sse"))
	require.False(t, validTransport(""))
	require.False(t, validTransport("tcp"))
}
