package utils

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateWriter_PassesThroughWhenOpen(t *testing.T) {
	var out bytes.Buffer
	g := NewGateWriter(&out)

	n, err := g.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "hello", out.String())
}

func TestGateWriter_HoldAndRelease(t *testing.T) {
	var out bytes.Buffer
	g := NewGateWriter(&out)

	g.Hold()
	_, _ = g.Write([]byte("a "))
	_, _ = g.Write([]byte("b"))
	assert.Empty(t, out.String())

	require.NoError(t, g.Release())
	assert.Equal(t, "a b", out.String())

	_, _ = g.Write([]byte(" c"))
	assert.Equal(t, "a b c", out.String())

	require.NoError(t, g.Release(), "release with nothing buffered")
	assert.Equal(t, "a b c", out.String())
}

func TestGateWriter_ConcurrentWrites(t *testing.T) {
	var out bytes.Buffer
	g := NewGateWriter(&out)
	g.Hold()

	var wg sync.WaitGroup
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = g.Write([]byte("x"))
		}()
	}
	wg.Wait()

	require.NoError(t, g.Release())
	assert.Len(t, out.String(), 100)
}
