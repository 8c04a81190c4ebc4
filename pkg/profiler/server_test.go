package profiler

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_ServesPprof(t *testing.T) {
	s := New(0, zerolog.Nop())
	require.NoError(t, s.Start(context.Background()))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.Shutdown(ctx)
	})

	assert.True(t, strings.HasPrefix(s.Addr(), "127.0.0.1:"))

	for _, path := range []string{"", "cmdline", "symbol"} {
		t.Run("/"+path, func(t *testing.T) {
			resp, err := http.Get(s.URL() + path)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			_, _ = io.Copy(io.Discard, resp.Body)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
		})
	}
}

func TestServer_AddrBeforeStart(t *testing.T) {
	assert.Empty(t, New(0, zerolog.Nop()).Addr())
}

func TestStartIfEnabled_Disabled(t *testing.T) {
	stop, err := StartIfEnabled(context.Background(), 0, zerolog.Nop())
	require.NoError(t, err)
	require.NotNil(t, stop)
	stop()
}
