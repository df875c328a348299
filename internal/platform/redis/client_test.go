// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package redis_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisclient "github.com/taibuivan/usergate/internal/platform/redis"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewClient(t *testing.T) {
	server := miniredis.RunT(t)

	client, err := redisclient.NewClient(context.Background(), "redis://"+server.Addr()+"/0", discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	assert.NoError(t, redisclient.Ping(context.Background(), client))
}

func TestNewClient_InvalidURL(t *testing.T) {
	_, err := redisclient.NewClient(context.Background(), "http://not-redis", discardLogger())
	assert.ErrorContains(t, err, "invalid URL")
}

func TestNewClient_Unreachable(t *testing.T) {
	server := miniredis.RunT(t)
	addr := server.Addr()
	server.Close()

	_, err := redisclient.NewClient(context.Background(), "redis://"+addr, discardLogger())
	assert.ErrorContains(t, err, "ping failed")
}
