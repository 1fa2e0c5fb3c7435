package main

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApp(t *testing.T) {
	app := newApp()
	assert.Equal(t, "play", app.DefaultCommand)

	names := map[string]bool{}
	for _, c := range app.Commands {
		names[c.Name] = true
	}
	assert.True(t, names["play"])
	assert.True(t, names["serve"])
}

func TestQuiet(t *testing.T) {
	require.NoError(t, quiet(nil))
	require.NoError(t, quiet(io.EOF))
	require.NoError(t, quiet(context.Canceled))

	boom := errors.New("boom")
	require.ErrorIs(t, quiet(boom), boom)
}
