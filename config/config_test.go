package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfigDefaults(t *testing.T) {
	cfg := GetConfig()
	require.NotNil(t, cfg)

	assert.Equal(t, "data/datasets", cfg.DataDir)
	assert.Equal(t, 2*time.Minute, cfg.IngestTimeout)

	// singleton
	assert.Same(t, cfg, GetConfig())
}
