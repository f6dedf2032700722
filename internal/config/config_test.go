package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
}

func TestValidate_RejectsBadLogLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = "loud"
	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsBadBinAction(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Bins[1] = "z"
	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsZeroK(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Decode.K = 0
	assert.Error(t, cfg.Validate())
}

func TestPolicyMap_ConvertsBinsAndFillsDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Bins = map[int]string{1: "o", 3: "d"}
	pm := cfg.PolicyMap()
	require.NoError(t, pm.Validate())
	assert.EqualValues(t, 'o', pm[1])
	assert.EqualValues(t, 'd', pm[3])
	assert.EqualValues(t, 'a', pm[2]) // filled from DefaultPolicy
}
