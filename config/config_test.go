package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadS3UseSSL(t *testing.T) {
	cases := []struct {
		name  string
		value string
		want  bool
	}{
		{"unset defaults on", "", true},
		{"lowercase true", "true", true},
		{"uppercase", "TRUE", true},
		{"numeric on", "1", true},
		{"lowercase false", "false", false},
		{"numeric off", "0", false},
		{"garbage keeps default", "yes please", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("S3_USE_SSL", tc.value)
			cfg := Load()
			assert.Equal(t, tc.want, cfg.S3UseSSL)
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("S3_REGION", "")
	cfg := Load()
	assert.Equal(t, "10000", cfg.Port)
	assert.Equal(t, "ap-southeast-2", cfg.S3Region)
	assert.Equal(t, float32(80), cfg.ModerationMinConfidence)
}
