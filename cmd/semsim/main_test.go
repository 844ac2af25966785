package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun(t *testing.T) {
	noEnv := filepath.Join(t.TempDir(), "missing.env")

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"NoCommand", []string{"-env-file", noEnv}, 1},
		{"Help", []string{"-h"}, 0},
		{"UnknownFlag", []string{"-verbose"}, 2},
		{"UnknownCommand", []string{"-env-file", noEnv, "translate"}, 1},
		{"MissingConfig", []string{"-env-file", noEnv, "-config", filepath.Join(t.TempDir(), "nope.yaml"), "embed", "hi"}, 1},
		{"CommandError", []string{"-env-file", noEnv, "similarity", "only-one"}, 1},
		{"Embed", []string{"-env-file", noEnv, "embed", "hello", "world"}, 0},
		{"Similarity", []string{"-env-file", noEnv, "similarity", "cat", "dog"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SEMSIM_PROVIDER_TYPE", "static")
			assert.Equal(t, tt.want, run(tt.args))
		})
	}
}
