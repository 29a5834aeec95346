package main

import (
	"flag"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_parseFlags(t *testing.T) {
	t.Run("one-shot action", func(t *testing.T) {
		// act
		f, err := parseFlags([]string{"-action", "issue", "-enrollment", "E001", "-book", "B1"}, io.Discard)

		// assert
		require.NoError(t, err)
		assert.Equal(t, cliFlags{Action: "issue", EnrollmentNo: "E001", BookID: "B1"}, f)
	})

	t.Run("no flags means the form", func(t *testing.T) {
		// act
		f, err := parseFlags(nil, io.Discard)

		// assert
		require.NoError(t, err)
		assert.Equal(t, cliFlags{}, f)
	})

	t.Run("serve with config and observability", func(t *testing.T) {
		// act
		f, err := parseFlags([]string{"-serve", ":8080", "-config", "desk.yaml", "-observability-enabled"}, io.Discard)

		// assert
		require.NoError(t, err)
		assert.Equal(t, ":8080", f.Serve)
		assert.Equal(t, "desk.yaml", f.ConfigPath)
		assert.True(t, f.ObservabilityEnabled)
	})

	testCases := []struct {
		name string
		args []string
		err  error
	}{
		{"unknown action", []string{"-action", "renew"}, ErrUnknownAction},
		{"two modes", []string{"-action", "fine", "-migrate"}, ErrConflictingModes},
		{"serve and migrate", []string{"-serve", ":8080", "-migrate"}, ErrConflictingModes},
		{"positional argument", []string{"E001"}, ErrUnexpectedArgument},
		{"help", []string{"-h"}, flag.ErrHelp},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			_, err := parseFlags(tc.args, io.Discard)

			// assert
			assert.ErrorIs(t, err, tc.err)
		})
	}
}
