package config_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/intellib/lending/shell/config"
)

func Test_NewLogger_JSONFormatAndLevel(t *testing.T) {
	// arrange
	var out bytes.Buffer
	logger := config.NewLogger(config.LogConfig{Level: "warn", Format: config.LogFormatJSON}, &out)

	// act
	logger.Info("hidden")
	logger.Warn("shown", "enrollment_no", "E001")

	// assert
	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), `"msg":"shown"`)
	assert.Contains(t, out.String(), `"enrollment_no":"E001"`)
}

func Test_NewLogger_TextFormat(t *testing.T) {
	// arrange
	var out bytes.Buffer
	logger := config.NewLogger(config.LogConfig{Level: "debug", Format: config.LogFormatText}, &out)

	// act
	logger.Debug("details")

	// assert
	assert.Contains(t, out.String(), "msg=details")
}
