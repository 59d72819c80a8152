package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	logger, err := New(Config{Level: "debug", Development: true})
	assert.Nil(t, err)
	assert.NotNil(t, logger)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = New(Config{Level: "warn"})
	assert.Nil(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	assert.NotNil(t, err)
}

func TestNewDefaultNeverNil(t *testing.T) {
	assert.NotNil(t, NewDefault())
	assert.NotNil(t, NewDevelopment())
	assert.NotNil(t, NewNop())
}

func TestParseLevel(t *testing.T) {
	var testCases = []struct {
		level    string
		expected zapcore.Level
		valid    bool
	}{
		{level: "debug", expected: zapcore.DebugLevel, valid: true},
		{level: "info", expected: zapcore.InfoLevel, valid: true},
		{level: "warn", expected: zapcore.WarnLevel, valid: true},
		{level: "error", expected: zapcore.ErrorLevel, valid: true},
		{level: "silly", valid: false},
	}
	for _, testCase := range testCases {
		actual, err := parseLevel(testCase.level)
		if !testCase.valid {
			assert.NotNil(t, err, testCase.level)
			continue
		}
		assert.Nil(t, err, testCase.level)
		assert.Equal(t, testCase.expected, actual, testCase.level)
	}
}
