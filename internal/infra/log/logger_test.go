package logs

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"shortlink/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "INFO", want: slog.LevelInfo},
		{in: "", want: slog.LevelInfo},
		{in: "warn", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "verbose", want: slog.LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseLogLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewLogger_RedactsSecrets(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(&buf, config.Log{Level: "info"})
	require.NoError(t, err)

	logger.Info("login", slog.String("email", "meng@acme.org"), slog.String("password", "hunter42"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "meng@acme.org", record["email"])
	assert.Equal(t, redacted, record["password"])
	assert.NotContains(t, buf.String(), "hunter42")
}

func TestNewLogger_PrettyUsesTextHandler(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(&buf, config.Log{Pretty: true, Level: "debug"})
	require.NoError(t, err)

	logger.Debug("hello", slog.String("token", "abc.def.ghi"))

	assert.Contains(t, buf.String(), "msg=hello")
	assert.Contains(t, buf.String(), "token="+redacted)
}
