package slog_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	rawslog "log/slog"

	"github.com/stretchr/testify/require"

	"github.com/cadgraph/cadgraph.go/pkg/logger/slog"
)

type testMethod struct {
	fn    func(msg string, args ...any)
	level rawslog.Level
}

type testLogJSON struct {
	Level  string `json:"level"`
	Msg    string `json:"msg"`
	Code   int    `json:"code"`
	Source string `json:"source"`
}

func TestLogger(t *testing.T) {
	buffer := bytes.NewBuffer([]byte{})

	// level needs to be set to debug for log all
	handler := rawslog.NewJSONHandler(buffer, &rawslog.HandlerOptions{Level: rawslog.LevelDebug})
	logger := slog.New(handler).With("source", "dxf")

	testMethods := []testMethod{
		{fn: logger.Error, level: rawslog.LevelError},
		{fn: logger.Warn, level: rawslog.LevelWarn},
		{fn: logger.Info, level: rawslog.LevelInfo},
		{fn: logger.Debug, level: rawslog.LevelDebug},
	}

	for _, v := range testMethods {
		t.Run(fmt.Sprintf("testing %s", v.level.String()), func(t *testing.T) {
			require.Equal(t, 0, buffer.Len())
			v.fn("unknown group code", "code", 999)

			var got testLogJSON
			require.NoError(t, json.Unmarshal(buffer.Bytes(), &got))
			require.Equal(t, v.level.String(), got.Level)
			require.Equal(t, "unknown group code", got.Msg)
			require.Equal(t, 999, got.Code)
			require.Equal(t, "dxf", got.Source)
		})
		buffer.Reset()
	}
}
