package logger_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	rawslog "log/slog"

	"github.com/stretchr/testify/require"

	"github.com/cadgraph/cadgraph.go/pkg/logger"
)

func TestLog(t *testing.T) {
	buff := bytes.NewBuffer([]byte{})
	templogger, err := logger.NewBuild().FromBuffer(buff).Make()
	require.NoError(t, err)
	require.NotNil(t, templogger)
	require.Equal(t, buff.Len(), 0)

	templogger.Info("section written", "section", "ENTITIES", "count", 3)
	require.Contains(t, buff.String(), `"message":"section written"`)
	require.Contains(t, buff.String(), `"section":"ENTITIES"`)
	require.Contains(t, buff.String(), `"count":3`)

	// below the default level
	buff.Reset()
	templogger.Debug("hidden")
	require.Equal(t, 0, buff.Len())
}

func TestLog_level(t *testing.T) {
	buff := bytes.NewBuffer([]byte{})
	templogger, err := logger.NewBuild().FromBuffer(buff).WithLevel("debug").Make()
	require.NoError(t, err)

	templogger.Debug("visible")
	require.Contains(t, buff.String(), `"level":"debug"`)
}

func TestLog_fromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codec.log")
	templogger, err := logger.NewBuild().FromPath(path).Make()
	require.NoError(t, err)

	templogger.Warn("duplicate handle", "handle", "1F")
	require.NoError(t, templogger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"handle":"1F"`)
}

func TestNew(t *testing.T) {
	buff := bytes.NewBuffer([]byte{})
	var l logger.Logger = logger.New(rawslog.NewTextHandler(buff, nil))
	l.Error("broken")
	require.Contains(t, buff.String(), "msg=broken")

	logger.Nop().Error("ignored")
}
