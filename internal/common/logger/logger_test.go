package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/HanSo1o-a/cimplico-marketplace/internal/common/config"
)

func TestInitStdout(t *testing.T) {
	err := Init(&config.LoggerConfig{
		Level:  "info",
		Format: "json",
		Output: "stdout",
	})
	require.NoError(t, err)
	require.NotNil(t, GetLogger())
	require.NotNil(t, GetSugar())

	Info("logger initialized", String("component", "test"))
}

func TestInitFileOutput(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "app.log")

	err := Init(&config.LoggerConfig{
		Level:    "debug",
		Format:   "json",
		Output:   "file",
		FilePath: logPath,
	})
	require.NoError(t, err)

	Info("written to file", OrderNo("ORD20250101000001"))
	require.NoError(t, Sync())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
	assert.Contains(t, string(data), "ORD20250101000001")
}

func TestGetLogLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, getLogLevel("debug"))
	assert.Equal(t, zapcore.InfoLevel, getLogLevel("info"))
	assert.Equal(t, zapcore.WarnLevel, getLogLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, getLogLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, getLogLevel("unknown"))
}

func TestFieldHelpers(t *testing.T) {
	assert.Equal(t, "user_id", UserID(1).Key)
	assert.Equal(t, int64(1), UserID(1).Integer)
	assert.Equal(t, "listing_id", ListingID(2).Key)
	assert.Equal(t, "firm_id", FirmID("mock-firm-id").Key)
	assert.Equal(t, "mock-firm-id", FirmID("mock-firm-id").String)
	assert.Equal(t, "request_id", RequestID("abc").Key)
	assert.Equal(t, "order_no", OrderNo("ORD1").Key)
}

func TestWithAndNamed(t *testing.T) {
	require.NoError(t, Init(&config.LoggerConfig{Level: "info", Format: "json", Output: "stdout"}))

	child := With(Module("order"))
	require.NotNil(t, child)

	named := Named("statistics")
	require.NotNil(t, named)
	named.Info("named logger works")
}
