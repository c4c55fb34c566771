package log

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLog_FormatsFields(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(func() { defaultLogger = nil })

	Info(CatStore, "Opened store", "path", "skinList.dat", "records", 2)

	out := buf.String()
	require.Contains(t, out, "[INFO] [store] Opened store path=skinList.dat records=2")
	require.True(t, bytes.HasSuffix(buf.Bytes(), []byte("\n")))
}

func TestLog_OddFieldCount(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(func() { defaultLogger = nil })

	Warn(CatCmd, "odd", "orphan")
	require.Contains(t, buf.String(), "orphan=<missing>")
}

func TestLog_ErrorErr(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(func() { defaultLogger = nil })

	ErrorErr(CatStore, "failed", errors.New("boom"))
	ErrorErr(CatStore, "failed", nil)
	require.Contains(t, buf.String(), "error=boom")
	require.Contains(t, buf.String(), "error=<nil>")
}

func TestLog_MinLevelAndDisable(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(func() { defaultLogger = nil })

	SetMinLevel(LevelWarn)
	Debug(CatStore, "hidden")
	Info(CatStore, "hidden")
	Error(CatStore, "shown")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "shown")

	buf.Reset()
	defaultLogger.enabled = false
	Error(CatStore, "silenced")
	require.Empty(t, buf.String())
}

func TestLog_NoLoggerIsNoop(t *testing.T) {
	defaultLogger = nil
	require.NotPanics(t, func() {
		Info(CatStore, "nothing")
		SetMinLevel(LevelError)
	})
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"":        LevelDebug,
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		"warning": LevelWarn,
		"error":   LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	_, err := ParseLevel("verbose")
	require.Error(t, err)
}
