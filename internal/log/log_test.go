package log

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLoggerLevels(t *testing.T) {
	type logTest struct {
		with       []interface{}
		level      int
		allowedLvl int
		msg        string
		out        []string
	}

	w := func(kv ...interface{}) []interface{} {
		return kv
	}
	o := func(outs ...string) []string {
		return outs
	}
	var tests = []logTest{
		{nil, InfoLevel, InfoLevel, "hello", o("hello")},
		{nil, DebugLevel, InfoLevel, "hello", nil},
		{nil, ErrorLevel, DebugLevel, "hello", o("hello")},
		{nil, WarnLevel, ErrorLevel, "hello", nil},
		{nil, WarnLevel, DebugLevel, "hello", o("hello")},
		{w("words", "14"), WarnLevel, InfoLevel, "hello", o("words", "14", "hello")},
	}

	for i, test := range tests {
		t.Logf(" -- test %d -- \n", i)

		var b bytes.Buffer
		writer := bufio.NewWriter(&b)
		syncer := zapcore.AddSync(writer)

		var logging func(...interface{})
		logger := New(syncer, test.allowedLvl, true)

		if test.with != nil {
			logger = logger.With(test.with...)
		}

		switch test.level {
		case InfoLevel:
			logging = logger.Info
		case DebugLevel:
			logging = logger.Debug
		case WarnLevel:
			logging = logger.Warn
		case ErrorLevel:
			logging = logger.Error
		default:
			t.FailNow()
		}

		logging("msg=", test.msg)
		writer.Flush()

		if test.out != nil {
			requireContains(t, &b, test.out, true)
		} else {
			requireContains(t, &b, nil, false)
		}
	}
}

func TestJSONFields(t *testing.T) {
	var b bytes.Buffer
	logger := New(zapcore.AddSync(&b), InfoLevel, true).Named("bench")
	logger.Infow("hashed", "messages", 3)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(b.Bytes(), &entry))
	require.Equal(t, "INFO", entry["level"])
	require.Equal(t, "bench", entry["logger"])
	require.Equal(t, "hashed", entry["msg"])
	require.EqualValues(t, 3, entry["messages"])
	require.Contains(t, entry, "ts")
}

func TestConsoleFormat(t *testing.T) {
	var b bytes.Buffer
	logger := New(zapcore.AddSync(&b), DebugLevel, false)
	logger.Debugw("permuted", "rounds", 30)

	out := b.String()
	require.Contains(t, out, "DEBUG")
	require.Contains(t, out, "permuted")
	require.Contains(t, out, `{"rounds": 30}`)
}

func TestParseLevel(t *testing.T) {
	for name, want := range map[string]int{
		"debug": DebugLevel,
		"INFO":  InfoLevel,
		"warn":  WarnLevel,
		"error": ErrorLevel,
	} {
		got, err := ParseLevel(name)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	_, err := ParseLevel("loud")
	require.Error(t, err)
	_, err = ParseLevel("fatal")
	require.Error(t, err)
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Errorw("dropped")
	require.NoError(t, l.Sync())
}

func requireContains(t *testing.T, r io.Reader, outs []string, present bool) {
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	if !present {
		require.Equal(t, string(out), "")
		return
	}
	for _, o := range outs {
		require.Contains(t, string(out), o)
	}
	require.NotContains(t, string(out), "Ignored key without a value.")
}
