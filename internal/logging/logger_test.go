package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"WARNING": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewBuildsBothFormats(t *testing.T) {
	for _, f := range []string{"json", "text"} {
		l, err := New("debug", f)
		if err != nil {
			t.Fatalf("New(%s): %v", f, err)
		}
		if !l.Core().Enabled(zapcore.DebugLevel) {
			t.Fatalf("%s: debug should be enabled", f)
		}
		_ = l.Sync()
	}
}
