package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(NewLogger("test", "warn", &buf))
	defer SetLogger(nil)

	Debugf("hidden %d", 1)
	Infof("hidden %d", 2)
	Warnf("resolution failed for '%s'", "a:b:1")
	Errorf("sync failed")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("messages below warn leaked: %s", out)
	}
	if !strings.Contains(out, "resolution failed for 'a:b:1'") || !strings.Contains(out, "sync failed") {
		t.Errorf("expected warn and error output, got: %s", out)
	}
}

func TestGetLogLevelFromString(t *testing.T) {
	if GetLogLevelFromString("DEBUG") != hclog.Debug {
		t.Error("level parsing should be case-insensitive")
	}
	if GetLogLevelFromString("bogus") != hclog.Warn {
		t.Error("unknown level should default to warn")
	}
}

func TestNoopBeforeInit(t *testing.T) {
	SetLogger(nil)
	Infof("no logger, no panic")
	if Named("syncer") == nil {
		t.Fatal("Named should return a null logger before init")
	}
}
