package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestSetupParsesLevel(t *testing.T) {
	defer Logger.SetLevel(logrus.InfoLevel)

	if err := Setup("debug"); err != nil {
		t.Fatalf("Setup(debug): %v", err)
	}
	if Logger.GetLevel() != logrus.DebugLevel {
		t.Errorf("level = %v, want debug", Logger.GetLevel())
	}
}

func TestSetupInvalidLevelFallsBackToInfo(t *testing.T) {
	defer Logger.SetLevel(logrus.InfoLevel)

	Logger.SetLevel(logrus.ErrorLevel)
	if err := Setup("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
	if Logger.GetLevel() != logrus.InfoLevel {
		t.Errorf("level = %v, want info", Logger.GetLevel())
	}
}

func TestWithFieldWritesKeyValue(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(logrus.StandardLogger().Out)

	WithField("kbju_code", "C001").Info("court created")

	out := buf.String()
	if !strings.Contains(out, "kbju_code=C001") || !strings.Contains(out, "court created") {
		t.Errorf("unexpected log line: %q", out)
	}
}

func TestLevelHelpers(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(logrus.StandardLogger().Out)
	defer Logger.SetLevel(logrus.InfoLevel)

	Logger.SetLevel(logrus.InfoLevel)
	Debugf("hidden %d", 1)
	Errorf("export job %s failed", "j1")
	Error("health:", "ping")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line written at info level: %q", out)
	}
	if !strings.Contains(out, "export job j1 failed") || !strings.Contains(out, "health: ping") {
		t.Errorf("unexpected output: %q", out)
	}

	buf.Reset()
	Logger.SetLevel(logrus.DebugLevel)
	Debugf("rows %d", 2)
	if !strings.Contains(buf.String(), "rows 2") {
		t.Errorf("debug line missing: %q", buf.String())
	}
}
