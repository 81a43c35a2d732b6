package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func newTestLogger(opts Options) (*logrus.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	opts.Out = &buf
	opts.NoColor = true
	return New(opts), &buf
}

func TestInfoPrefix(t *testing.T) {
	log, buf := newTestLogger(Options{})

	log.Info("*** GENERATING CLA-BOT CONFIG ***")

	if got, want := buf.String(), "# *** GENERATING CLA-BOT CONFIG ***\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestCommandPrefix(t *testing.T) {
	log, buf := newTestLogger(Options{})

	Command(log, "cla-tool %s", "gen-conf")

	if got, want := buf.String(), "$ cla-tool gen-conf\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestFieldsAreSorted(t *testing.T) {
	log, buf := newTestLogger(Options{})

	log.WithFields(logrus.Fields{"path": "x.json", "id": "octocat"}).Info("wrote")

	if got, want := buf.String(), "# wrote id=octocat path=x.json\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestWarning(t *testing.T) {
	log, buf := newTestLogger(Options{})

	log.Warn("duplicate")

	if got, want := buf.String(), "# warning: duplicate\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestDebugDisabled(t *testing.T) {
	log, buf := newTestLogger(Options{})

	log.Debug("this should not appear")
	DebugJSON(log, "data", map[string]int{"n": 1})

	if buf.Len() != 0 {
		t.Errorf("Debug output should be empty when disabled, got: %s", buf.String())
	}
}

func TestDebugOutput(t *testing.T) {
	log, buf := newTestLogger(Options{Debug: true})

	log.Debugf("test message %s", "arg")
	DebugJSON(log, "testData", map[string]interface{}{"foo": "bar"})

	output := buf.String()
	if !strings.HasPrefix(output, "[DEBUG] ") {
		t.Errorf("Output should start with [DEBUG], got: %s", output)
	}
	if !strings.Contains(output, "test message arg") {
		t.Errorf("Output should contain message, got: %s", output)
	}
	if !strings.Contains(output, "testData:") || !strings.Contains(output, `"foo": "bar"`) {
		t.Errorf("Output should contain JSON data, got: %s", output)
	}
}

func TestQuiet(t *testing.T) {
	log, buf := newTestLogger(Options{Quiet: true})

	log.Info("hidden")
	log.Warn("shown")

	if got, want := buf.String(), "# warning: shown\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}
