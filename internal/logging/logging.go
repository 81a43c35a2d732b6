// Package logging configures the logrus logger used by every command.
//
// Informational lines are written as "# message", echoed commands as
// "$ message", and debug lines carry a "[DEBUG]" tag and a timestamp.
package logging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

// CommandField marks an entry as an echoed command.
const CommandField = "command"

// Options configures New.
type Options struct {
	// Out receives log output. Defaults to os.Stderr.
	Out io.Writer
	// Debug enables debug level output.
	Debug bool
	// Quiet suppresses everything below warning level.
	Quiet bool
	// NoColor disables colored prefixes.
	NoColor bool
}

// New returns a logger writing "#"-prefixed lines.
func New(opts Options) *logrus.Logger {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(NewFormatter(opts.NoColor))

	switch {
	case opts.Debug:
		log.SetLevel(logrus.DebugLevel)
	case opts.Quiet:
		log.SetLevel(logrus.WarnLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}
	return log
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// Command logs an echoed command line.
func Command(log logrus.FieldLogger, format string, args ...interface{}) {
	log.WithField(CommandField, true).Infof(format, args...)
}

// DebugJSON logs v as indented JSON at debug level.
func DebugJSON(log *logrus.Logger, key string, v interface{}) {
	if !log.IsLevelEnabled(logrus.DebugLevel) {
		return
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Debugf("failed to marshal %s to JSON: %v", key, err)
		return
	}
	log.Debugf("%s:\n%s", key, data)
}

// Formatter renders entries in the tool's line format.
type Formatter struct {
	prefix  *color.Color
	debug   *color.Color
	warning *color.Color
	errorC  *color.Color
	faint   *color.Color
}

// NewFormatter creates a Formatter. Colors follow terminal detection unless noColor is set.
func NewFormatter(noColor bool) *Formatter {
	f := &Formatter{
		prefix:  color.New(color.FgBlue),
		debug:   color.New(color.FgCyan),
		warning: color.New(color.FgYellow),
		errorC:  color.New(color.FgRed, color.Bold),
		faint:   color.New(color.FgHiBlack),
	}
	if noColor {
		for _, c := range []*color.Color{f.prefix, f.debug, f.warning, f.errorC, f.faint} {
			c.DisableColor()
		}
	}
	return f
}

// Format implements logrus.Formatter.
func (f *Formatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer

	switch entry.Level {
	case logrus.DebugLevel, logrus.TraceLevel:
		b.WriteString(f.debug.Sprint("[DEBUG]"))
		b.WriteByte(' ')
		b.WriteString(f.faint.Sprint(entry.Time.Format("15:04:05.000")))
		b.WriteByte(' ')
	case logrus.InfoLevel:
		if cmd, _ := entry.Data[CommandField].(bool); cmd {
			b.WriteString(f.prefix.Sprint("$"))
		} else {
			b.WriteString(f.prefix.Sprint("#"))
		}
		b.WriteByte(' ')
	case logrus.WarnLevel:
		b.WriteString(f.warning.Sprint("# warning:"))
		b.WriteByte(' ')
	default:
		b.WriteString(f.errorC.Sprint("error:"))
		b.WriteByte(' ')
	}

	b.WriteString(entry.Message)
	writeFields(&b, entry.Data)
	b.WriteByte('\n')
	return b.Bytes(), nil
}

func writeFields(b *bytes.Buffer, data logrus.Fields) {
	keys := make([]string, 0, len(data))
	for k := range data {
		if k == CommandField {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(b, " %s=%v", k, data[k])
	}
}
