// Package poollog provides the daemon's structured logger. The teacher
// only ever called fmt.Println at its startup call sites; logrus is
// adopted here (as other_examples in the retrieved pack use it for the
// same "package-level *log.Logger field" shape) so pool-lifecycle events
// carry structured fields instead of free text.
package poollog

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a text-formatted logger writing to stderr at the given
// level name ("debug", "info", "warn", "error"); an unrecognized level
// falls back to info.
func New(level string) *logrus.Logger {
	l := logrus.New()
	l.Out = os.Stderr
	l.Formatter = &logrus.TextFormatter{FullTimestamp: true}

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	l.Level = parsed
	return l
}
