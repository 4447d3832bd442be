package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New builds the application logger. Level falls back to info, format to
// plain text; "json" switches to the JSON formatter.
func New(level, format string) *logrus.Logger {
	l := logrus.New()

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	l.SetLevel(parsed)

	if format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	}
	l.SetOutput(os.Stdout)

	return l
}
