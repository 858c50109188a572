package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
)

// newLogger writes to stderr so stdout stays free for command output.
func newLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	return log
}
