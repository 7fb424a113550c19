package logging

import (
	"github.com/sirupsen/logrus"
)

// New builds the process logger. Production gets structured JSON at info
// level; anything else gets human-readable text with debug enabled.
func New(env string) *logrus.Logger {
	l := logrus.New()

	if env == "production" {
		l.SetFormatter(&logrus.JSONFormatter{})
		l.SetLevel(logrus.InfoLevel)
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		l.SetLevel(logrus.DebugLevel)
	}

	return l
}
