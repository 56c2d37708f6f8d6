package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the shared application logger.
var Log = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// SetLevel parses level and applies it to Log. Unknown levels leave the logger at info.
func SetLevel(level string) {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		Log.WithFields(logrus.Fields{
			"level": level,
			"error": err.Error(),
		}).Warn("Unknown log level, using info")
		parsed = logrus.InfoLevel
	}
	Log.SetLevel(parsed)
}
