package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

var logger = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// InitLogger sets the level of the shared logger.
// Packages grab the logger in init(), so this only adjusts it in place.
func InitLogger(level logrus.Level) {
	logger.SetLevel(level)
}

// GetLogger returns the process-wide logger.
func GetLogger() *logrus.Logger {
	return logger
}
