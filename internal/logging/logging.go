package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// SetupLogging returns the JSON logger used for request logs and applies the
// same format and level to the package-level logrus logger.
func SetupLogging(level logrus.Level) *logrus.Logger {
	formatter := &logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyLevel: "loglevel",
		},
	}

	logrus.SetFormatter(formatter)
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(level)

	return &logrus.Logger{
		Formatter: formatter,
		Out:       os.Stdout,
		Hooks:     make(logrus.LevelHooks),
		Level:     level,
	}
}
