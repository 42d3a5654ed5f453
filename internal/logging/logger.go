package logging

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	once   sync.Once
	logger *logrus.Logger
)

// GetLogger returns the process-wide logger used by the thriftdb CLI.
func GetLogger() *logrus.Logger {
	// Singleton so the level can change once flags and config are loaded.
	once.Do(func() {
		logger = logrus.New()

		logger.Out = os.Stderr
		logger.SetLevel(logrus.WarnLevel)

		logger.SetFormatter(&logrus.TextFormatter{
			DisableColors: false,
			FullTimestamp: true,
			PadLevelText:  true,
		})
	})

	return logger
}

func SetLogLevel(level logrus.Level) {
	GetLogger().SetLevel(level)
}

func SetOutput(out io.Writer) {
	GetLogger().SetOutput(out)
}

// FieldLogger adapts a logrus logger to the map-of-fields logging interface
// accepted by the thriftdb client and its transport.
type FieldLogger struct {
	*logrus.Logger
}

func NewFieldLogger(logger *logrus.Logger) *FieldLogger {
	return &FieldLogger{
		Logger: logger,
	}
}

func (l *FieldLogger) Debug(msg string, fields map[string]interface{}) {
	l.WithFields(logrus.Fields(fields)).Debug(msg)
}

func (l *FieldLogger) Info(msg string, fields map[string]interface{}) {
	l.WithFields(logrus.Fields(fields)).Info(msg)
}

func (l *FieldLogger) Warn(msg string, fields map[string]interface{}) {
	l.WithFields(logrus.Fields(fields)).Warn(msg)
}

func (l *FieldLogger) Error(msg string, fields map[string]interface{}) {
	l.WithFields(logrus.Fields(fields)).Error(msg)
}
