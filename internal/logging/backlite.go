package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// TaskLogger adapts zap to the backlite.Logger interface.
type TaskLogger struct {
	logger *zap.Logger
}

func NewTaskLogger(logger *zap.Logger) *TaskLogger {
	return &TaskLogger{logger: logger.Named("tasks")}
}

func (l *TaskLogger) Info(message string, params ...any) {
	l.logger.Info(message, paramsToFields(params)...)
}

func (l *TaskLogger) Error(message string, params ...any) {
	l.logger.Error(message, paramsToFields(params)...)
}

// paramsToFields turns backlite's alternating key/value params into zap fields.
func paramsToFields(params []any) []zap.Field {
	fields := make([]zap.Field, 0, len(params)/2+1)
	for i := 0; i+1 < len(params); i += 2 {
		fields = append(fields, zap.Any(fmt.Sprint(params[i]), params[i+1]))
	}
	if len(params)%2 == 1 {
		fields = append(fields, zap.Any("extra", params[len(params)-1]))
	}
	return fields
}
