package loggers

import (
	"fmt"
	"log"
	"os"
)

// MultiLogger fans each line out to every configured sink. The relay runs as
// a lambda, where stdout lands in the function's CloudWatch log stream, so
// stdout is the only sink wired by default; LOG_TO_STDOUT can silence it.
type MultiLogger struct {
	sinks []*log.Logger
}

func InitializeMultiLogger(logToStdout bool) (*MultiLogger, error) {
	sinks := make([]*log.Logger, 0)
	if logToStdout {
		sinks = append(sinks, log.New(os.Stdout, "", log.LstdFlags))
	}
	return &MultiLogger{sinks: sinks}, nil
}

func (ml *MultiLogger) Info(msg string, args ...any) {
	ml.doLog("info", msg, args...)
}

func (ml *MultiLogger) Warn(msg string, args ...any) {
	ml.doLog("warn", msg, args...)
}

func (ml *MultiLogger) Debug(msg string, args ...any) {
	ml.doLog("debug", msg, args...)
}

func (ml *MultiLogger) Error(msg string, args ...any) {
	ml.doLog("error", msg, args...)
}

func (ml *MultiLogger) Fatal(msg string, args ...any) {
	ml.doLog("fatal", msg, args...)
}

func (ml *MultiLogger) doLog(level, msg string, args ...any) {
	line := fmt.Sprintf(msg, args...)
	for _, sink := range ml.sinks {
		sink.SetPrefix(level + ":")
		sink.Println(line)
	}
	if level == "fatal" {
		os.Exit(1)
	}
}
