package utils

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logLevelDebugStringConstant          = "debug"
	logLevelInfoStringConstant           = "info"
	logLevelWarnStringConstant           = "warn"
	logLevelErrorStringConstant          = "error"
	logFormatStructuredStringConstant    = "structured"
	logFormatConsoleStringConstant       = "console"
	jsonZapEncodingStringConstant        = "json"
	consoleZapEncodingStringConstant     = "console"
	unsupportedLogLevelTemplateConstant  = "unsupported log level: %s"
	unsupportedLogFormatTemplateConstant = "unsupported log format: %s"
)

// LogLevel enumerates supported logging granularities.
type LogLevel string

// Exported log level constants for reuse across packages.
const (
	LogLevelDebug LogLevel = LogLevel(logLevelDebugStringConstant)
	LogLevelInfo  LogLevel = LogLevel(logLevelInfoStringConstant)
	LogLevelWarn  LogLevel = LogLevel(logLevelWarnStringConstant)
	LogLevelError LogLevel = LogLevel(logLevelErrorStringConstant)
)

// LogFormat enumerates supported logger output encodings.
type LogFormat string

// Exported log format constants for reuse across packages.
const (
	LogFormatStructured LogFormat = LogFormat(logFormatStructuredStringConstant)
	LogFormatConsole    LogFormat = LogFormat(logFormatConsoleStringConstant)
)

// FileSinkConfiguration describes an optional rotating log file written
// alongside standard error. An empty FilePath disables the sink; non-positive
// limits fall back to the rotation library defaults.
type FileSinkConfiguration struct {
	FilePath         string
	MaxSizeMegabytes int
	MaxBackups       int
	MaxAgeDays       int
}

// Enabled reports whether a log file path is configured.
func (configuration FileSinkConfiguration) Enabled() bool {
	return len(strings.TrimSpace(configuration.FilePath)) > 0
}

// LoggerFactory builds zap.Logger instances with consistent configuration.
type LoggerFactory struct{}

var logLevelMapping = map[LogLevel]zapcore.Level{
	LogLevelDebug: zapcore.DebugLevel,
	LogLevelInfo:  zapcore.InfoLevel,
	LogLevelWarn:  zapcore.WarnLevel,
	LogLevelError: zapcore.ErrorLevel,
}

var logFormatEncodingMapping = map[LogFormat]string{
	LogFormatStructured: jsonZapEncodingStringConstant,
	LogFormatConsole:    consoleZapEncodingStringConstant,
}

// NewLoggerFactory constructs a new logger factory.
func NewLoggerFactory() *LoggerFactory {
	return &LoggerFactory{}
}

// CreateLogger produces a zap.Logger honoring the requested log level and format.
func (factory *LoggerFactory) CreateLogger(requestedLogLevel LogLevel, requestedLogFormat LogFormat) (*zap.Logger, error) {
	return factory.CreateLoggerWithFileSink(requestedLogLevel, requestedLogFormat, FileSinkConfiguration{})
}

// CreateLoggerWithFileSink produces a zap.Logger that also writes to a rotating
// log file when the sink is enabled. The file always receives JSON entries.
func (factory *LoggerFactory) CreateLoggerWithFileSink(requestedLogLevel LogLevel, requestedLogFormat LogFormat, fileSink FileSinkConfiguration) (*zap.Logger, error) {
	zapLogLevel, levelExists := logLevelMapping[requestedLogLevel]
	if !levelExists {
		return nil, fmt.Errorf(unsupportedLogLevelTemplateConstant, requestedLogLevel)
	}

	encoding, formatExists := logFormatEncodingMapping[requestedLogFormat]
	if !formatExists {
		return nil, fmt.Errorf(unsupportedLogFormatTemplateConstant, requestedLogFormat)
	}

	configuration := zap.NewProductionConfig()
	configuration.Level = zap.NewAtomicLevelAt(zapLogLevel)
	configuration.Encoding = encoding

	buildOptions := []zap.Option{}
	if fileSink.Enabled() {
		fileCore := zapcore.NewCore(
			zapcore.NewJSONEncoder(configuration.EncoderConfig),
			zapcore.AddSync(&lumberjack.Logger{
				Filename:   fileSink.FilePath,
				MaxSize:    fileSink.MaxSizeMegabytes,
				MaxBackups: fileSink.MaxBackups,
				MaxAge:     fileSink.MaxAgeDays,
			}),
			configuration.Level,
		)
		buildOptions = append(buildOptions, zap.WrapCore(func(standardErrorCore zapcore.Core) zapcore.Core {
			return zapcore.NewTee(standardErrorCore, fileCore)
		}))
	}

	logger, buildError := configuration.Build(buildOptions...)
	if buildError != nil {
		return nil, buildError
	}

	return logger, nil
}
