package logger

import (
	"os"
	"time"

	"github.com/MrPunder/spasibki-front/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type zapLogger struct {
	logZap *zap.SugaredLogger
	logger *zap.Logger // нужен для Sync()
}

func NewZapLogger(conf *config.Config) (*zapLogger, error) {
	logLevel, err := zap.ParseAtomicLevel(conf.Log.Level)
	if err != nil {
		return nil, err
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	encoder := zapcore.NewConsoleEncoder(encoderConfig)

	rotate := func(filename string) *lumberjack.Logger {
		return &lumberjack.Logger{
			Filename:   filename,
			MaxSize:    conf.Log.MaxSize,    // МБ
			MaxBackups: conf.Log.MaxBackups,
			MaxAge:     conf.Log.MaxAge, // дни
			Compress:   conf.Log.Compress,
		}
	}

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.AddSync(rotate(conf.Log.Path)), logLevel),
		zapcore.NewCore(encoder, zapcore.AddSync(rotate(conf.Log.ErrorPath)), zap.ErrorLevel),
	}

	if conf.Log.Stdout {
		colored := zap.NewDevelopmentEncoderConfig()
		colored.EncodeLevel = zapcore.CapitalColorLevelEncoder
		colored.EncodeCaller = zapcore.ShortCallerEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(colored), zapcore.Lock(os.Stdout), logLevel))
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1))

	return &zapLogger{
		logZap: logger.Sugar(),
		logger: logger,
	}, nil
}

// RequestLog makes request log
func (logger *zapLogger) RequestLog(requestID string, method string, path string) {
	logger.logZap.Infow("incoming request",
		"request_id", requestID,
		"method", method,
		"path", path,
	)
}

// ResponseLog makes response log
func (logger *zapLogger) ResponseLog(requestID string, status int, size int, duration time.Duration) {
	logger.logZap.Infow("send response",
		"request_id", requestID,
		"status", status,
		"size", size,
		"time", duration.String(),
	)
}

// Info logs message at info level
func (logger *zapLogger) Info(mes string) {
	logger.logZap.Info(mes)
}

func (logger *zapLogger) Infof(str string, arg ...any) {
	logger.logZap.Infof(str, arg...)
}

func (logger *zapLogger) Errorf(str string, arg ...any) {
	logger.logZap.Errorf(str, arg...)
}

// Error logs message at error level
func (logger *zapLogger) Error(mes string) {
	logger.logZap.Error(mes)
}

func (logger *zapLogger) Debug(mes string) {
	logger.logZap.Debug(mes)
}

func (logger *zapLogger) Debugf(str string, arg ...any) {
	logger.logZap.Debugf(str, arg...)
}

// Close сбрасывает буферизованные записи
func (logger *zapLogger) Close() error {
	return logger.logger.Sync()
}
