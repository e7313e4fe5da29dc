package zlogger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var defaultLogLevel = zap.NewAtomicLevelAt(zapcore.DebugLevel)
var Logger *zap.SugaredLogger

func init() {
	Logger = zap.New(newCore(zapcore.AddSync(os.Stderr)), zap.AddCaller()).Named("s3mgrt").Sugar()
}

func newCore(ws zapcore.WriteSyncer) zapcore.Core {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), ws, defaultLogLevel)
}

// SetLogFile sends log output to a rotating logFile. When verbose is set the
// console keeps receiving the same entries.
func SetLogFile(logFile string, verbose bool) {
	rotator := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100, // megabytes
		MaxBackups: 5,
		Compress:   true,
	}

	core := newCore(zapcore.AddSync(rotator))
	if verbose {
		core = zapcore.NewTee(core, newCore(zapcore.AddSync(os.Stderr)))
	}
	Logger = zap.New(core, zap.AddCaller()).Named("s3mgrt").Sugar()
}

// SetLevel changes the minimum level of every logger built by this package.
func SetLevel(level string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return err
	}
	defaultLogLevel.SetLevel(lvl)
	return nil
}

func Sync() {
	_ = Logger.Sync()
}
