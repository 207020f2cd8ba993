package logger

import (
	"os"

	"github.com/natefinch/lumberjack"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// 未初始化时丢弃日志，避免测试中出现空指针
var logger = zap.NewNop().Sugar()

func InitLogger() {
	rotate := rotateOptions{
		path:       viper.GetString("logger.path"),
		maxSize:    viper.GetInt("logger.max_size"),
		maxBackups: viper.GetInt("logger.max_backups"),
		compress:   viper.GetBool("logger.compress"),
		console:    viper.GetBool("logger.console"),
	}

	var (
		core    zapcore.Core
		options []zap.Option
	)
	if viper.GetBool("server.develop_mode") {
		core = zapcore.NewCore(newEncoder(zap.NewDevelopmentEncoderConfig()), rotate.writer(), zap.DebugLevel)
		options = append(options, zap.AddCaller(), zap.AddCallerSkip(1))
	} else {
		level := zapcore.Level(viper.GetInt("logger.level"))
		core = zapcore.NewCore(newEncoder(zap.NewProductionEncoderConfig()), rotate.writer(), level)
	}

	logger = zap.New(core, options...).Sugar()

	Infof("Initializing logger successfully")
}

func Sync() {
	_ = logger.Sync()
}

func Debugf(template string, args ...any) {
	logger.Debugf(template, args...)
}

func Infof(template string, args ...any) {
	logger.Infof(template, args...)
}

func Warnf(template string, args ...any) {
	logger.Warnf(template, args...)
}

func Errorf(template string, args ...any) {
	logger.Errorf(template, args...)
}

func ErrorWithStack(err error) {
	logger.Errorf("%T:\nstack trace:\n%+v", errors.Cause(err), err)
}

func newEncoder(config zapcore.EncoderConfig) zapcore.Encoder {
	config.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncodeLevel = zapcore.CapitalLevelEncoder

	return zapcore.NewConsoleEncoder(config)
}

type rotateOptions struct {
	path       string
	maxSize    int
	maxBackups int
	compress   bool
	console    bool
}

func (o rotateOptions) writer() zapcore.WriteSyncer {
	file := &lumberjack.Logger{ // 按大小切分
		Filename:   o.path,
		MaxSize:    o.maxSize,
		MaxBackups: o.maxBackups,
		Compress:   o.compress,
	}
	out := []zapcore.WriteSyncer{zapcore.AddSync(file)}
	if o.console {
		out = append(out, zapcore.AddSync(os.Stdout))
	}
	return zapcore.NewMultiWriteSyncer(out...)
}
