package logger

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/artifacts-oss/daylog/pkg/fileurl"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config 日志配置
type Config struct {
	// Level 日志级别 debug / info / warn / error
	Level string
	// File 日志文件路径, 为空时仅输出到控制台
	File string
	// Production 生产模式, 启用 JSON 编码与采样
	Production bool
}

// NewLogger 根据配置创建 zap 日志实例
func NewLogger(cfg Config) (*zap.Logger, error) {

	level := zapcore.InfoLevel
	if err := level.UnmarshalText([]byte(strings.ToLower(cfg.Level))); err != nil {
		level = zapcore.InfoLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeDuration = zapcore.StringDurationEncoder

	var cores []zapcore.Core

	if cfg.Production {
		consoleEncoder := zapcore.NewJSONEncoder(encoderConfig)
		cores = append(cores, zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stdout), level))
	} else {
		devEncoderConfig := encoderConfig
		devEncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		consoleEncoder := zapcore.NewConsoleEncoder(devEncoderConfig)
		cores = append(cores, zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stdout), level))
	}

	if cfg.File != "" {
		dir := filepath.Dir(cfg.File)
		if !fileurl.IsExist(dir) {
			if err := fileurl.CreatePath(dir, os.ModePerm); err != nil {
				return nil, err
			}
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		fileEncoder := zapcore.NewJSONEncoder(encoderConfig)
		cores = append(cores, zapcore.NewCore(fileEncoder, zapcore.Lock(zapcore.AddSync(f)), level))
	}

	core := zapcore.NewTee(cores...)
	if cfg.Production {
		// 生产模式下对高频日志采样, 避免刷盘风暴
		core = zapcore.NewSamplerWithOptions(core, time.Second, 100, 100)
	}

	options := []zap.Option{zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)}

	return zap.New(core, options...), nil
}
