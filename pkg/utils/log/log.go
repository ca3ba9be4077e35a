// Package log 提供全局日志记录器的初始化和获取功能
// 使用 zerolog 作为日志库，支持控制台、文件、两者三种输出模式，文件输出由 lumberjack 轮转
//
// 日志写到 stderr，stdout 只保留服务的启动信息。
package log

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	xterm "github.com/charmbracelet/x/term"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/yeisme/greeter/pkg/configs"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger 全局日志记录器类型
type Logger = *zerolog.Logger

var (
	globalLogger atomic.Pointer[zerolog.Logger]

	// consoleOut 控制台输出目标，测试中会替换
	consoleOut io.Writer = os.Stderr
)

// InitLogger 初始化日志记录器并设置为全局实例
func InitLogger(ctx context.Context, config *configs.LogConfig, appConfig *configs.AppConfig) Logger {
	if appConfig.Quiet {
		zerolog.SetGlobalLevel(zerolog.Disabled)
		logger := zerolog.New(io.Discard)
		setGlobal(&logger)
		return &logger
	}
	SetLevel(config, appConfig)

	var writers []io.Writer
	switch strings.ToLower(config.Mode) {
	case "file":
		writers = append(writers, createFileWriter(config))
	case "both":
		writers = append(writers, createConsoleWriter(config.JSON), createFileWriter(config))
	default:
		writers = append(writers, createConsoleWriter(config.JSON))
	}

	output := writers[0]
	if len(writers) > 1 {
		output = zerolog.MultiLevelWriter(writers...)
	}

	c := zerolog.New(output).With().Timestamp()
	if appConfig.Debug {
		c = c.Caller()
	}
	if appConfig.Debug || appConfig.Verbose {
		c = c.Str("app", appConfig.Name).Ctx(ctx)
	}
	logger := c.Logger()

	setGlobal(&logger)
	return &logger
}

// SetLevel 按 quiet > debug > verbose > log.level 的优先级设置全局日志级别
func SetLevel(config *configs.LogConfig, appConfig *configs.AppConfig) {
	switch {
	case appConfig.Quiet:
		zerolog.SetGlobalLevel(zerolog.Disabled)
	case appConfig.Debug:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case appConfig.Verbose:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	default:
		zerolog.SetGlobalLevel(parseLogLevel(config.Level))
	}
}

func setGlobal(logger Logger) {
	globalLogger.Store(logger)
	log.Logger = *logger
}

// createConsoleWriter 创建控制台输出写入器
func createConsoleWriter(useJSON bool) io.Writer {
	if useJSON {
		return consoleOut
	}
	return zerolog.ConsoleWriter{
		Out:        consoleOut,
		NoColor:    !isTerminal(consoleOut),
		TimeFormat: "2006-01-02 15:04:05",
	}
}

// isTerminal 判断输出是否为终端，重定向到文件或管道（如容器日志）时不输出颜色
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && xterm.IsTerminal(f.Fd())
}

// createFileWriter 创建文件输出写入器，目录无法创建时回退到控制台
func createFileWriter(config *configs.LogConfig) io.Writer {
	if err := os.MkdirAll(filepath.Dir(config.FilePath), 0755); err != nil {
		return consoleOut
	}
	return &lumberjack.Logger{
		Filename:   config.FilePath,
		MaxSize:    config.MaxSize,    // megabytes
		MaxBackups: config.MaxBackups, // files
		MaxAge:     config.MaxAge,     // days
		Compress:   true,
	}
}

// GetLogger 获取全局日志记录器，未初始化时使用默认配置
func GetLogger() Logger {
	if l := globalLogger.Load(); l != nil {
		return l
	}
	config, err := configs.Decode(configs.New())
	if err != nil {
		logger := zerolog.New(consoleOut).With().Timestamp().Logger()
		return &logger
	}
	return InitLogger(context.Background(), &config.Log, &config.App)
}

// parseLogLevel 解析日志级别，无法识别时使用 info
func parseLogLevel(level string) zerolog.Level {
	if strings.EqualFold(level, "warning") {
		return zerolog.WarnLevel
	}
	l, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || l == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return l
}

// Debug 创建一个 Debug 级别的日志事件
func Debug() *zerolog.Event {
	return GetLogger().Debug()
}

// Info 创建一个 Info 级别的日志事件
func Info() *zerolog.Event {
	return GetLogger().Info()
}

// Warn 创建一个 Warn 级别的日志事件
func Warn() *zerolog.Event {
	return GetLogger().Warn()
}

// Error 创建一个 Error 级别的日志事件
func Error() *zerolog.Event {
	return GetLogger().Error()
}

// Fatal 创建一个 Fatal 级别的日志事件，输出后进程以状态码 1 退出
func Fatal() *zerolog.Event {
	return GetLogger().Fatal()
}
