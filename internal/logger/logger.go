// 包 logger：统一初始化与获取日志器；通过环境变量控制日志级别与输出格式
// 约束：标准输出专用于状态行，日志一律写标准错误。
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

var defaultLogger *slog.Logger

// Setup：按 LOG_LEVEL / LOG_FORMAT 初始化默认日志器
// 约束：默认级别为 warn，菜单栏每次刷新不应产生噪声。
func Setup() *slog.Logger {
	color := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	defaultLogger = New(colorable.NewColorable(os.Stderr), os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"), color)
	slog.SetDefault(defaultLogger)
	return defaultLogger
}

// New 构建日志器：format 为 json 时输出结构化 JSON，否则使用 tint 文本格式
func New(w io.Writer, level, format string, color bool) *slog.Logger {
	lvl := ParseLevel(level)
	var h slog.Handler
	if strings.ToLower(format) == "json" {
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	} else {
		h = tint.NewHandler(w, &tint.Options{
			Level:      lvl,
			TimeFormat: "15:04:05.000",
			NoColor:    !color,
		})
	}
	return slog.New(h)
}

func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// L：获取默认日志器；未初始化时回退到 Setup
func L() *slog.Logger {
	if defaultLogger == nil {
		return Setup()
	}
	return defaultLogger
}

// Use 替换默认日志器，供测试捕获输出
func Use(l *slog.Logger) {
	defaultLogger = l
}
