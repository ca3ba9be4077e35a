package configs

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

// LogConfig 日志配置
type LogConfig struct {
	// 日志级别: trace, debug, info, warn, error, fatal, panic
	Level string `mapstructure:"level" json:"level" yaml:"level" toml:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error,enum=fatal,enum=panic"`
	// 是否使用 JSON 格式输出
	JSON bool `mapstructure:"json" json:"json" yaml:"json" toml:"json"`
	// 输出模式: console, file, both
	Mode string `mapstructure:"mode" json:"mode" yaml:"mode" toml:"mode" jsonschema:"enum=console,enum=file,enum=both"`
	// 文件路径（当 mode 为 file 或 both 时使用）
	FilePath string `mapstructure:"file_path" json:"file_path" yaml:"file_path" toml:"file_path"`
	// 日志文件最大大小（MB）
	MaxSize int `mapstructure:"max_size" json:"max_size" yaml:"max_size" toml:"max_size"`
	// 保留的备份文件数量
	MaxBackups int `mapstructure:"max_backups" json:"max_backups" yaml:"max_backups" toml:"max_backups"`
	// 文件保留天数
	MaxAge int `mapstructure:"max_age" json:"max_age" yaml:"max_age" toml:"max_age"`
}

var (
	logLevels = []string{"trace", "debug", "info", "warn", "warning", "error", "fatal", "panic"}
	logModes  = []string{"console", "file", "both"}
)

func setLogConfigDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.mode", "console")
	v.SetDefault("log.file_path", ".greeter/greeter.log")
	v.SetDefault("log.max_size", 100)  // MB
	v.SetDefault("log.max_backups", 3) // 保留的备份文件数量
	v.SetDefault("log.max_age", 28)    // 文件保留天数
}

func (c LogConfig) validate() error {
	if !slices.Contains(logLevels, strings.ToLower(c.Level)) {
		return fmt.Errorf("invalid log.level %q, expected one of: %s", c.Level, strings.Join(logLevels, ", "))
	}
	if !slices.Contains(logModes, strings.ToLower(c.Mode)) {
		return fmt.Errorf("invalid log.mode %q, expected one of: %s", c.Mode, strings.Join(logModes, ", "))
	}
	if strings.ToLower(c.Mode) != "console" && c.FilePath == "" {
		return fmt.Errorf("log.file_path is required when log.mode is %q", c.Mode)
	}
	return nil
}
