package configs

import (
	"github.com/spf13/viper"
)

// AppConfig 应用配置
type AppConfig struct {
	Name    string `mapstructure:"name" json:"name" yaml:"name" toml:"name"`
	Debug   bool   `mapstructure:"debug" json:"debug" yaml:"debug" toml:"debug"`
	Verbose bool   `mapstructure:"verbose" json:"verbose" yaml:"verbose" toml:"verbose"`
	// 安静模式，禁止所有日志输出
	Quiet bool `mapstructure:"quiet" json:"quiet" yaml:"quiet" toml:"quiet"`
	// 配置文件变化时重新加载日志级别
	WatchConfig bool `mapstructure:"watch_config" json:"watch_config" yaml:"watch_config" toml:"watch_config"`
}

func setAppConfigDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "greeter")
	v.SetDefault("app.debug", false)
	v.SetDefault("app.verbose", false)
	v.SetDefault("app.quiet", false)
	v.SetDefault("app.watch_config", false)
}
