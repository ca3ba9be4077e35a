// Package configs 提供应用程序配置管理功能
//
// 配置只覆盖日志和运行模式，服务端口与响应内容是固定的，不从配置读取。
package configs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix 环境变量前缀，例如 GREETER_LOG_LEVEL=debug
const EnvPrefix = "GREETER"

// Config 应用配置结构
type Config struct {
	Version string    `mapstructure:"version" json:"version" yaml:"version" toml:"version"`
	Log     LogConfig `mapstructure:"log" json:"log" yaml:"log" toml:"log"`
	App     AppConfig `mapstructure:"app" json:"app" yaml:"app" toml:"app"`
}

// setDefaults 设置默认配置值
func setDefaults(v *viper.Viper) {
	v.SetDefault("version", "1.0")
	setLogConfigDefaults(v)
	setAppConfigDefaults(v)
}

// New 返回一个只包含默认值和环境变量的 viper 实例
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// searchPaths 配置文件搜索路径
func searchPaths() []string {
	paths := []string{
		".",
		"./configs",
		"$HOME",
		"$HOME/.config",
		"$HOME/.config/greeter",
	}
	if runtime.GOOS == "windows" {
		paths = append(paths, "$USERPROFILE", "$APPDATA/greeter")
	} else {
		paths = append(paths, "/etc/greeter")
	}
	return paths
}

// findConfigFile 按搜索路径查找第一个存在的配置文件，找不到返回空字符串
func findConfigFile() string {
	configNames := []string{".greeter", "greeter"}
	extensions := []string{"yaml", "yml", "json", "toml"}

	for _, path := range searchPaths() {
		for _, name := range configNames {
			for _, ext := range extensions {
				configFile := os.ExpandEnv(filepath.Join(path, name+"."+ext))
				if info, err := os.Stat(configFile); err == nil && !info.IsDir() {
					return configFile
				}
			}
		}
	}
	return ""
}

// LoadConfig 加载配置文件
//
// configPath 为空时按搜索路径查找，找不到配置文件不算错误；
// 显式指定的文件不存在或无法解析时返回错误。
func LoadConfig(configPath string) (*Config, *viper.Viper, error) {
	v := New()

	if configPath == "" {
		configPath = findConfigFile()
	}
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, nil, fmt.Errorf("read config file %s: %w", configPath, err)
			}
		}
	}

	config, err := Decode(v)
	if err != nil {
		return nil, nil, err
	}
	return config, v, nil
}

// Decode 将 viper 中的配置解析为 Config 并校验
func Decode(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate 检查配置值是否合法
func (c *Config) Validate() error {
	var errs []error
	if err := c.Log.validate(); err != nil {
		errs = append(errs, err)
	}
	if c.App.Quiet && (c.App.Debug || c.App.Verbose) {
		errs = append(errs, errors.New("app.quiet cannot be combined with app.debug or app.verbose"))
	}
	return errors.Join(errs...)
}
