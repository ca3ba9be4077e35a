package configs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// DefaultConfigPath 返回给定格式的默认配置文件名
func DefaultConfigPath(format OutputFormat) (string, error) {
	switch format {
	case FormatYAML, FormatJSON, FormatTOML:
		return ".greeter." + string(format), nil
	default:
		return "", fmt.Errorf("format %s is not supported for config files", format)
	}
}

// CreateDefaultConfig 将默认配置写入 path，文件已存在时返回错误
func CreateDefaultConfig(path string, format OutputFormat) error {
	if format == FormatText {
		return fmt.Errorf("format %s is not supported for config files", format)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	// 只写默认值，不带入当前进程的环境变量
	v := viper.New()
	setDefaults(v)
	v.SetConfigType(string(format))

	if err := v.SafeWriteConfigAs(path); err != nil {
		var exists viper.ConfigFileAlreadyExistsError
		if errors.As(err, &exists) {
			return fmt.Errorf("config file %s already exists", path)
		}
		return fmt.Errorf("write config file %s: %w", path, err)
	}
	return nil
}
