package configs

import (
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// ChangeFunc 在配置文件变化后被调用，err 非空表示新配置无效
type ChangeFunc func(e fsnotify.Event, config *Config, err error)

// WatchConfig 监听 v 当前使用的配置文件，变化时重新解析并回调
//
// 没有加载配置文件时不做任何事并返回 false。
func WatchConfig(v *viper.Viper, fn ChangeFunc) bool {
	if v.ConfigFileUsed() == "" {
		return false
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		config, err := Decode(v)
		fn(e, config, err)
	})
	v.WatchConfig()
	return true
}
