// Package context 汇总一次命令执行所需的上下文：配置、viper 实例和日志记录器
package context

import (
	"context"

	"github.com/spf13/viper"
	"github.com/yeisme/greeter/pkg/configs"
	"github.com/yeisme/greeter/pkg/utils/log"
)

// GlobalFlags 根命令的全局标志
type GlobalFlags struct {
	ConfigPath    string
	Debug         bool
	Verbose       bool
	Quiet         bool
	VersionEnable bool
}

// GreeterContext 命令执行上下文
type GreeterContext struct {
	context.Context
	Config *configs.Config // 应用配置
	Viper  *viper.Viper    // 配置来源
	Logger log.Logger      // 日志记录器
	Flags  GlobalFlags     // 命令行标志，配置重新加载后需要再次应用
}

// InitGreeterContext 加载配置并初始化日志，命令行标志优先于配置文件
func InitGreeterContext(ctx context.Context, flags GlobalFlags) (*GreeterContext, error) {
	config, v, err := configs.LoadConfig(flags.ConfigPath)
	if err != nil {
		return nil, err
	}
	ApplyFlags(config, flags)
	if err := config.Validate(); err != nil {
		return nil, err
	}

	logger := log.InitLogger(ctx, &config.Log, &config.App)

	return &GreeterContext{
		Context: ctx,
		Config:  config,
		Viper:   v,
		Logger:  logger,
		Flags:   flags,
	}, nil
}

// ApplyFlags 用命令行标志覆盖配置中的日志开关
func ApplyFlags(config *configs.Config, flags GlobalFlags) {
	if flags.Debug {
		config.App.Debug = true
	}
	if flags.Verbose {
		config.App.Verbose = true
	}
	if flags.Quiet {
		config.App.Quiet = true
	}
}
