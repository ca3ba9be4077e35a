// Package cmd provides the command-line interface of greeter
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/yeisme/greeter/pkg/configs"
	gctx "github.com/yeisme/greeter/pkg/context"
	"github.com/yeisme/greeter/pkg/server"
	log2 "github.com/yeisme/greeter/pkg/utils/log"
	"github.com/yeisme/greeter/pkg/utils/version"
)

var (
	greeterCtx *gctx.GreeterContext
	log        log2.Logger

	globalFlags = gctx.GlobalFlags{}
)

// rootCmd 不带子命令时直接启动服务
var rootCmd = &cobra.Command{
	Use:   "greeter",
	Short: "greeter serves a static greeting on port 3000",
	Long: `greeter is a single-endpoint HTTP server used as a smoke-test deployment artifact.

GET / on port 3000 returns "` + server.Greeting + `".
The port and response are fixed; configuration only affects logging.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		ctx, err := gctx.InitGreeterContext(cmd.Context(), globalFlags)
		if err != nil {
			return err
		}
		greeterCtx = ctx
		log = ctx.Logger

		log.Debug().Msgf("Execute Command: %s %s", "greeter", strings.Join(os.Args[1:], " "))
		return nil
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		if globalFlags.VersionEnable {
			fmt.Fprintln(cmd.OutOrStdout(), version.GetShortVersionString())
			return nil
		}
		return serve(cmd, server.DefaultPort)
	},
}

// serve 启动问候服务，只有监听失败或 ctx 被取消时返回
func serve(cmd *cobra.Command, port int) error {
	if greeterCtx.Config.App.WatchConfig {
		if !configs.WatchConfig(greeterCtx.Viper, onConfigChange(greeterCtx.Flags)) {
			log.Warn().Msg("app.watch_config is set but no config file was loaded")
		}
	}

	srv := server.New(server.Options{
		Port:   port,
		Stdout: cmd.OutOrStdout(),
		Logger: log,
	})
	return srv.Start(cmd.Context())
}

// onConfigChange 配置文件变化后重新设置日志级别，命令行标志仍然优先
func onConfigChange(flags gctx.GlobalFlags) configs.ChangeFunc {
	return func(e fsnotify.Event, config *configs.Config, err error) {
		if err == nil {
			gctx.ApplyFlags(config, flags)
			err = config.Validate()
		}
		if err != nil {
			log.Error().Err(err).Str("file", e.Name).Msg("ignoring invalid config change")
			return
		}
		log2.SetLevel(&config.Log, &config.App)
		log.Info().Str("file", e.Name).Str("level", config.Log.Level).Msg("config reloaded")
	}
}

// Execute adds all child commands to the root command and runs it.
// Any error is logged and the process exits with status 1.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log2.Fatal().Err(err).Msg("greeter failed")
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&globalFlags.ConfigPath, "config", "c", "", "config file (logging settings only)")
	rootCmd.PersistentFlags().BoolVar(&globalFlags.Debug, "debug", false, "enable debug logging, including one line per request")
	rootCmd.PersistentFlags().BoolVarP(&globalFlags.Verbose, "verbose", "V", false, "enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&globalFlags.Quiet, "quiet", false, "suppress all log output")
	rootCmd.Flags().BoolVarP(&globalFlags.VersionEnable, "version", "v", false, "show version information")
}
