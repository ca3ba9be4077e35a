package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yeisme/greeter/pkg/configs"
)

var (
	noColor bool

	configCmd = &cobra.Command{
		Use:     "config",
		Short:   "Manage greeter configuration",
		Long:    `greeter config allows you to view and manage the logging configuration of greeter.`,
		Aliases: []string{"c"},
	}

	configValidateCmd = &cobra.Command{
		Use:   "validate",
		Short: "Validate greeter configuration",
		Long:  `greeter config validate checks the config file and GREETER_* environment variables.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// 配置在 PersistentPreRunE 中已经加载并校验过
			fileUsed := greeterCtx.Viper.ConfigFileUsed()
			if fileUsed == "" {
				fileUsed = "(none, using defaults)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "config is valid: %s\n", fileUsed)
			log.Info().Msgf("Config file used: %s", fileUsed)
			return nil
		},
		Aliases: []string{"check", "verify"},
	}

	configListCmd = &cobra.Command{
		Use:   "list [section]",
		Short: "List greeter configuration",
		Long: `greeter config list displays the current configuration settings.

You can specify a section to display only that part of the configuration:
  - app: Application settings
  - log: Logging settings

Examples:
  greeter config list                    # Show all configuration (viper raw data)
  greeter config list --all              # Show all configuration decoded with defaults
  greeter config list log                # Show only log settings
  greeter config list --format toml      # Output in TOML format
  greeter config list --json             # Output in JSON format (shorthand)`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			section := ""
			if len(args) > 0 {
				section = args[0]
			}

			format := configs.GetOutputFormatFromFlags(cmd)
			showAll, _ := cmd.Flags().GetBool("all")

			data, err := configs.GetConfigSection(greeterCtx.Viper, section, showAll)
			if err != nil {
				return err
			}
			return configs.OutputData(data, format, cmd.OutOrStdout(), !noColor)
		},
		Aliases: []string{"ls"},
	}

	configInitCmd = &cobra.Command{
		Use:   "init",
		Short: "Initialize greeter configuration",
		Long: `greeter config init creates a new configuration file with default settings.

Examples:
  greeter config init                                  # Create .greeter.yaml in current directory
  greeter config init --path /etc/greeter/greeter.yaml # Specify custom path
  greeter config init --format json                    # Create JSON format config`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("path")
			formatStr, _ := cmd.Flags().GetString("format")

			format, err := configs.ParseOutputFormat(formatStr)
			if err != nil {
				return err
			}
			if path == "" {
				if path, err = configs.DefaultConfigPath(format); err != nil {
					return err
				}
			}

			if err := configs.CreateDefaultConfig(path, format); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "config file created: %s\n", path)
			return nil
		},
	}
)

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.AddCommand(
		configListCmd,
		configValidateCmd,
		configInitCmd,
	)

	configListCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	configListCmd.Flags().StringP("format", "f", "", fmt.Sprintf("Output format (%s)", strings.Join(configs.ValidFormats(), ", ")))
	configListCmd.Flags().Bool("yaml", false, "Output in YAML format")
	configListCmd.Flags().Bool("json", false, "Output in JSON format")
	configListCmd.Flags().Bool("toml", false, "Output in TOML format")
	configListCmd.Flags().Bool("text", false, "Output in plain text format")
	configListCmd.Flags().BoolP("all", "a", false, "Show complete configuration with defaults (decoded struct)")

	configInitCmd.Flags().StringP("path", "p", "", "Path to the config file")
	configInitCmd.Flags().StringP("format", "f", "yaml", "Format of the config file (yaml, json, toml)")
}
