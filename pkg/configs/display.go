package configs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"reflect"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/yeisme/greeter/pkg/style"
	"gopkg.in/yaml.v3"
)

// OutputFormat 输出格式类型
type OutputFormat string

const (
	// FormatYAML represents the YAML output format.
	FormatYAML OutputFormat = "yaml"
	// FormatJSON represents the JSON output format.
	FormatJSON OutputFormat = "json"
	// FormatTOML represents the TOML output format.
	FormatTOML OutputFormat = "toml"
	// FormatText represents the plain text output format.
	FormatText OutputFormat = "text"
)

// ValidFormats 返回所有有效的输出格式
func ValidFormats() []string {
	return []string{string(FormatYAML), string(FormatJSON), string(FormatTOML), string(FormatText)}
}

// ParseOutputFormat 解析输出格式字符串
func ParseOutputFormat(format string) (OutputFormat, error) {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	case "text", "txt":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unsupported format '%s', supported formats: %s", format, strings.Join(ValidFormats(), ", "))
	}
}

// GetOutputFormatFromFlags 从命令行标志获取输出格式，默认 YAML
func GetOutputFormatFromFlags(cmd *cobra.Command) OutputFormat {
	if formatFlag, _ := cmd.Flags().GetString("format"); formatFlag != "" {
		if format, err := ParseOutputFormat(formatFlag); err == nil {
			return format
		}
	}
	for _, f := range []OutputFormat{FormatYAML, FormatJSON, FormatTOML, FormatText} {
		if set, _ := cmd.Flags().GetBool(string(f)); set {
			return f
		}
	}
	return FormatYAML
}

// OutputData 按指定格式将 data 写入 out，color 为 true 时高亮输出
func OutputData(data any, format OutputFormat, out io.Writer, color bool) error {
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return fmt.Errorf("failed to marshal to YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to close YAML encoder: %w", err)
		}
		if color {
			return style.PrintYAML(out, buf.Bytes())
		}
		_, err := out.Write(buf.Bytes())
		return err

	case FormatJSON:
		jsonData, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal to JSON: %w", err)
		}
		if color {
			return style.PrintJSON(out, jsonData)
		}
		_, err = fmt.Fprintln(out, string(jsonData))
		return err

	case FormatTOML:
		tomlData, err := toml.Marshal(data)
		if err != nil {
			return fmt.Errorf("failed to marshal to TOML: %w", err)
		}
		if color {
			return style.PrintTOML(out, tomlData)
		}
		_, err = out.Write(tomlData)
		return err

	case FormatText:
		return style.PrintKeyValues(out, flatten("", data))

	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// flatten 将嵌套的 map 展开为 a.b.c 形式的键值对，用于文本输出
func flatten(prefix string, data any) [][2]string {
	var pairs [][2]string
	switch x := data.(type) {
	case map[string]any:
		for _, k := range slices.Sorted(maps.Keys(x)) {
			pairs = append(pairs, flatten(joinKey(prefix, k), x[k])...)
		}
	default:
		rv := reflect.ValueOf(data)
		if rv.Kind() == reflect.Struct {
			var m map[string]any
			raw, err := json.Marshal(data)
			if err == nil && json.Unmarshal(raw, &m) == nil {
				return flatten(prefix, m)
			}
		}
		pairs = append(pairs, [2]string{prefix, fmt.Sprint(data)})
	}
	return pairs
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// GetConfigSection 从 viper 实例获取指定配置段
//
// showAll 为 true 时返回解析后的结构体（包含默认值），否则返回 viper 的原始数据。
func GetConfigSection(v *viper.Viper, section string, showAll bool) (any, error) {
	lowerSection := strings.ToLower(section)

	if showAll {
		var config Config
		if err := v.Unmarshal(&config); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
		if lowerSection == "" {
			return config, nil
		}

		// 按 mapstructure 标签查找配置段
		val := reflect.ValueOf(config)
		typ := val.Type()
		for i := 0; i < val.NumField(); i++ {
			if strings.ToLower(typ.Field(i).Tag.Get("mapstructure")) == lowerSection {
				return val.Field(i).Interface(), nil
			}
		}
		return nil, fmt.Errorf("unknown configuration section: %s", section)
	}

	if lowerSection == "" {
		return v.AllSettings(), nil
	}
	if v.IsSet(lowerSection) {
		return v.Get(lowerSection), nil
	}
	return nil, fmt.Errorf("unknown or unset configuration section %s", section)
}
