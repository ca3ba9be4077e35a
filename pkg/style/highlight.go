package style

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var (
	keyStyle     = lipgloss.NewStyle().Foreground(ColorKey).Bold(true)
	stringStyle  = lipgloss.NewStyle().Foreground(ColorText)
	numberStyle  = lipgloss.NewStyle().Foreground(ColorNumber)
	boolStyle    = lipgloss.NewStyle().Foreground(ColorBool)
	nullStyle    = lipgloss.NewStyle().Foreground(ColorNull)
	punctStyle   = lipgloss.NewStyle().Foreground(ColorPunct)
	sectionStyle = lipgloss.NewStyle().Foreground(ColorAccentPrimary).Bold(true)
)

// PrintJSON 将 JSON 文本（string / []byte）或任意 Go 值缩进后高亮输出
func PrintJSON(w io.Writer, v any) error {
	var src []byte
	switch x := v.(type) {
	case string:
		src = []byte(x)
	case []byte:
		src = x
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		src = b
	}

	var out bytes.Buffer
	if err := json.Indent(&out, bytes.TrimSpace(src), "", "  "); err != nil {
		return err
	}
	out.WriteByte('\n')
	_, err := fmt.Fprint(w, colorize(out.String(), ':'))
	return err
}

// PrintYAML 将 YAML 文本或任意 Go 值规范化后高亮输出
func PrintYAML(w io.Writer, v any) error {
	if raw, ok := asBytes(v); ok {
		var obj any
		if err := yaml.Unmarshal(raw, &obj); err != nil {
			return err
		}
		v = obj
	}
	b, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, colorize(string(b), ':'))
	return err
}

// PrintTOML 将 TOML 文本或任意 Go 值规范化后高亮输出
func PrintTOML(w io.Writer, v any) error {
	if raw, ok := asBytes(v); ok {
		var obj map[string]any
		if err := toml.Unmarshal(raw, &obj); err != nil {
			return err
		}
		v = obj
	}
	b, err := toml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, colorize(string(b), '='))
	return err
}

func asBytes(v any) ([]byte, bool) {
	switch x := v.(type) {
	case string:
		return []byte(x), true
	case []byte:
		return x, true
	}
	return nil, false
}

// colorize 按行高亮 "键 sep 值" 结构，sep 为 ':'（JSON/YAML）或 '='（TOML）
func colorize(s string, sep byte) string {
	var out strings.Builder
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if i > 0 {
			out.WriteByte('\n')
		}
		body := strings.TrimLeft(line, " \t")
		out.WriteString(line[:len(line)-len(body)])

		if strings.HasPrefix(body, "- ") {
			out.WriteString(punctStyle.Render("-") + " ")
			body = body[2:]
		}
		if sep == '=' && strings.HasPrefix(body, "[") {
			out.WriteString(sectionStyle.Render(body))
			continue
		}

		idx := indexUnquoted(body, sep)
		if idx <= 0 {
			out.WriteString(renderValue(body))
			continue
		}
		out.WriteString(keyStyle.Render(body[:idx]))
		out.WriteString(punctStyle.Render(string(sep)))
		out.WriteString(renderValue(body[idx+1:]))
	}
	return out.String()
}

// renderValue 根据值的类型选择样式，保留前导空白和结尾的逗号
func renderValue(v string) string {
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return v
	}
	lead := v[:strings.Index(v, trimmed)]
	comma := ""
	if strings.HasSuffix(trimmed, ",") {
		trimmed, comma = strings.TrimSuffix(trimmed, ","), punctStyle.Render(",")
		if trimmed == "" {
			return lead + comma
		}
	}

	var rendered string
	switch {
	case trimmed == "true" || trimmed == "false":
		rendered = boolStyle.Render(trimmed)
	case trimmed == "null" || trimmed == "~":
		rendered = nullStyle.Render(trimmed)
	case isNumber(trimmed):
		rendered = numberStyle.Render(trimmed)
	case strings.ContainsAny(trimmed[:1], "{}[]"):
		rendered = punctStyle.Render(trimmed)
	default:
		rendered = stringStyle.Render(trimmed)
	}
	return lead + rendered + comma
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// indexUnquoted 返回第一个不在引号内的 target 位置，找不到返回 -1
func indexUnquoted(line string, target byte) int {
	var quote byte
	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case quote != 0:
			if ch == '\\' && quote == '"' {
				i++
			} else if ch == quote {
				quote = 0
			}
		case ch == '"' || ch == '\'':
			quote = ch
		case ch == target:
			return i
		}
	}
	return -1
}
