// Package style 提供终端样式化输出：标题、表格、键值对、配置高亮和 Markdown
package style

import "github.com/charmbracelet/lipgloss"

// 颜色集中定义，方便统一调整
const (
	// 主题强调色，用于标题背景和键名
	ColorAccentPrimary = lipgloss.Color("#33A1FF")
	// 强调背景上的文本色
	ColorAccentText = lipgloss.Color("#FFFFFF")
	// 普通文本
	ColorText = lipgloss.Color("#E4E4E4")
	// 边框
	ColorBorder = lipgloss.Color("#444444")

	ColorKey    = lipgloss.Color("#55BCF4")
	ColorNumber = lipgloss.Color("#D4EC19")
	ColorBool   = lipgloss.Color("#DFAB49")
	ColorNull   = lipgloss.Color("#6272A4")
	ColorPunct  = lipgloss.Color("#6B7280")
)
