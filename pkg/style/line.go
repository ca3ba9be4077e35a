package style

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// PrintHeading 打印一个区块标题
func PrintHeading(w io.Writer, title string) error {
	s := lipgloss.NewStyle().
		Foreground(ColorAccentText).
		Background(ColorAccentPrimary).
		Bold(true).
		Padding(0, 1)
	_, err := fmt.Fprintln(w, s.Render(strings.ToUpper(title)))
	return err
}

// PrintKeyValues 按显示宽度对齐输出键值对，键名可以包含宽字符
func PrintKeyValues(w io.Writer, pairs [][2]string) error {
	maxKey := 0
	for _, p := range pairs {
		maxKey = max(maxKey, runewidth.StringWidth(p[0]))
	}

	for _, p := range pairs {
		padding := strings.Repeat(" ", maxKey-runewidth.StringWidth(p[0]))
		if _, err := fmt.Fprintf(w, "%s%s  %s\n", keyStyle.Render(p[0]), padding, stringStyle.Render(p[1])); err != nil {
			return err
		}
	}
	return nil
}
