package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yeisme/greeter/pkg/server"
	"github.com/yeisme/greeter/pkg/style"
)

var routesMarkdown bool

// routesCmd 打印静态路由表
var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List the routes served by greeter",
	Long: `greeter routes prints the static route table.

Every other method or path gets the router's default 404 / 405 response.

Examples:
  greeter routes              # table output
  greeter routes --markdown   # rendered markdown`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		routes := server.Routes()
		out := cmd.OutOrStdout()

		if routesMarkdown {
			return style.RenderMarkdown(out, routesMarkdownDoc(routes), 0, "")
		}

		rows := make([][]string, 0, len(routes))
		for _, r := range routes {
			rows = append(rows, []string{r.Method, r.Path, r.Description})
		}
		if err := style.PrintHeading(out, fmt.Sprintf("routes on port %d", server.DefaultPort)); err != nil {
			return err
		}
		return style.PrintTable(out, []string{"method", "path", "description"}, rows, 0)
	},
}

// routesMarkdownDoc 生成路由表的 Markdown 文本
func routesMarkdownDoc(routes []server.Route) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# greeter routes\n\nListening on port `%d`.\n\n", server.DefaultPort)
	b.WriteString("| Method | Path | Description |\n|---|---|---|\n")
	for _, r := range routes {
		fmt.Fprintf(&b, "| %s | `%s` | %s |\n", r.Method, r.Path, r.Description)
	}
	fmt.Fprintf(&b, "\nResponse body of `GET /`: **%s**\n", server.Greeting)
	return b.String()
}

func init() {
	rootCmd.AddCommand(routesCmd)

	routesCmd.Flags().BoolVarP(&routesMarkdown, "markdown", "m", false, "render the route table as markdown")
}
