package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/jacobbieker/LOFAR-ML/pkg/config"
	"github.com/jacobbieker/LOFAR-ML/pkg/style"
	"github.com/spf13/cobra"
)

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: MsgSchemaShort,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), renderMarkdown(config.SchemaReference()))
		},
	}
}

// renderMarkdown converts the schema reference to terminal output,
// falling back to the raw markdown when styling is unavailable
func renderMarkdown(content string) string {
	if !style.UseColor(os.Stdout) {
		return content
	}

	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
