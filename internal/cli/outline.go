package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdtree/internal/ui/pretty"
	"github.com/yaklabco/mdtree/pkg/parser"
)

func newOutlineCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "outline [file]",
		Short: "Print the heading outline of a document",
		Long: `Print one line per heading, indented by level.

Shorthand for "parse --format outline". Reads from stdin when the
file is "-" or omitted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runOutline,
	}

	return cmd
}

func runOutline(cmd *cobra.Command, args []string) error {
	if _, err := loadConfig(cmd, nil); err != nil {
		return err
	}

	path, source, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	doc, err := parser.Parse(source)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	out := cmd.OutOrStdout()
	styles, _ := outputStyles(cmd, out)
	fmt.Fprint(out, pretty.NewOutlineRenderer(styles).Render(doc.Root))

	return nil
}
