package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdtree/internal/ui/pretty"
	"github.com/yaklabco/mdtree/pkg/parser"
)

func newRefsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refs [file]",
		Short: "List link reference definitions",
		Long: `List the link reference definitions collected from a document.

Definitions are matched case-insensitively with Unicode case folding;
the table shows each label in its original spelling. Reads from stdin
when the file is "-" or omitted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRefs,
	}

	return cmd
}

func runRefs(cmd *cobra.Command, args []string) error {
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
	styles, width := outputStyles(cmd, out)

	table := pretty.NewRefTableFormatter(styles, width).FormatTable(doc.Refs)
	if table == "" {
		fmt.Fprintln(out, "no reference definitions")
		return nil
	}

	fmt.Fprint(out, table)
	return nil
}
