package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/mdtree/internal/configloader"
	"github.com/yaklabco/mdtree/internal/logging"
	"github.com/yaklabco/mdtree/internal/ui/pretty"
	"github.com/yaklabco/mdtree/pkg/config"
	"github.com/yaklabco/mdtree/pkg/langdetect"
	"github.com/yaklabco/mdtree/pkg/mdast"
	"github.com/yaklabco/mdtree/pkg/parser"
)

type parseFlags struct {
	format     string
	maxDepth   int
	showRefs   bool
	showSpans  bool
	detectLang bool
}

func newParseCommand() *cobra.Command {
	flags := &parseFlags{}

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a Markdown file and render its tree",
		Long:  parseLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "",
		"output format: tree, json, markdown, outline")
	cmd.Flags().IntVar(&flags.maxDepth, "max-depth", 0,
		"maximum block nesting depth (0 = parser default)")
	cmd.Flags().BoolVar(&flags.showRefs, "refs", false,
		"print the link reference definition table after the tree")
	cmd.Flags().BoolVar(&flags.showSpans, "spans", false,
		"include source spans in tree output")
	cmd.Flags().BoolVar(&flags.detectLang, "detect-languages", false,
		"detect languages for fenced code blocks without an info string")

	return cmd
}

const parseLongDescription = `Parse a Markdown file into a positioned syntax tree.

Reads from the given file, or from stdin when the file is "-" or
omitted. The tree view shows one node per line with its structural
attributes; --spans adds exact source coordinates.

Examples:
  mdtree parse README.md             # Styled tree view
  mdtree parse README.md --spans     # Tree with source spans
  mdtree parse README.md --format json | jq .
  mdtree parse --format outline doc.md
  cat doc.md | mdtree parse -`

func runParse(cmd *cobra.Command, args []string, flags *parseFlags) error {
	logger := logging.Default()

	cfg, err := loadConfig(cmd, func(cliCfg *config.Config) {
		if cmd.Flags().Changed("format") {
			cliCfg.Format = config.OutputFormat(flags.format)
		}
		cliCfg.MaxDepth = flags.maxDepth
		cliCfg.DetectLanguages = flags.detectLang
		cliCfg.ShowRefs = flags.showRefs
		cliCfg.ShowSpans = flags.showSpans
	})
	if err != nil {
		return err
	}

	path, source, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	start := time.Now()

	doc, err := parser.ParseWithOptions(source, parser.Options{
		MaxNestingDepth: cfg.MaxDepth,
	})
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	if cfg.DetectLanguages {
		annotateLanguages(doc.Root, logger)
	}

	logger.Debug("parsed document",
		logging.FieldPath, path,
		logging.FieldBytes, len(source),
		logging.FieldLines, mdast.LineCount(source),
		logging.FieldBlocks, countNodes(doc.Root, func(n *mdast.Node) bool { return n.IsBlock() }),
		logging.FieldRefs, doc.Refs.Len(),
		"duration", time.Since(start).Round(time.Microsecond),
	)

	out := cmd.OutOrStdout()
	if err := renderDocument(cmd, out, cfg, doc); err != nil {
		return err
	}

	if cfg.ShowRefs && cfg.Format != config.FormatJSON {
		styles, width := outputStyles(cmd, out)
		if table := pretty.NewRefTableFormatter(styles, width).FormatTable(doc.Refs); table != "" {
			fmt.Fprintln(out)
			fmt.Fprint(out, table)
		}
	}

	return nil
}

// renderDocument writes the document in the configured format.
func renderDocument(cmd *cobra.Command, out io.Writer, cfg *config.Config, doc *parser.Document) error {
	switch cfg.Format {
	case config.FormatTree:
		styles, width := outputStyles(cmd, out)
		renderer := pretty.NewTreeRenderer(styles, width, cfg.ShowSpans)
		fmt.Fprint(out, renderer.Render(doc.Root))
		return nil

	case config.FormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(doc.Root); err != nil {
			return fmt.Errorf("encode tree: %w", err)
		}
		return nil

	case config.FormatMarkdown:
		fmt.Fprint(out, mdast.Serialize(doc.Root))
		return nil

	case config.FormatOutline:
		styles, _ := outputStyles(cmd, out)
		fmt.Fprint(out, pretty.NewOutlineRenderer(styles).Render(doc.Root))
		return nil

	default:
		return fmt.Errorf("unknown output format %q", cfg.Format)
	}
}

// annotateLanguages fills in the info string of fenced code blocks
// that have none, using content-based detection.
func annotateLanguages(root *mdast.Node, logger *log.Logger) {
	_ = mdast.WalkBlocks(root, func(n *mdast.Node) error {
		if n.Block == nil || n.Block.CodeBlock == nil {
			return nil
		}
		code := n.Block.CodeBlock
		if code.Info != "" || code.Fence == 0 {
			return nil
		}
		if lang := langdetect.Detect([]byte(code.Value)); lang != "text" {
			code.Info = lang
			logger.Debug("detected language",
				logging.FieldLanguage, lang,
				"line", n.Span.Start.Line,
			)
		}
		return nil
	})
}

// loadConfig merges file, environment, and CLI configuration for a
// command. applyFlags copies the command's changed flags onto the
// CLI-level config before merging.
func loadConfig(cmd *cobra.Command, applyFlags func(*config.Config)) (*config.Config, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	cliCfg := &config.Config{}
	if applyFlags != nil {
		applyFlags(cliCfg)
	}

	result, err := configloader.Load(cmd.Context(), configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, &errConfig{err: err}
	}

	logger := logging.Default()
	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}
	if len(result.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", "files", result.LoadedFrom)
	}

	return result.Config, nil
}

// readInput reads the document source from the named file, or from
// stdin when the arg is "-" or absent.
func readInput(cmd *cobra.Command, args []string) (path, source string, err error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return "-", string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return args[0], string(data), nil
}

// outputStyles resolves the styles and terminal width for a writer,
// honoring the persistent --color flag.
func outputStyles(cmd *cobra.Command, out io.Writer) (*pretty.Styles, int) {
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	colorEnabled := pretty.IsColorEnabled(colorMode, out)

	width := 0
	if f, ok := out.(*os.File); ok {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil {
			width = w
		}
	}

	return pretty.NewStyles(colorEnabled), width
}

// countNodes counts nodes satisfying pred.
func countNodes(root *mdast.Node, pred func(*mdast.Node) bool) int {
	count := 0
	_ = mdast.Walk(root, func(n *mdast.Node) error {
		if pred(n) {
			count++
		}
		return nil
	})
	return count
}
