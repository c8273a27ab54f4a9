package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdtree/internal/logging"
	"github.com/yaklabco/mdtree/pkg/config"
)

const defaultConfigName = ".mdtree.yaml"

func newInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter configuration file",
		Long: `Write a commented .mdtree.yaml with all options at their
defaults into the current directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	return cmd
}

func runInit(cmd *cobra.Command, force bool) error {
	if _, err := os.Stat(defaultConfigName); err == nil && !force {
		return &errConfig{err: fmt.Errorf("%s already exists (use --force to overwrite)", defaultConfigName)}
	}

	if err := os.WriteFile(defaultConfigName, config.Template(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", defaultConfigName, err)
	}

	logging.Default().Info("wrote config", logging.FieldPath, defaultConfigName)
	fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", defaultConfigName)

	return nil
}
