package cli

import (
	"fmt"
	"log/slog"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"ide-config/internal/config"
	"ide-config/internal/logging"
	"ide-config/internal/patch"
)

// NewRootCmd builds the ideconfig command. Run without flags it patches the
// IDE settings of the current directory using DB_USER and DB_PORT.
func NewRootCmd(name, shortDesc, longDesc string) *cobra.Command {
	var cfg *config.Config

	cmd := &cobra.Command{
		Use:           name,
		Short:         shortDesc,
		Long:          longDesc,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringP("config", "c", "", "Optional YAML config file")
	cmd.PersistentFlags().String("project-dir", "", "Project root containing the IDE directory (default \".\")")
	cmd.PersistentFlags().String("log_level", "", "Set the log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("log_format", "", "Set the log format (text, logfmt, json)")

	cmd.Flags().Bool("dry-run", false, "Print a diff of the changes instead of writing files")
	cmd.Flags().StringSlice("only", nil, "Apply only the named patches (see 'list')")

	cmd.PersistentPreRunE = func(cc *cobra.Command, _ []string) error {
		flags := cc.Flags()

		var merr error

		configPath, err := flags.GetString("config")
		if err != nil {
			merr = multierror.Append(merr, err)
		}

		projectDir, err := flags.GetString("project-dir")
		if err != nil {
			merr = multierror.Append(merr, err)
		}

		logLevel, err := flags.GetString("log_level")
		if err != nil {
			merr = multierror.Append(merr, err)
		}

		logFormat, err := flags.GetString("log_format")
		if err != nil {
			merr = multierror.Append(merr, err)
		}

		if merr != nil {
			return fmt.Errorf("invalid argument: %w", merr)
		}

		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if projectDir != "" {
			cfg.ProjectDir = projectDir
		}
		if logLevel != "" {
			cfg.Log.Level = logLevel
		}
		if logFormat != "" {
			cfg.Log.Format = logFormat
		}

		h, err := logging.CreateHandler(cc.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
		if err != nil {
			return fmt.Errorf("failed creating log handler: %w", err)
		}
		slog.SetDefault(slog.New(h))

		return nil
	}

	cmd.RunE = func(cc *cobra.Command, _ []string) error {
		dryRun, err := cc.Flags().GetBool("dry-run")
		if err != nil {
			return err
		}

		only, err := cc.Flags().GetStringSlice("only")
		if err != nil {
			return err
		}

		patches, err := patch.Select(patch.Default(), only)
		if err != nil {
			return err
		}

		runner := &patch.Runner{Config: cfg, Logger: slog.Default(), DryRun: dryRun}
		results, err := runner.Run(cc.Context(), patches)
		if err != nil {
			return err
		}

		if dryRun {
			for _, res := range results {
				if res.Diff != "" {
					fmt.Fprint(cc.OutOrStdout(), res.Diff)
				}
			}
		}

		return nil
	}

	cmd.AddCommand(NewListCmd())

	return cmd
}
