package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"cssmin/internal/batch"
	"cssmin/internal/ui"
)

// Version is set by ldflags during build
var Version = "dev"

// minifyFlags holds the flags shared by the root and watch commands
type minifyFlags struct {
	comments   bool
	concat     bool
	quiet      bool
	workers    int
	configPath string
	excludes   []string
}

var rootFlags minifyFlags

var rootCmd = &cobra.Command{
	Use:           "cssmin <output> [files...]",
	Short:         "CSS minification command-line tool",
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := resolveOptions(cmd, &rootFlags, args)
		if err != nil {
			return err
		}

		if !rootFlags.quiet {
			ui.PrintHeader(Version)
		}

		if err := runBatch(cmd.Context(), opts, rootFlags.quiet); err != nil {
			return fmt.Errorf("minification failed: %w", err)
		}
		return nil
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		ui.PrintError("%v", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.Long = ui.Header(Version) + "\n\n  Minify CSS files into <name>.min.css or a single all.min.css"
	addMinifyFlags(rootCmd, &rootFlags)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "cssmin %s\n", Version)
	},
}

func addMinifyFlags(cmd *cobra.Command, f *minifyFlags) {
	cmd.Flags().BoolVarP(&f.comments, "comments", "c", false, "Don't remove comments")
	cmd.Flags().BoolVar(&f.concat, "concat", false, "Concat the minified result to one file")
	cmd.Flags().BoolVarP(&f.quiet, "quiet", "q", false, "Only print errors")
	cmd.Flags().IntVarP(&f.workers, "workers", "w", 0, "Number of files minified in parallel (0 = one per CPU)")
	cmd.Flags().StringVar(&f.configPath, "config", "", "Path to a cssmin.yaml project file")
	cmd.Flags().StringSliceVarP(&f.excludes, "exclude", "x", nil, "Patterns of input files to skip")
}

// runBatch minifies the inputs and prints the outcome
func runBatch(ctx context.Context, opts batch.Options, quiet bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var progress batch.Progress = batch.NopProgress{}
	if !quiet {
		ui.PrintInfo("Minifying %d file(s) into %s", len(opts.Files), opts.OutputDir)
		progress = ui.NewProgressBar(ui.Out)
	}

	report, err := batch.Run(ctx, opts, progress)
	if err != nil {
		return err
	}

	if !quiet {
		fmt.Fprintln(ui.Out)
		ui.PrintReport(report)
		fmt.Fprintln(ui.Out)
		ui.PrintSuccess("Done")
	}

	return nil
}
