package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"cssmin/internal/ui"
)

var (
	watchFlags    minifyFlags
	watchInterval time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch <output> [files...]",
	Short: "Watch the input files and minify them again on change",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := resolveOptions(cmd, &watchFlags, args)
		if err != nil {
			return err
		}

		ui.PrintHeader(Version)

		ctx := cmd.Context()

		if err := runBatch(ctx, opts, watchFlags.quiet); err != nil {
			ui.PrintError("Minification failed: %v", err)
		}

		fmt.Fprintln(ui.Out)
		ui.PrintInfo("Watching %d file(s) for changes...", len(opts.Files))
		ui.PrintInfo("Press Ctrl+C to stop")
		fmt.Fprintln(ui.Out)

		if watchInterval <= 0 {
			watchInterval = 500 * time.Millisecond
		}

		lastMod := time.Now()
		ticker := time.NewTicker(watchInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				fmt.Fprintln(ui.Out)
				ui.PrintInfo("Stopped watching")
				return nil
			case <-ticker.C:
			}

			changed, newMod := hasChanges(opts.Files, lastMod)
			if !changed {
				continue
			}
			if time.Since(newMod) < watchInterval {
				continue
			}

			lastMod = time.Now()

			if next, err := resolveOptions(cmd, &watchFlags, args); err == nil {
				opts = next
			} else {
				ui.PrintWarning("Keeping previous inputs: %v", err)
			}

			fmt.Fprintln(ui.Out)
			ui.PrintInfo("Changes detected, minifying...")

			if err := runBatch(ctx, opts, watchFlags.quiet); err != nil {
				ui.PrintError("Minification failed: %v", err)
			}
		}
	},
}

func init() {
	addMinifyFlags(watchCmd, &watchFlags)
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 500*time.Millisecond, "Polling interval")
	rootCmd.AddCommand(watchCmd)
}

// hasChanges reports whether any file was modified after since, along with
// the latest modification time seen
func hasChanges(files []string, since time.Time) (bool, time.Time) {
	var latestMod time.Time
	changed := false

	for _, path := range files {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if info.ModTime().After(since) {
			changed = true
		}
		if info.ModTime().After(latestMod) {
			latestMod = info.ModTime()
		}
	}

	return changed, latestMod
}
