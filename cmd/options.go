package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"cssmin/internal/batch"
	"cssmin/internal/config"
)

// resolveOptions merges the command line with the project file. Positional
// arguments and flags set on the command line win over file values.
func resolveOptions(cmd *cobra.Command, f *minifyFlags, args []string) (batch.Options, error) {
	cfg, err := loadConfig(f.configPath)
	if err != nil {
		return batch.Options{}, err
	}

	opts := batch.Options{
		PreserveComments: f.comments,
		Concat:           f.concat,
		Workers:          f.workers,
	}

	var outputDir string
	var patterns []string
	baseDir := ""
	excludes := append([]string{}, f.excludes...)

	if len(args) > 0 {
		outputDir = args[0]
		patterns = args[1:]
	}

	if cfg != nil {
		if outputDir == "" {
			outputDir = cfg.OutputDir()
		}
		if len(patterns) == 0 {
			patterns = cfg.Files
			baseDir = cfg.Dir
		}
		if !cmd.Flags().Changed("comments") {
			opts.PreserveComments = cfg.Comments
		}
		if !cmd.Flags().Changed("concat") {
			opts.Concat = cfg.Concat
		}
		if !cmd.Flags().Changed("workers") {
			opts.Workers = cfg.Workers
		}
		excludes = append(excludes, cfg.Exclude...)
	}

	if outputDir == "" {
		return batch.Options{}, fmt.Errorf("missing output directory: pass it as the first argument or set output in %s", config.FileNames[0])
	}
	if opts.Workers < 0 {
		return batch.Options{}, fmt.Errorf("workers must not be negative, got %d", opts.Workers)
	}

	files, err := batch.ExpandInputs(baseDir, patterns, excludes)
	if err != nil {
		return batch.Options{}, fmt.Errorf("failed to expand inputs: %w", err)
	}

	opts.OutputDir = outputDir
	opts.Files = files

	return opts, nil
}

// loadConfig loads the explicit project file, or the one in the working
// directory when none is given. It returns nil when there is no file.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}

	dir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	found, ok := config.Find(dir)
	if !ok {
		return nil, nil
	}
	return config.Load(found)
}
