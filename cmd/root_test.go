package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	require.NotNil(t, rootCmd)
	assert.Equal(t, "cssmin", rootCmd.Name())
	assert.Contains(t, rootCmd.Long, "all.min.css")
}

func TestCommandPresence(t *testing.T) {
	for _, name := range []string{"watch", "version", "completion"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := rootCmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestMinifyFlags(t *testing.T) {
	for _, cmd := range []*cobra.Command{rootCmd, watchCmd} {
		t.Run(cmd.Name(), func(t *testing.T) {
			comments := cmd.Flags().Lookup("comments")
			require.NotNil(t, comments)
			assert.Equal(t, "c", comments.Shorthand)
			assert.Equal(t, "false", comments.DefValue)

			concat := cmd.Flags().Lookup("concat")
			require.NotNil(t, concat)
			assert.Equal(t, "", concat.Shorthand)

			for _, name := range []string{"quiet", "workers", "config", "exclude"} {
				assert.NotNil(t, cmd.Flags().Lookup(name), name)
			}
		})
	}

	interval := watchCmd.Flags().Lookup("interval")
	require.NotNil(t, interval)
	assert.Equal(t, "500ms", interval.DefValue)
}

func newTestCommand(f *minifyFlags) *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	addMinifyFlags(cmd, f)
	return cmd
}

func TestResolveOptions(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	require.NoError(t, os.MkdirAll("css", 0755))
	for _, name := range []string{"css/a.css", "css/b.css", "css/b.min.css"} {
		require.NoError(t, os.WriteFile(name, []byte("a{}"), 0644))
	}

	t.Run("arguments only", func(t *testing.T) {
		f := &minifyFlags{}
		cmd := newTestCommand(f)
		require.NoError(t, cmd.ParseFlags([]string{"--concat", "-c", "-x", "*.min.css"}))

		opts, err := resolveOptions(cmd, f, []string{"out", "css/*.css"})
		require.NoError(t, err)
		assert.Equal(t, "out", opts.OutputDir)
		assert.Equal(t, []string{filepath.Join("css", "a.css"), filepath.Join("css", "b.css")}, opts.Files)
		assert.True(t, opts.Concat)
		assert.True(t, opts.PreserveComments)
	})

	t.Run("repeated inputs kept", func(t *testing.T) {
		f := &minifyFlags{}
		opts, err := resolveOptions(newTestCommand(f), f, []string{"out", "css/a.css", "css/a.css"})
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join("css", "a.css"), filepath.Join("css", "a.css")}, opts.Files)
	})

	t.Run("missing output", func(t *testing.T) {
		f := &minifyFlags{}
		_, err := resolveOptions(newTestCommand(f), f, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing output directory")
	})

	t.Run("negative workers", func(t *testing.T) {
		f := &minifyFlags{}
		cmd := newTestCommand(f)
		require.NoError(t, cmd.ParseFlags([]string{"--workers", "-1"}))
		_, err := resolveOptions(cmd, f, []string{"out"})
		assert.Error(t, err)
	})

	require.NoError(t, os.WriteFile("cssmin.yaml", []byte(`output: dist
concat: true
comments: true
workers: 2
files:
  - css/**/*.css
exclude:
  - "*.min.css"
`), 0644))

	t.Run("project file", func(t *testing.T) {
		f := &minifyFlags{}
		opts, err := resolveOptions(newTestCommand(f), f, nil)
		require.NoError(t, err)

		wd, err := os.Getwd()
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(wd, "dist"), opts.OutputDir)
		assert.Equal(t, []string{filepath.Join(wd, "css", "a.css"), filepath.Join(wd, "css", "b.css")}, opts.Files)
		assert.True(t, opts.Concat)
		assert.True(t, opts.PreserveComments)
		assert.Equal(t, 2, opts.Workers)
	})

	t.Run("flags override project file", func(t *testing.T) {
		f := &minifyFlags{}
		cmd := newTestCommand(f)
		require.NoError(t, cmd.ParseFlags([]string{"--concat=false", "--comments=false", "-w", "8"}))

		opts, err := resolveOptions(cmd, f, []string{"other", "css/a.css"})
		require.NoError(t, err)
		assert.Equal(t, "other", opts.OutputDir)
		assert.Equal(t, []string{filepath.Join("css", "a.css")}, opts.Files)
		assert.False(t, opts.Concat)
		assert.False(t, opts.PreserveComments)
		assert.Equal(t, 8, opts.Workers)
	})

	t.Run("explicit config path", func(t *testing.T) {
		other := filepath.Join(t.TempDir(), "custom.yaml")
		require.NoError(t, os.WriteFile(other, []byte("output: elsewhere\n"), 0644))

		f := &minifyFlags{configPath: other}
		opts, err := resolveOptions(newTestCommand(f), f, nil)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(filepath.Dir(other), "elsewhere"), opts.OutputDir)
		assert.Empty(t, opts.Files)
	})

	t.Run("broken config path", func(t *testing.T) {
		f := &minifyFlags{configPath: filepath.Join(dir, "nope.yaml")}
		_, err := resolveOptions(newTestCommand(f), f, []string{"out"})
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestRootExecute(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	require.NoError(t, os.Mkdir("out", 0755))
	require.NoError(t, os.WriteFile("a.css", []byte("a {\n  color: #ffffff;\n}\n"), 0644))
	require.NoError(t, os.WriteFile("b.css", []byte("b { margin: 0.5em; }"), 0644))

	rootCmd.SetArgs([]string{"out", "a.css", "b.css", "--concat", "-q"})
	require.NoError(t, rootCmd.Execute())

	data, err := os.ReadFile(filepath.Join("out", "all.min.css"))
	require.NoError(t, err)
	assert.Equal(t, "a{color:#fff}\nb{margin:.5em}", string(data))
}

func TestHasChanges(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.css")
	require.NoError(t, os.WriteFile(file, []byte("a{}"), 0644))

	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(file, past, past))

	changed, latest := hasChanges([]string{file, filepath.Join(dir, "missing.css")}, past.Add(-time.Minute))
	assert.True(t, changed)
	assert.WithinDuration(t, past, latest, time.Second)

	changed, _ = hasChanges([]string{file}, time.Now())
	assert.False(t, changed)
}

func TestRootRequiresOutput(t *testing.T) {
	chdir(t, t.TempDir())

	rootCmd.SetArgs([]string{})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing output directory")
}

func TestCompletionCommand(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	t.Cleanup(func() { rootCmd.SetOut(nil) })

	rootCmd.SetArgs([]string{"completion", "bash"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "cssmin")

	rootCmd.SetArgs([]string{"completion", "tcsh"})
	assert.Error(t, rootCmd.Execute())
}

func TestCompleteInputs(t *testing.T) {
	for _, cmd := range []*cobra.Command{rootCmd, watchCmd} {
		require.NotNil(t, cmd.ValidArgsFunction, cmd.Name())
	}

	values, directive := completeInputs(rootCmd, nil, "")
	assert.Empty(t, values)
	assert.Equal(t, cobra.ShellCompDirectiveFilterDirs, directive)

	values, directive = completeInputs(rootCmd, []string{"dist"}, "ma")
	assert.Equal(t, []string{"css"}, values)
	assert.Equal(t, cobra.ShellCompDirectiveFilterFileExt, directive)
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent of testing.T.Chdir, Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
