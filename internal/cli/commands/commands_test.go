package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/jslint/internal/config"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// execute runs cmd with cfg stored on its context and returns stdout and
// stderr.
func execute(t *testing.T, cmd *cobra.Command, cfg *config.Config, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	ctx := context.Background()
	if cfg != nil {
		ctx = config.WithConfig(ctx, cfg)
	}
	err := cmd.ExecuteContext(ctx)
	return out.String(), errOut.String(), err
}

func compactConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Format = config.FormatCompact
	cfg.ProjectRoot = t.TempDir()
	return cfg
}

func writeSource(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600))
	return path
}
