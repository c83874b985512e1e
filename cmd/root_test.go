// File: cmd/root_test.go
package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/streamwatch-cli/internal/config"
	"github.com/xkilldash9x/streamwatch-cli/internal/observability"
)

// executeCommand runs a fresh command tree against a clean global viper and
// returns the combined output. Tests share the global viper, so none of them
// run in parallel.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	observability.ResetForTest()
	t.Cleanup(viper.Reset)

	root := NewRootCommand()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestVersionFlag(t *testing.T) {
	out, err := executeCommand(t, "--version")
	require.NoError(t, err)
	assert.Equal(t, Version+"\n", out)
}

func TestCheck_UnsupportedBrowserFailsBeforeLaunch(t *testing.T) {
	_, err := executeCommand(t, "check", "--browser", "netscape")

	var unsupported *config.ErrUnsupportedBrowser
	require.ErrorAs(t, err, &unsupported,
		"an unsupported browser must be rejected by validation, not by a launch failure")
	assert.Equal(t, "netscape", unsupported.Name)
}

func TestCheck_InvalidTimeoutRejected(t *testing.T) {
	t.Setenv("STREAMWATCH_WAIT_TIMEOUT", "-5s")

	_, err := executeCommand(t, "check")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wait.timeout")
}

func TestInitializeConfig_EnvOverride(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("STREAMWATCH_SITE_TOPIC", "Dota 2")

	require.NoError(t, initializeConfig(""))

	cfg, err := config.NewConfigFromViper(viper.GetViper())
	require.NoError(t, err)
	assert.Equal(t, "Dota 2", cfg.Site.Topic)
}

func TestInitializeConfig_MissingConfigFileIsFatalOnlyWhenExplicit(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	require.Error(t, initializeConfig("does-not-exist.yaml"))

	viper.Reset()
	require.NoError(t, initializeConfig(""), "an absent implicit config file falls back to defaults")
}
