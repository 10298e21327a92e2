// File: cmd/cmd_test.go
package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// executeCommand runs a fresh root command with isolated global state and
// captures its combined output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	viper.Reset()

	testRootCmd := NewRootCommand()
	buf := new(bytes.Buffer)
	testRootCmd.SetOut(buf)
	testRootCmd.SetErr(buf)
	testRootCmd.SetArgs(args)
	err := testRootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func createTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func writeSampleFile(t *testing.T, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	var buf bytes.Buffer
	for _, l := range lines {
		buf.WriteString(l + "\n")
	}
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestVersionCommand(t *testing.T) {
	output, err := executeCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, output, "limelight "+Version)
}

func TestVersionCommandSkipsConfigValidation(t *testing.T) {
	configFile := createTempConfig(t, "fetcher:\n  rate_limit: -1\n")
	output, err := executeCommand(t, "--config", configFile, "version")
	require.NoError(t, err, "version must work even with a broken config")
	assert.Contains(t, output, Version)
}

func TestSnowballRequiresSeedArg(t *testing.T) {
	_, err := executeCommand(t, "snowball")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestInvalidConfigIsFatal(t *testing.T) {
	configFile := createTempConfig(t, "fetcher:\n  rate_limit: -1\n")
	_, err := executeCommand(t, "--config", configFile, "compare")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate_limit")
}

func TestCompareRequiresBothSamplePaths(t *testing.T) {
	_, err := executeCommand(t, "compare", "--snowball", "only-one.jsonl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--alphabet")
}

func TestCompareMissingSampleFile(t *testing.T) {
	_, err := executeCommand(t, "compare",
		"--snowball", filepath.Join(t.TempDir(), "nope.jsonl"),
		"--alphabet", filepath.Join(t.TempDir(), "nope.jsonl"),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load snowball sample")
}

func TestCompareEndToEnd(t *testing.T) {
	snowball := writeSampleFile(t, "snowball.jsonl",
		`{"slug":"ava","url":"","name":"Ava","age":30,"gender_inferred":"female","partners":[]}`,
		`{"slug":"ben","url":"","name":"Ben","age":40,"gender_inferred":"male","partners":["ava"]}`,
	)
	alphabet := writeSampleFile(t, "alphabet.jsonl",
		`{"slug":"cleo","url":"","name":"Cleo","age":null,"gender_inferred":"female","partners":[]}`,
	)
	outPath := filepath.Join(t.TempDir(), "Comparison.md")

	output, err := executeCommand(t, "compare",
		"--snowball", snowball,
		"--alphabet", alphabet,
		"--out", outPath,
	)
	require.NoError(t, err)

	assert.Contains(t, output, "Gender distribution")
	assert.Contains(t, output, "Age summary")
	assert.Contains(t, output, "Markdown report written to "+outPath)

	written, err := os.ReadFile(outPath)
	require.NoError(t, err)
	md := string(written)
	assert.Contains(t, md, "# Comparison of Samples")
	assert.Contains(t, md, "### Snowball sample (total records: 2)")
	assert.Contains(t, md, "### Alphabet sample (total records: 1)")
	assert.Contains(t, md, "No age data available in this sample.")
}

func TestConfigAndFlagPrecedence(t *testing.T) {
	viper.Reset()
	configFile := createTempConfig(t, "collect:\n  target_count: 7\n")

	testRootCmd := NewRootCommand()

	var snowballCmd *cobra.Command
	for _, c := range testRootCmd.Commands() {
		if c.Use == "snowball <seed-slug>" {
			snowballCmd = c
			break
		}
	}
	require.NotNil(t, snowballCmd)

	// Intercept RunE so the test never touches the network. PersistentPreRunE
	// and the flag binding in PreRunE still run.
	snowballCmd.RunE = func(cmd *cobra.Command, args []string) error { return nil }

	testRootCmd.SetOut(new(bytes.Buffer))
	testRootCmd.SetErr(new(bytes.Buffer))

	// Config file value applies when the flag is absent.
	testRootCmd.SetArgs([]string{"--config", configFile, "snowball", "some-seed"})
	require.NoError(t, testRootCmd.ExecuteContext(context.Background()))
	require.NotNil(t, appConfig)
	assert.Equal(t, 7, viper.GetInt("collect.target_count"))

	// An explicit flag overrides the config file.
	testRootCmd.SetArgs([]string{"--config", configFile, "snowball", "some-seed", "--target", "9"})
	require.NoError(t, testRootCmd.ExecuteContext(context.Background()))
	assert.Equal(t, 9, viper.GetInt("collect.target_count"))
}
