package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	b := bytes.NewBufferString("")
	rootCmd.SetOut(b)
	rootCmd.SetErr(b)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return b.String(), err
}

func TestRootCmdHelp(t *testing.T) {
	out, err := execute(t, "--help")
	assert.NoError(t, err)
	assert.Contains(t, out, "NoteWell extraction evaluation harness")
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "compare")
}

func TestVersion(t *testing.T) {
	assert.Equal(t, "0.1.0", GetVersion())

	out, err := execute(t, "version")
	assert.NoError(t, err)
	assert.Contains(t, out, "notewell-eval 0.1.0")
}

func TestStrategiesCmd(t *testing.T) {
	out, err := execute(t, "strategies")
	assert.NoError(t, err)
	assert.Contains(t, out, "lexical")
	assert.Contains(t, out, "embedding")
	assert.Contains(t, out, "hybrid")
}

func TestScenariosCmd(t *testing.T) {
	out, err := execute(t, "scenarios")
	assert.NoError(t, err)
	assert.Contains(t, out, "journal-week")
	assert.Contains(t, out, "meeting-decisions")
	assert.Contains(t, out, "learning-log")
}

func TestRunCmdUnknownStrategy(t *testing.T) {
	_, err := execute(t, "run", "--strategy", "telepathy")
	assert.Error(t, err)
}

func TestRunCmdUnknownScenario(t *testing.T) {
	_, err := execute(t, "run", "--strategy", "lexical", "--scenario", "does-not-exist")
	assert.Error(t, err)
}

// Offline run: no credential configured, so similarity comes from the
// local approximation and nothing leaves the process.
func TestRunCmdOffline(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	out, err := execute(t, "run", "--strategy", "lexical", "--scenario", "journal-week", "--ci")
	assert.NoError(t, err, "journal-week passes the gate with the lexical strategy")
	assert.Contains(t, out, "strategy=lexical")
	assert.Contains(t, out, "gate=pass")
}

func TestCompareCmdWritesOutput(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	fs := afero.NewMemMapFs()
	orig := scenarioFs
	scenarioFs = func() afero.Fs { return fs }
	t.Cleanup(func() { scenarioFs = orig })

	out, err := execute(t, "compare", "--scenario", "journal-week", "--ci", "--output", "reports/compare.json")
	require.NoError(t, err)
	assert.Contains(t, out, "strategy=")
	assert.Contains(t, out, "gate=pass")

	exists, err := afero.Exists(fs, "reports/compare.json")
	require.NoError(t, err)
	assert.True(t, exists)
}
