package run

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNiceArgs(t *testing.T) {
	args := NiceArgs("tar", "cvf", "test.tar", "/tmp")
	assert.Equal(t, []string{"nice", "nice", "ionice", "--class", "3", "tar", "cvf", "test.tar", "/tmp"}, args)
}

func TestNiceArgsEmpty(t *testing.T) {
	assert.Equal(t, []string{"nice", "nice", "ionice", "--class", "3"}, NiceArgs())
}

func TestNiceArgsDoesNotMutateInput(t *testing.T) {
	args := []string{"du", "-sh"}
	NiceArgs(args...)
	assert.Equal(t, []string{"du", "-sh"}, args)
}

func TestNiceDelegatesToRun(t *testing.T) {
	mock := newMockRunner()
	_, err := NewNice(mock).Run("tar", "cvf", "test.tar")
	require.NoError(t, err)

	require.Len(t, mock.runCalls, 1)
	assert.Equal(t, NiceArgs("tar", "cvf", "test.tar"), mock.runCalls[0])
}

func TestNiceFailureClassification(t *testing.T) {
	// Nice shares the synchronous execution path, so success and failure
	// behave exactly like Run. Exercised through a prefix that replaces the
	// launcher sequence with something runnable everywhere.
	runner := NewPrefixed(New(), "sh", "-c")

	result, err := runner.Run("echo niced")
	require.NoError(t, err)
	assert.Equal(t, "niced", result.Stdout)

	_, err = runner.Run("exit 7")
	require.Error(t, err)
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 7, exitErr.ExitCode)
}
