package run

import (
	stderrors "errors"
	"os"
	osexec "os/exec"
	"path/filepath"
	"testing"

	platformerrors "github.com/jmgilman/go/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitErrorMessage(t *testing.T) {
	err := &ExitError{
		Args:     []string{"ls", "-l"},
		ExitCode: 2,
	}
	assert.Equal(t, "command [ls -l] failed with exit code 2", err.Error())
}

func TestExitErrorUnwrap(t *testing.T) {
	underlying := stderrors.New("boom")
	err := &ExitError{Err: underlying}
	assert.True(t, stderrors.Is(err, underlying))
}

func TestClassifySpawnError(t *testing.T) {
	assert.NoError(t, classifySpawnError(nil))

	notFound := &osexec.Error{Name: "missing", Err: osexec.ErrNotFound}
	assert.Equal(t, platformerrors.CodeNotFound, platformerrors.GetCode(classifySpawnError(notFound)))

	denied := &os.PathError{Op: "fork/exec", Path: "/etc/shadow", Err: os.ErrPermission}
	assert.Equal(t, platformerrors.CodeForbidden, platformerrors.GetCode(classifySpawnError(denied)))

	other := stderrors.New("weird fault")
	assert.Equal(t, platformerrors.CodeInternal, platformerrors.GetCode(classifySpawnError(other)))
}

func TestClassificationPreservesOriginalFault(t *testing.T) {
	notFound := &osexec.Error{Name: "missing", Err: osexec.ErrNotFound}
	classified := classifySpawnError(notFound)
	assert.True(t, stderrors.Is(classified, osexec.ErrNotFound), "original fault must stay in the chain")
}

func TestRunMissingExecutable(t *testing.T) {
	runner := New()
	result, err := runner.Run("definitely-not-a-real-command-xyz")
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, platformerrors.CodeNotFound, platformerrors.GetCode(err))
}

func TestRunPermissionDenied(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "locked")
	require.NoError(t, os.WriteFile(target, []byte("#!/bin/sh\n"), 0o644))

	runner := New()
	_, err := runner.Run(target)
	require.Error(t, err)
	assert.Equal(t, platformerrors.CodeForbidden, platformerrors.GetCode(err))
}

func TestTimeoutClassification(t *testing.T) {
	runner := New()
	_, err := runner.WithTimeout("50ms").Run("sleep", "1")
	require.Error(t, err)
	assert.Equal(t, platformerrors.CodeTimeout, platformerrors.GetCode(err))
	assert.True(t, platformerrors.IsRetryable(err), "timeouts are retry-worthy")
}

func TestExitFailureNotRetryable(t *testing.T) {
	runner := New()
	_, err := runner.Run("false")
	require.Error(t, err)
	assert.False(t, platformerrors.IsRetryable(err))
}
