package run

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRunner records the argument lists passed to Run and Start.
type mockRunner struct {
	runCalls   [][]string
	startCalls [][]string
	envCalls   []map[string]string
	dirCalls   []string
}

func newMockRunner() *mockRunner {
	return &mockRunner{}
}

func (m *mockRunner) WithEnv(env map[string]string) Runner {
	m.envCalls = append(m.envCalls, env)
	return m
}

func (m *mockRunner) WithDir(dir string) Runner {
	m.dirCalls = append(m.dirCalls, dir)
	return m
}

func (m *mockRunner) WithContext(ctx context.Context) Runner  { return m }
func (m *mockRunner) WithDisableColors() Runner               { return m }
func (m *mockRunner) WithTimeout(timeout string) Runner       { return m }
func (m *mockRunner) WithInheritEnv() Runner                  { return m }
func (m *mockRunner) WithStdout(w io.Writer) Runner           { return m }
func (m *mockRunner) WithStderr(w io.Writer) Runner           { return m }
func (m *mockRunner) WithInteractive(interactive bool) Runner { return m }
func (m *mockRunner) WithGlob(glob bool) Runner               { return m }
func (m *mockRunner) WithRawOutput() Runner                   { return m }
func (m *mockRunner) WithVerbose() Runner                     { return m }

func (m *mockRunner) Run(args ...string) (*Result, error) {
	m.runCalls = append(m.runCalls, args)
	return &Result{Args: args, Stdout: "mock output", Combined: "mock output"}, nil
}

func (m *mockRunner) RunLine(line string) (*Result, error) {
	args, err := splitLine(line)
	if err != nil {
		return nil, err
	}
	return m.Run(args...)
}

func (m *mockRunner) RunVerbose(args ...string) (*Result, error) {
	return m.Run(args...)
}

func (m *mockRunner) Nice(args ...string) (*Result, error) {
	return m.Run(NiceArgs(args...)...)
}

func (m *mockRunner) Start(args ...string) (*Handle, error) {
	m.startCalls = append(m.startCalls, args)
	return &Handle{args: args}, nil
}

func (m *mockRunner) StartLine(line string) (*Handle, error) {
	args, err := splitLine(line)
	if err != nil {
		return nil, err
	}
	return m.Start(args...)
}

func (m *mockRunner) Clone() Runner { return m }

func TestNewPrefixed(t *testing.T) {
	prefixed := NewPrefixed(New(), "echo")
	require.NotNil(t, prefixed)
}

func TestPrefixedBasicExecution(t *testing.T) {
	echo := NewPrefixed(New(), "echo")

	result, err := echo.Run("hello", "world")
	require.NoError(t, err)
	assert.Equal(t, "hello world", result.Stdout)
	assert.Equal(t, 0, result.ExitCode)
}

func TestPrefixedWithDir(t *testing.T) {
	pwd := NewPrefixed(New(), "pwd")

	result, err := pwd.WithDir("/tmp").Run()
	require.NoError(t, err)
	assert.True(t, strings.Contains(result.Stdout, "/tmp"))
}

func TestPrefixedWithMock(t *testing.T) {
	mock := newMockRunner()
	git := NewPrefixed(mock, "git")

	result, err := git.
		WithEnv(map[string]string{"TEST_VAR": "test_value"}).
		WithDir("/test/dir").
		Run("status")
	require.NoError(t, err)
	assert.Equal(t, "mock output", result.Stdout)

	require.Len(t, mock.runCalls, 1)
	assert.Equal(t, []string{"git", "status"}, mock.runCalls[0])

	require.Len(t, mock.envCalls, 1)
	assert.Equal(t, "test_value", mock.envCalls[0]["TEST_VAR"])

	require.Len(t, mock.dirCalls, 1)
	assert.Equal(t, "/test/dir", mock.dirCalls[0])
}

func TestPrefixedRunLine(t *testing.T) {
	mock := newMockRunner()
	git := NewPrefixed(mock, "git")

	_, err := git.RunLine("commit -m 'x y'")
	require.NoError(t, err)

	require.Len(t, mock.runCalls, 1)
	assert.Equal(t, []string{"git", "commit", "-m", "x y"}, mock.runCalls[0])
}

func TestPrefixedRunLineTokenizeErrorResetsLocals(t *testing.T) {
	runner := New()
	git := NewPrefixed(runner, "git")

	_, err := git.WithGlob(false).RunLine("log 'unterminated")
	require.Error(t, err)
	assert.True(t, IsInvalidInput(err))

	assert.True(t, runner.config.effectiveGlob(),
		"local settings on the wrapped runner should reset after a failed RunLine")
}

func TestPrefixedStart(t *testing.T) {
	mock := newMockRunner()
	daemon := NewPrefixed(mock, "my-daemon", "--foreground")

	_, err := daemon.Start("--port", "8080")
	require.NoError(t, err)

	require.Len(t, mock.startCalls, 1)
	assert.Equal(t, []string{"my-daemon", "--foreground", "--port", "8080"}, mock.startCalls[0])
}

func TestPrefixedNesting(t *testing.T) {
	mock := newMockRunner()
	inner := NewPrefixed(mock, "env")
	outer := NewPrefixed(inner, "FOO=bar")

	_, err := outer.Run("printenv", "FOO")
	require.NoError(t, err)

	require.Len(t, mock.runCalls, 1)
	assert.Equal(t, []string{"env", "FOO=bar", "printenv", "FOO"}, mock.runCalls[0])
}

func TestPrefixedClone(t *testing.T) {
	echo := NewPrefixed(New(), "echo")
	clone := echo.Clone()

	result, err := clone.Run("cloned")
	require.NoError(t, err)
	assert.Equal(t, "cloned", result.Stdout)
}
