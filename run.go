package run

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
)

// Runner is the main interface for running local commands.
// It provides a fluent API for configuring and launching processes, both
// synchronously (Run and friends) and in the background (Start and friends).
type Runner interface {
	// WithEnv sets environment variables for the command.
	// These are local settings that override any global environment variables.
	WithEnv(env map[string]string) Runner

	// WithDir sets the working directory for the command.
	// This is a local setting that overrides any global working directory.
	WithDir(dir string) Runner

	// WithContext sets the context for the command.
	// The command will be killed if the context is canceled.
	WithContext(ctx context.Context) Runner

	// WithDisableColors disables color output by setting common environment variables.
	// This sets NO_COLOR=1, TERM=dumb, and other common color-disabling variables.
	WithDisableColors() Runner

	// WithTimeout sets a timeout for synchronous command execution.
	// On expiry the command is killed and a timeout error is returned,
	// distinguishable from a non-zero-exit failure via IsTimeout.
	WithTimeout(timeout string) Runner

	// WithInheritEnv inherits environment variables from the parent process.
	WithInheritEnv() Runner

	// WithStdout redirects the command's stdout to w instead of capturing it.
	// The Result for such a run has a nil RawStdout.
	WithStdout(w io.Writer) Runner

	// WithStderr redirects the command's stderr to w instead of capturing it.
	// The Result for such a run has a nil RawStderr.
	WithStderr(w io.Writer) Runner

	// WithInteractive attaches the controlling stdin, stdout and stderr to the
	// command instead of capturing output. Useful for commands that prompt.
	WithInteractive(interactive bool) Runner

	// WithGlob enables or disables filesystem wildcard expansion of arguments.
	// Globbing is enabled by default. A wildcard argument that matches nothing
	// is dropped from the command line, not passed through literally.
	WithGlob(glob bool) Runner

	// WithRawOutput skips text decoding of the captured output. The Result
	// carries the raw bytes only; Stdout and Stderr are left empty.
	WithRawOutput() Runner

	// WithVerbose logs the resolved argument list and settings before and
	// after execution.
	WithVerbose() Runner

	// Run executes the command synchronously with the given pre-split
	// arguments and returns a Result containing the captured output and exit
	// code. A non-zero exit returns both the Result and an *ExitError.
	Run(args ...string) (*Result, error)

	// RunLine tokenizes a single command line using shell-style word
	// splitting, then behaves like Run.
	RunLine(line string) (*Result, error)

	// RunVerbose runs the command with interactive mode enabled by default,
	// streaming output to the controlling terminal. An explicit
	// WithInteractive(false) overrides the default.
	RunVerbose(args ...string) (*Result, error)

	// Nice runs the command under reduced CPU and IO priority by prefixing it
	// with the launcher sequence produced by NiceArgs.
	Nice(args ...string) (*Result, error)

	// Start launches the command in the background without waiting and
	// returns a Handle. The caller owns the handle and must reap the process
	// with Wait or WaitChild to avoid leaving a zombie entry behind.
	Start(args ...string) (*Handle, error)

	// StartLine tokenizes a single command line using shell-style word
	// splitting, then behaves like Start.
	StartLine(line string) (*Handle, error)

	// Clone creates a copy of the runner with the same configuration.
	Clone() Runner
}

// Result represents the outcome of a synchronous command execution.
type Result struct {
	// Args is the argument list actually executed, after wildcard expansion.
	Args []string

	// ExitCode is the exit code reported by the operating system.
	ExitCode int

	// RawStdout holds the captured stdout bytes. It is nil when stdout was
	// not captured (interactive mode or a caller-supplied writer).
	RawStdout []byte

	// RawStderr holds the captured stderr bytes. It is nil when stderr was
	// not captured.
	RawStderr []byte

	// Stdout is the decoded, whitespace-trimmed stdout. Empty in raw mode.
	Stdout string

	// Stderr is the decoded, whitespace-trimmed stderr. Empty in raw mode.
	Stderr string

	// Combined is the trimmed stderr concatenated with the trimmed stdout,
	// used for unified failure diagnostics. It is populated whenever at least
	// one stream was captured.
	Combined string
}

// Option is a function that configures a Command with global settings.
// These settings are applied at creation time and can be overridden by local settings.
type Option func(*Command)

// WithEnv returns an Option that sets global environment variables.
func WithEnv(env map[string]string) Option {
	return func(c *Command) {
		c.WithEnv(env)
	}
}

// WithDir returns an Option that sets the global working directory.
func WithDir(dir string) Option {
	return func(c *Command) {
		c.WithDir(dir)
	}
}

// WithContext returns an Option that sets the global context.
func WithContext(ctx context.Context) Option {
	return func(c *Command) {
		c.WithContext(ctx)
	}
}

// WithDisableColors returns an Option that globally disables color output.
func WithDisableColors() Option {
	return func(c *Command) {
		c.WithDisableColors()
	}
}

// WithTimeout returns an Option that sets a global timeout.
// A per-execution WithTimeout overrides it.
func WithTimeout(timeout string) Option {
	return func(c *Command) {
		c.defaultTimeout = timeout
	}
}

// WithInheritEnv returns an Option that globally enables environment inheritance.
func WithInheritEnv() Option {
	return func(c *Command) {
		c.WithInheritEnv()
	}
}

// WithStdout returns an Option that sets the global stdout writer.
func WithStdout(w io.Writer) Option {
	return func(c *Command) {
		c.WithStdout(w)
	}
}

// WithStderr returns an Option that sets the global stderr writer.
func WithStderr(w io.Writer) Option {
	return func(c *Command) {
		c.WithStderr(w)
	}
}

// WithGlob returns an Option that globally enables or disables globbing.
func WithGlob(glob bool) Option {
	return func(c *Command) {
		c.config.globalGlob = glob
	}
}

// WithRawOutput returns an Option that globally disables output decoding.
func WithRawOutput() Option {
	return func(c *Command) {
		c.config.globalRawOutput = true
	}
}

// WithVerbose returns an Option that globally enables verbose logging.
func WithVerbose() Option {
	return func(c *Command) {
		c.config.globalVerbose = true
	}
}

// WithLogger returns an Option that sets the logging collaborator.
// The runner writes leveled diagnostic lines describing resolved arguments,
// successes and failures; it never reads from the logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Command) {
		c.log = log
	}
}
