package run

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"os"
	osexec "os/exec"
	"strings"
	"time"

	"github.com/google/shlex"
	"github.com/jmgilman/go/errors"
	"github.com/sirupsen/logrus"
)

// Command is the concrete implementation of the Runner interface.
// It provides command execution with configurable settings and an injected
// logging collaborator.
type Command struct {
	config         *config
	ctx            context.Context
	stdout         io.Writer
	stderr         io.Writer
	timeout        string
	defaultTimeout string
	log            logrus.FieldLogger

	// startProcess spawns a prepared background command.
	// Injectable so tests can exercise spawn faults.
	startProcess func(cmd *osexec.Cmd) error
}

// New creates a new Command with the given options.
// Options set global defaults that can be overridden by local settings.
func New(opts ...Option) *Command {
	cmd := &Command{
		config:       newConfig(),
		ctx:          context.Background(),
		log:          logrus.StandardLogger(),
		startProcess: (*osexec.Cmd).Start,
	}

	// Apply global options
	for _, opt := range opts {
		opt(cmd)
	}

	return cmd
}

// WithEnv sets environment variables for the command.
func (c *Command) WithEnv(env map[string]string) Runner {
	for k, v := range env {
		c.config.localEnv[k] = v
	}
	return c
}

// WithDir sets the working directory for the command.
func (c *Command) WithDir(dir string) Runner {
	c.config.localDir = dir
	return c
}

// WithContext sets the context for the command.
func (c *Command) WithContext(ctx context.Context) Runner {
	c.ctx = ctx
	return c
}

// WithDisableColors disables color output.
func (c *Command) WithDisableColors() Runner {
	val := true
	c.config.localDisableColors = &val
	return c
}

// WithTimeout sets a timeout for the command.
func (c *Command) WithTimeout(timeout string) Runner {
	c.timeout = timeout
	return c
}

// WithInheritEnv enables environment inheritance.
func (c *Command) WithInheritEnv() Runner {
	val := true
	c.config.localInheritEnv = &val
	return c
}

// WithStdout redirects stdout to the given writer instead of capturing it.
func (c *Command) WithStdout(w io.Writer) Runner {
	c.stdout = w
	return c
}

// WithStderr redirects stderr to the given writer instead of capturing it.
func (c *Command) WithStderr(w io.Writer) Runner {
	c.stderr = w
	return c
}

// WithInteractive attaches or detaches the controlling standard streams.
func (c *Command) WithInteractive(interactive bool) Runner {
	c.config.localInteractive = &interactive
	return c
}

// WithGlob enables or disables wildcard expansion of arguments.
func (c *Command) WithGlob(glob bool) Runner {
	c.config.localGlob = &glob
	return c
}

// WithRawOutput disables text decoding of captured output.
func (c *Command) WithRawOutput() Runner {
	val := true
	c.config.localRawOutput = &val
	return c
}

// WithVerbose enables verbose logging for the next execution.
func (c *Command) WithVerbose() Runner {
	val := true
	c.config.localVerbose = &val
	return c
}

// Run executes the command synchronously with the given arguments.
func (c *Command) Run(args ...string) (*Result, error) {
	return c.run(args)
}

// RunLine tokenizes line with shell-style word splitting and runs it.
func (c *Command) RunLine(line string) (*Result, error) {
	args, err := splitLine(line)
	if err != nil {
		// Local settings must not outlive a failed invocation.
		c.reset()
		return nil, err
	}
	return c.run(args)
}

// RunVerbose runs the command with interactive mode enabled unless the caller
// explicitly set it, streaming output to the controlling terminal.
func (c *Command) RunVerbose(args ...string) (*Result, error) {
	if c.config.localInteractive == nil {
		c.WithInteractive(true)
	}
	return c.run(args)
}

// Nice runs the command under reduced CPU and IO priority.
//
// The IO-priority launcher must immediately precede the executable it
// targets, so the command must not already be wrapped in another launcher
// (a shell, sudo, etc.) or only the wrapper is reniced.
func (c *Command) Nice(args ...string) (*Result, error) {
	return c.run(NiceArgs(args...))
}

// Clone creates a copy of the runner with the same configuration.
func (c *Command) Clone() Runner {
	return &Command{
		config:         c.config.clone(),
		ctx:            c.ctx,
		stdout:         c.stdout,
		stderr:         c.stderr,
		defaultTimeout: c.defaultTimeout,
		log:            c.log,
		startProcess:   c.startProcess,
	}
}

// run executes a resolved argument list to completion.
func (c *Command) run(args []string) (*Result, error) {
	defer c.reset()

	if len(args) == 0 {
		return nil, errors.New(errors.CodeInvalidInput, "missing command")
	}

	resolved := expandArgs(args, c.config.effectiveGlob())
	if len(resolved) == 0 {
		return nil, errors.Newf(errors.CodeInvalidInput, "command is empty after wildcard expansion: %v", args)
	}

	verbose := c.config.effectiveVerbose()
	if verbose {
		c.log.WithFields(logrus.Fields{
			"args": resolved,
			"dir":  c.config.effectiveDir(),
			"env":  c.config.effectiveEnv(),
		}).Debug("running command")
	}

	// Apply timeout if set
	ctx := c.ctx
	timeout := c.timeout
	if timeout == "" {
		timeout = c.defaultTimeout
	}
	if timeout != "" {
		duration, err := time.ParseDuration(timeout)
		if err != nil {
			return nil, errors.Wrapf(err, errors.CodeInvalidInput, "invalid timeout %q", timeout)
		}
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, duration)
		defer cancel()
	}

	cmd := osexec.CommandContext(ctx, resolved[0], resolved[1:]...)
	c.applySpawnConfig(cmd)

	// Capture by default; interactive mode and caller-supplied writers
	// take the place of the pipes.
	var stdout, stderr *bytes.Buffer
	if c.config.effectiveInteractive() {
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	} else {
		if c.stdout != nil {
			cmd.Stdout = c.stdout
		} else {
			stdout = &bytes.Buffer{}
			cmd.Stdout = stdout
		}
		if c.stderr != nil {
			cmd.Stderr = c.stderr
		} else {
			stderr = &bytes.Buffer{}
			cmd.Stderr = stderr
		}
	}

	err := cmd.Run()

	result := &Result{
		Args:     resolved,
		ExitCode: exitCodeOf(cmd),
	}
	if stdout != nil {
		result.RawStdout = stdout.Bytes()
	}
	if stderr != nil {
		result.RawStderr = stderr.Bytes()
	}
	formatResult(result, c.config.effectiveRawOutput())

	if err != nil {
		commandLine := strings.Join(resolved, " ")

		if ctx.Err() == context.DeadlineExceeded {
			c.log.WithFields(logrus.Fields{
				"command": commandLine,
				"timeout": timeout,
			}).Warn("command timed out")
			if timeout == "" {
				return result, errors.Wrapf(err, errors.CodeTimeout, "command deadline exceeded: %s", commandLine)
			}
			return result, errors.Wrapf(err, errors.CodeTimeout, "command timed out after %s: %s", timeout, commandLine)
		}

		var exitErr *osexec.ExitError
		if stderrors.As(err, &exitErr) {
			failure := &ExitError{
				Args:     resolved,
				ExitCode: result.ExitCode,
				Stdout:   result.Stdout,
				Stderr:   result.Stderr,
				Combined: result.Combined,
				Err:      err,
			}
			c.log.WithFields(logrus.Fields{
				"command":   commandLine,
				"exit_code": result.ExitCode,
				"output":    result.Combined,
			}).Warn("command failed")
			return result, failure
		}

		// Spawn fault: log the fault type and message, then propagate
		// classified but otherwise unchanged.
		c.log.WithFields(logrus.Fields{
			"command": commandLine,
			"error":   err.Error(),
		}).Warnf("command could not be spawned: %T", err)
		return nil, classifySpawnError(err)
	}

	if verbose {
		c.log.WithFields(logrus.Fields{
			"args":      resolved,
			"exit_code": result.ExitCode,
		}).Debug("command succeeded")
	}

	return result, nil
}

// applySpawnConfig sets the working directory and environment on cmd.
func (c *Command) applySpawnConfig(cmd *osexec.Cmd) {
	if dir := c.config.effectiveDir(); dir != "" {
		cmd.Dir = dir
	}
	if c.config.effectiveInheritEnv() {
		cmd.Env = os.Environ()
	}
	for k, v := range c.config.effectiveEnv() {
		cmd.Env = append(cmd.Env, k+"="+v)
	}
}

// reset clears per-execution settings so they don't leak into the next run.
func (c *Command) reset() {
	c.config.resetLocal()
	c.timeout = ""
}

// splitLine tokenizes a command line using shell-style word splitting.
func splitLine(line string) ([]string, error) {
	args, err := shlex.Split(line)
	if err != nil {
		return nil, errors.Wrapf(err, errors.CodeInvalidInput, "cannot tokenize command line %q", line)
	}
	return args, nil
}

// exitCodeOf reports the exit code of a finished command, or -1 if the
// process never ran.
func exitCodeOf(cmd *osexec.Cmd) int {
	if cmd.ProcessState == nil {
		return -1
	}
	return cmd.ProcessState.ExitCode()
}
