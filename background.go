package run

import (
	stderrors "errors"
	"io"
	"os"
	osexec "os/exec"
	"strings"

	"github.com/jmgilman/go/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// Handle is an opaque reference to a live background process.
// The caller owns the handle until it is passed to Wait or WaitChild, which
// reaps the process and invalidates the handle. A handle that is never
// reaped leaves a zombie entry in the OS process table.
type Handle struct {
	cmd    *osexec.Cmd
	args   []string
	waited bool
	code   int
}

// Pid returns the operating-system process identifier.
func (h *Handle) Pid() int {
	if h.cmd == nil || h.cmd.Process == nil {
		return -1
	}
	return h.cmd.Process.Pid
}

// Args returns the fully composed argument list that was spawned, including
// the shell interpreter when the shebang recovery path was taken.
func (h *Handle) Args() []string {
	return h.args
}

// String returns the composed command line.
func (h *Handle) String() string {
	return strings.Join(h.args, " ")
}

// Wait blocks until the process exits, then reaps its OS-level entry and
// invalidates the handle. The child's exit status is not surfaced as an
// error; call ExitCode afterwards when it matters. Waiting on an invalidated
// handle is an invalid-input error.
func (h *Handle) Wait() error {
	if h == nil || h.cmd == nil {
		return errors.New(errors.CodeInvalidInput, "not a background process handle")
	}
	if h.waited {
		return errors.New(errors.CodeInvalidInput, "background process already reaped")
	}
	h.waited = true

	err := h.cmd.Wait()
	if h.cmd.ProcessState != nil {
		h.code = h.cmd.ProcessState.ExitCode()
	}

	// A non-zero exit still reaps successfully.
	var exitErr *osexec.ExitError
	if err != nil && !stderrors.As(err, &exitErr) {
		return errors.Wrap(err, errors.CodeInternal, "wait failed")
	}
	return nil
}

// ExitCode returns the exit code recorded by Wait, or -1 if the process has
// not been reaped yet.
func (h *Handle) ExitCode() int {
	if h == nil || !h.waited {
		return -1
	}
	return h.code
}

// WaitChild blocks until the referenced background process terminates and
// reaps it. It fails with an invalid-input error when given a nil or
// already-consumed handle.
func WaitChild(h *Handle) error {
	if h == nil || h.cmd == nil {
		return errors.New(errors.CodeInvalidInput, "not a background process handle")
	}
	return h.Wait()
}

// Start launches the command in the background without waiting for it.
func (c *Command) Start(args ...string) (*Handle, error) {
	return c.start(args)
}

// StartLine tokenizes line with shell-style word splitting and launches it in
// the background.
func (c *Command) StartLine(line string) (*Handle, error) {
	args, err := splitLine(line)
	if err != nil {
		// Local settings must not outlive a failed invocation.
		c.reset()
		return nil, err
	}
	return c.start(args)
}

// start spawns a background process. Arguments are passed to the OS as
// given; background commands are not globbed.
func (c *Command) start(args []string) (*Handle, error) {
	defer c.reset()

	if len(args) == 0 {
		return nil, errors.New(errors.CodeInvalidInput, "missing command")
	}

	cmd := c.buildBackgroundCmd(args)
	err := c.startProcess(cmd)
	if err != nil {
		cmd, err = c.retryWithShell(args, err)
		if err != nil {
			return nil, err
		}
	}

	handle := &Handle{cmd: cmd, args: cmd.Args, code: -1}
	c.log.WithFields(logrus.Fields{
		"command": handle.String(),
		"pid":     handle.Pid(),
	}).Debug("background process started")

	return handle, nil
}

// buildBackgroundCmd prepares a command whose streams are inherited from the
// parent process unless the caller supplied writers.
func (c *Command) buildBackgroundCmd(args []string) *osexec.Cmd {
	cmd := osexec.CommandContext(c.ctx, args[0], args[1:]...)
	c.applySpawnConfig(cmd)

	var stdout io.Writer = os.Stdout
	var stderr io.Writer = os.Stderr
	if c.stdout != nil {
		stdout = c.stdout
	}
	if c.stderr != nil {
		stderr = c.stderr
	}
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if c.config.effectiveInteractive() {
		cmd.Stdin = os.Stdin
	}

	return cmd
}

// retryWithShell recovers from an exec-format spawn fault by delegating a
// shebang script to a shell interpreter. Any other fault, or a target without
// an interpreter directive, propagates the original fault.
func (c *Command) retryWithShell(args []string, spawnErr error) (*osexec.Cmd, error) {
	commandLine := strings.Join(args, " ")

	if !stderrors.Is(spawnErr, unix.ENOEXEC) {
		c.log.WithFields(logrus.Fields{
			"command": commandLine,
			"error":   spawnErr.Error(),
		}).Debugf("background command could not be spawned: %T", spawnErr)
		return nil, classifySpawnError(spawnErr)
	}

	if !hasShebang(args[0]) {
		c.log.WithField("command", commandLine).Debugf("no #! in %s", args[0])
		return nil, classifySpawnError(spawnErr)
	}

	cmd := c.buildBackgroundCmd(append([]string{"/bin/sh"}, args...))
	if err := c.startProcess(cmd); err != nil {
		return nil, classifySpawnError(err)
	}
	return cmd, nil
}

// hasShebang reports whether the file at path begins with the #! marker.
func hasShebang(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	marker := make([]byte, 2)
	if _, err := io.ReadFull(f, marker); err != nil {
		return false
	}
	return string(marker) == "#!"
}
