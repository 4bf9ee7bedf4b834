package run

import (
	"context"
	"io"
)

// Prefixed wraps a Runner and prepends a fixed argument sequence to every
// invocation. It is convenient for launcher programs (nice, ionice, env) and
// for tools that are always called through the same executable.
// Prefixed implements the Runner interface, so it can be used anywhere a
// Runner is expected, including as the input to another Prefixed.
type Prefixed struct {
	runner Runner
	prefix []string
}

// NewPrefixed creates a Runner that prepends prefix to all executions.
// The runner parameter can be any implementation of the Runner interface,
// including mock runners for testing.
func NewPrefixed(runner Runner, prefix ...string) *Prefixed {
	return &Prefixed{
		runner: runner,
		prefix: prefix,
	}
}

// WithEnv sets environment variables for the command.
func (p *Prefixed) WithEnv(env map[string]string) Runner {
	p.runner = p.runner.WithEnv(env)
	return p
}

// WithDir sets the working directory for the command.
func (p *Prefixed) WithDir(dir string) Runner {
	p.runner = p.runner.WithDir(dir)
	return p
}

// WithContext sets the context for the command.
func (p *Prefixed) WithContext(ctx context.Context) Runner {
	p.runner = p.runner.WithContext(ctx)
	return p
}

// WithDisableColors disables color output.
func (p *Prefixed) WithDisableColors() Runner {
	p.runner = p.runner.WithDisableColors()
	return p
}

// WithTimeout sets a timeout for the command.
func (p *Prefixed) WithTimeout(timeout string) Runner {
	p.runner = p.runner.WithTimeout(timeout)
	return p
}

// WithInheritEnv enables environment inheritance.
func (p *Prefixed) WithInheritEnv() Runner {
	p.runner = p.runner.WithInheritEnv()
	return p
}

// WithStdout redirects stdout to the given writer.
func (p *Prefixed) WithStdout(w io.Writer) Runner {
	p.runner = p.runner.WithStdout(w)
	return p
}

// WithStderr redirects stderr to the given writer.
func (p *Prefixed) WithStderr(w io.Writer) Runner {
	p.runner = p.runner.WithStderr(w)
	return p
}

// WithInteractive attaches or detaches the controlling standard streams.
func (p *Prefixed) WithInteractive(interactive bool) Runner {
	p.runner = p.runner.WithInteractive(interactive)
	return p
}

// WithGlob enables or disables wildcard expansion of arguments.
func (p *Prefixed) WithGlob(glob bool) Runner {
	p.runner = p.runner.WithGlob(glob)
	return p
}

// WithRawOutput disables text decoding of captured output.
func (p *Prefixed) WithRawOutput() Runner {
	p.runner = p.runner.WithRawOutput()
	return p
}

// WithVerbose enables verbose logging for the next execution.
func (p *Prefixed) WithVerbose() Runner {
	p.runner = p.runner.WithVerbose()
	return p
}

// Run executes the wrapped command with the prefix prepended.
func (p *Prefixed) Run(args ...string) (*Result, error) {
	return p.runner.Run(p.compose(args)...)
}

// RunLine tokenizes line, prepends the prefix, and runs the result.
func (p *Prefixed) RunLine(line string) (*Result, error) {
	args, err := splitLine(line)
	if err != nil {
		// Hand the unparseable line to the runner so per-execution
		// settings are reset in one place.
		return p.runner.RunLine(line)
	}
	return p.runner.Run(p.compose(args)...)
}

// RunVerbose runs the prefixed command interactively by default.
func (p *Prefixed) RunVerbose(args ...string) (*Result, error) {
	return p.runner.RunVerbose(p.compose(args)...)
}

// Nice runs the prefixed command at low priority. Note that the IO-priority
// launcher only affects the first program in the composed command line, which
// for a non-launcher prefix is the prefix itself.
func (p *Prefixed) Nice(args ...string) (*Result, error) {
	return p.runner.Nice(p.compose(args)...)
}

// Start launches the prefixed command in the background.
func (p *Prefixed) Start(args ...string) (*Handle, error) {
	return p.runner.Start(p.compose(args)...)
}

// StartLine tokenizes line, prepends the prefix, and launches the result in
// the background.
func (p *Prefixed) StartLine(line string) (*Handle, error) {
	args, err := splitLine(line)
	if err != nil {
		// Hand the unparseable line to the runner so per-execution
		// settings are reset in one place.
		return p.runner.StartLine(line)
	}
	return p.runner.Start(p.compose(args)...)
}

// Clone creates a copy of the wrapper with the same configuration.
func (p *Prefixed) Clone() Runner {
	return &Prefixed{
		runner: p.runner.Clone(),
		prefix: p.prefix,
	}
}

// compose prepends the prefix to args.
func (p *Prefixed) compose(args []string) []string {
	composed := make([]string, 0, len(p.prefix)+len(args))
	composed = append(composed, p.prefix...)
	return append(composed, args...)
}
