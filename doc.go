// Package run provides a testable interface for launching local processes with a uniform contract.
//
// This package wraps the standard library's os/exec, providing the Command struct
// that implements the Runner interface. Following Go best practices, the package
// returns concrete types (Command, Prefixed, Handle) while accepting interfaces in
// function parameters, making it easy to mock command execution in tests. On top
// of plain execution it adds filesystem wildcard expansion of arguments, decoded
// and trimmed output with a combined error-and-output string, background spawning
// with explicit wait semantics, and priority-lowered execution.
//
// # Basic Usage
//
// Create a runner and run a command:
//
//	runner := run.New()
//	result, err := runner.Run("echo", "word1", "word2")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(result.Stdout) // "word1 word2"
//
// Captured output is decoded and trimmed of surrounding whitespace. Use
// WithRawOutput to work with the captured bytes instead.
//
// # Argument Expansion
//
// Arguments containing * or ? are expanded against the filesystem by default:
//
//	result, err := runner.Run("ls", "-l", "/tmp/report*")
//
// Quote-encased arguments are never expanded, preserving intentional literal
// wildcards such as passing "*" to echo:
//
//	result, err := runner.Run("echo", `"*"`)
//
// A wildcard argument that matches nothing is dropped from the command line,
// not passed through literally. A mistyped path therefore silently vanishes
// from the command; disable globbing with WithGlob(false) when the argument
// must survive verbatim.
//
// # Two Calling Conventions
//
// Commands can be passed as a pre-split argument list or as a single line to
// be tokenized with shell-style word splitting:
//
//	result, err := runner.Run("ls", "-l", "/tmp")
//	result, err := runner.RunLine("ls -l /tmp")
//
// The same split exists for background execution: Start and StartLine.
//
// # Configuration
//
// The package supports both global configuration (set at creation time) and
// local configuration (set per-execution). Local settings always override global settings:
//
//	// Global configuration
//	runner := run.New(
//		run.WithEnv(map[string]string{"GLOBAL_VAR": "value"}),
//		run.WithDisableColors(),
//		run.WithInheritEnv(),
//	)
//
//	// Local configuration (overrides global)
//	result, err := runner.
//		WithDir("/tmp").
//		WithGlob(false).
//		WithTimeout("5s").
//		Run("some-command")
//
// # Error Handling
//
// A command that exits non-zero returns both the populated Result and a
// structured *ExitError carrying the exit code and captured output, so the
// failure can be diagnosed without re-running the command:
//
//	result, err := runner.Run("false")
//	var exitErr *run.ExitError
//	if errors.As(err, &exitErr) {
//		fmt.Printf("Exit code: %d\n", exitErr.ExitCode)
//		fmt.Printf("Output: %s\n", exitErr.Combined)
//	}
//
// Failures are never swallowed: every failure path logs the command line and
// diagnostic context before propagating. Spawn faults (missing executable,
// permission denied) and elapsed timeouts are classified with distinct error
// codes; see IsTimeout and IsInvalidInput.
//
// # Background Execution
//
// Start spawns a process without waiting and returns a Handle. The caller
// owns the handle until it is reaped:
//
//	handle, err := runner.Start("sleep", "1")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(handle.Pid())
//
//	if err := run.WaitChild(handle); err != nil {
//		log.Fatal(err)
//	}
//
// A handle that is never waited on leaves a zombie entry in the OS process
// table until the parent exits. If the target file is not directly executable
// but starts with a #! line, Start retries the spawn through a shell
// interpreter.
//
// # Priority-Lowered Execution
//
// Nice runs a command at low CPU and IO priority, which keeps interactive
// workloads responsive while batch work proceeds:
//
//	result, err := runner.Nice("tar", "cvf", "backup.tar", "/var/data")
//
// The command is prefixed with "nice nice ionice --class 3". The IO-priority
// launcher only affects the program named immediately after it, so the
// command must not be wrapped in a shell or another launcher.
//
// # Interactive Commands
//
// RunVerbose attaches the controlling stdin, stdout and stderr so the user
// sees output in real time; nothing is captured:
//
//	result, err := runner.RunVerbose("apt-get", "install", "some-package")
//
// # Logging
//
// The runner writes leveled diagnostic lines (debug for verbose traces and
// background spawns, warnings for failures) to an injected logrus logger:
//
//	runner := run.New(run.WithLogger(logger))
//
// Logging is best-effort; it never aborts an execution and never masks the
// original failure.
//
// # Testing
//
// The package follows the Go idiom "accept interfaces, return structs".
// Production code uses the concrete *Command type, but test code can provide
// mock implementations of the Runner interface:
//
//	func Deploy(runner run.Runner) error {
//		result, err := runner.WithDir("/app").Run("deploy.sh")
//		// ...
//	}
//
// This allows you to pass either run.New() in production or a mock in tests.
package run
