package run

// nicePrefix is the launcher sequence for priority-lowered execution. The
// doubled nice maximizes the CPU niceness adjustment, and ionice class 3
// (idle) yields IO to any other workload.
var nicePrefix = []string{"nice", "nice", "ionice", "--class", "3"}

// NiceArgs rewrites a command to run at low priority for both CPU and IO.
//
// On some platforms ionice only affects the program named immediately after
// it, so the first argument must be the executable itself rather than a
// wrapper such as a shell.
func NiceArgs(args ...string) []string {
	prefixed := make([]string, 0, len(nicePrefix)+len(args))
	prefixed = append(prefixed, nicePrefix...)
	return append(prefixed, args...)
}

// NewNice returns a Runner that executes every command at low priority by
// prepending the NiceArgs launcher sequence.
func NewNice(runner Runner) *Prefixed {
	return NewPrefixed(runner, nicePrefix...)
}
