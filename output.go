package run

import "strings"

// formatResult decodes the captured byte streams into the Result's text
// fields and derives the combined output.
//
// Each captured stream is decoded and trimmed of surrounding whitespace.
// Combined is the trimmed stderr concatenated with the trimmed stdout; when
// only one stream was captured it is that stream alone, and when neither was
// captured it stays empty. In raw mode the decoded per-stream fields are left
// empty but Combined is still derived for diagnostics.
//
// Formatting always works from the raw bytes, so applying it twice to the
// same Result produces no further change.
func formatResult(r *Result, raw bool) {
	var stderrText string

	if r.RawStderr != nil {
		stderrText = strings.TrimSpace(string(r.RawStderr))
		if !raw {
			r.Stderr = stderrText
		}
		r.Combined = stderrText
	}

	if r.RawStdout != nil {
		stdoutText := strings.TrimSpace(string(r.RawStdout))
		if !raw {
			r.Stdout = stdoutText
		}
		if stderrText != "" {
			r.Combined = stderrText + stdoutText
		} else {
			r.Combined = stdoutText
		}
	}
}
