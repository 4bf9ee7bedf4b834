package run

// config holds the configuration for command execution.
// It distinguishes between global settings (set at creation time) and local settings (set per-execution).
type config struct {
	// Global settings (set at creation time)
	globalEnv           map[string]string
	globalDir           string
	globalInheritEnv    bool
	globalDisableColors bool
	globalGlob          bool
	globalInteractive   bool
	globalRawOutput     bool
	globalVerbose       bool

	// Local settings (set per-execution, override global)
	localEnv           map[string]string
	localDir           string
	localInheritEnv    *bool
	localDisableColors *bool
	localGlob          *bool
	localInteractive   *bool
	localRawOutput     *bool
	localVerbose       *bool
}

// newConfig creates a new configuration with default values.
// Globbing is the only setting that defaults to enabled.
func newConfig() *config {
	return &config{
		globalEnv:  make(map[string]string),
		globalGlob: true,
		localEnv:   make(map[string]string),
	}
}

// clone creates a deep copy of the configuration.
func (c *config) clone() *config {
	clone := &config{
		globalEnv:           make(map[string]string),
		globalDir:           c.globalDir,
		globalInheritEnv:    c.globalInheritEnv,
		globalDisableColors: c.globalDisableColors,
		globalGlob:          c.globalGlob,
		globalInteractive:   c.globalInteractive,
		globalRawOutput:     c.globalRawOutput,
		globalVerbose:       c.globalVerbose,
		localEnv:            make(map[string]string),
		localDir:            c.localDir,
	}

	for k, v := range c.globalEnv {
		clone.globalEnv[k] = v
	}

	for k, v := range c.localEnv {
		clone.localEnv[k] = v
	}

	clone.localInheritEnv = cloneBool(c.localInheritEnv)
	clone.localDisableColors = cloneBool(c.localDisableColors)
	clone.localGlob = cloneBool(c.localGlob)
	clone.localInteractive = cloneBool(c.localInteractive)
	clone.localRawOutput = cloneBool(c.localRawOutput)
	clone.localVerbose = cloneBool(c.localVerbose)

	return clone
}

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	val := *b
	return &val
}

// effectiveEnv returns the effective environment variables, merging global and local settings.
// Local settings override global settings.
func (c *config) effectiveEnv() map[string]string {
	env := make(map[string]string)

	// Start with global environment
	for k, v := range c.globalEnv {
		env[k] = v
	}

	// Override with local environment
	for k, v := range c.localEnv {
		env[k] = v
	}

	// Apply disable colors if enabled
	if c.effectiveDisableColors() {
		env["NO_COLOR"] = "1"
		env["TERM"] = "dumb"
		env["CLICOLOR"] = "0"
		env["CLICOLOR_FORCE"] = "0"
		env["FORCE_COLOR"] = "0"
	}

	return env
}

// effectiveDir returns the effective working directory.
// Local setting overrides global setting.
func (c *config) effectiveDir() string {
	if c.localDir != "" {
		return c.localDir
	}
	return c.globalDir
}

// effectiveInheritEnv returns whether to inherit environment variables.
func (c *config) effectiveInheritEnv() bool {
	if c.localInheritEnv != nil {
		return *c.localInheritEnv
	}
	return c.globalInheritEnv
}

// effectiveDisableColors returns whether to disable colors.
func (c *config) effectiveDisableColors() bool {
	if c.localDisableColors != nil {
		return *c.localDisableColors
	}
	return c.globalDisableColors
}

// effectiveGlob returns whether wildcard arguments are expanded.
func (c *config) effectiveGlob() bool {
	if c.localGlob != nil {
		return *c.localGlob
	}
	return c.globalGlob
}

// effectiveInteractive returns whether the controlling streams are attached.
func (c *config) effectiveInteractive() bool {
	if c.localInteractive != nil {
		return *c.localInteractive
	}
	return c.globalInteractive
}

// effectiveRawOutput returns whether output decoding is skipped.
func (c *config) effectiveRawOutput() bool {
	if c.localRawOutput != nil {
		return *c.localRawOutput
	}
	return c.globalRawOutput
}

// effectiveVerbose returns whether verbose logging is enabled.
func (c *config) effectiveVerbose() bool {
	if c.localVerbose != nil {
		return *c.localVerbose
	}
	return c.globalVerbose
}

// resetLocal resets all local settings.
// This should be called after each execution so local settings don't carry over.
func (c *config) resetLocal() {
	c.localEnv = make(map[string]string)
	c.localDir = ""
	c.localInheritEnv = nil
	c.localDisableColors = nil
	c.localGlob = nil
	c.localInteractive = nil
	c.localRawOutput = nil
	c.localVerbose = nil
}
