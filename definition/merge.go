package definition

// FunctionDefaults is the base configuration applied to every function
// created by an API.
type FunctionDefaults struct {
	Runtime     string
	Timeout     *int64
	MemorySize  *int64
	Environment map[string]string
	Layers      []string
	Permissions []Permission
}

// IsZero reports whether no default is set.
func (d FunctionDefaults) IsZero() bool {
	return d.Runtime == "" && d.Timeout == nil && d.MemorySize == nil &&
		len(d.Environment) == 0 && len(d.Layers) == 0 && len(d.Permissions) == 0
}

// A ConflictingConfigurationError is returned when defaults are combined with
// a definition that references an already realized function. Defaults cannot
// be retrofitted onto a resource that already exists.
type ConflictingConfigurationError struct {
	// Reason describes the conflict.
	Reason string
}

// Error implements error.
func (e ConflictingConfigurationError) Error() string {
	return "conflicting configuration: " + e.Reason
}

// Merge combines defaults with a function definition.
//
// Scalar fields from the definition replace the default when set. List fields
// are concatenated with the defaults first; duplicates are kept. Environment
// variables are combined key-wise with the definition winning on collision.
//
// Merging defaults into a definition that references an existing function is
// a ConflictingConfigurationError, as is a definition that sets Existing
// together with inline fields.
func Merge(defaults FunctionDefaults, fn Function) (Function, error) {
	if fn.Existing != nil {
		if fn.inline() {
			return Function{}, ConflictingConfigurationError{
				Reason: "function references an existing compute function and defines inline fields",
			}
		}
		if !defaults.IsZero() {
			return Function{}, ConflictingConfigurationError{
				Reason: "defaults cannot be applied to an existing compute function",
			}
		}
		return fn, nil
	}

	merged := fn

	if merged.Runtime == "" {
		merged.Runtime = defaults.Runtime
	}
	if merged.Timeout == nil {
		merged.Timeout = defaults.Timeout
	}
	if merged.MemorySize == nil {
		merged.MemorySize = defaults.MemorySize
	}

	if len(defaults.Layers) > 0 {
		merged.Layers = append(append([]string{}, defaults.Layers...), fn.Layers...)
	}
	if len(defaults.Permissions) > 0 {
		merged.Permissions = append(append([]Permission{}, defaults.Permissions...), fn.Permissions...)
	}

	if len(defaults.Environment) > 0 {
		env := make(map[string]string, len(defaults.Environment)+len(fn.Environment))
		for k, v := range defaults.Environment {
			env[k] = v
		}
		for k, v := range fn.Environment {
			env[k] = v
		}
		merged.Environment = env
	}

	return merged, nil
}
