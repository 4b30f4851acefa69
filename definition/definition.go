// Package definition contains the declarative types that describe the data
// sources and resolvers of a GraphQL API, before they are realized into
// backing resources.
//
// Definitions are loosely tagged: the set fields of a value determine what it
// describes. Classification into an exact variant is centralized in Variant
// and ResolveTarget so that every caller discriminates the same way.
package definition

import "context"

// A Permission describes an authorization to attach to a compute function.
// The binding core treats permissions as opaque and passes them through to
// the provider in attachment order.
type Permission struct {
	// Actions lists the operations the permission allows.
	Actions []string

	// Resources lists the resources the actions apply to.
	Resources []string
}

// A ComputeFunction is a realized compute function that permissions can be
// attached to.
type ComputeFunction interface {
	// ID returns the provider-assigned identifier for the function.
	ID() string

	// Grant attaches a permission to the function.
	Grant(ctx context.Context, perm Permission) error
}

// A Function describes a compute function backing a data source.
//
// Either Existing references an already realized function, or the remaining
// fields describe a function to create. Setting Existing together with any
// inline field is a conflict.
type Function struct {
	// Existing references an already realized compute function. No function
	// is created when set.
	Existing ComputeFunction

	// Handler is the entry point of the function, for example
	// "src/notes.main".
	Handler string

	// Source is the directory containing the function code. If empty, the
	// directory portion of Handler is used.
	Source string

	// Runtime sets the function runtime.
	Runtime string

	// Description of the function.
	Description string

	// Timeout in seconds.
	Timeout *int64

	// MemorySize in MB.
	MemorySize *int64

	// Environment variables.
	Environment map[string]string

	// Layers to add to the execution environment.
	Layers []string

	// Permissions to attach to the function after creation.
	Permissions []Permission
}

// inline reports whether any inline definition field is set.
func (f Function) inline() bool {
	return f.Handler != "" || f.Source != "" || f.Runtime != "" ||
		f.Description != "" || f.Timeout != nil || f.MemorySize != nil ||
		len(f.Environment) > 0 || len(f.Layers) > 0 || len(f.Permissions) > 0
}

// A Table describes a DynamoDB table backing a data source, referenced by
// the name of an existing table.
type Table struct {
	// TableName is the name of the table.
	TableName string

	// Region the table is in. If empty, the provider default is used.
	Region string
}

// An RDS describes a relational database cluster backing a data source.
type RDS struct {
	// ClusterARN identifies the database cluster.
	ClusterARN string

	// SecretARN identifies the secret holding the cluster credentials.
	SecretARN string

	// DatabaseName is the logical database to use within the cluster.
	DatabaseName string
}

// An HTTP describes an HTTP endpoint backing a data source.
type HTTP struct {
	// Endpoint is the base URL of the service.
	Endpoint string
}

// A Template declares a request or response mapping template. Exactly one of
// File or Inline must be set.
type Template struct {
	// File is a path to a template file, read when the template is built.
	File string

	// Inline is the literal template content.
	Inline string
}
