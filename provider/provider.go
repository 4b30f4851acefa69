// Package provider defines the interfaces through which realized resources
// are created. The binding core is provider-agnostic; implementations
// provision real infrastructure (provider/aws) or record calls in memory
// (provider/mock).
package provider

import (
	"context"

	"github.com/graphbind/graphbind/definition"
	"github.com/graphbind/graphbind/template"
)

// A Handle identifies a realized resource.
type Handle interface {
	// ID returns the provider-assigned identifier.
	ID() string
}

// A Function is a realized compute function.
type Function = definition.ComputeFunction

// APIConfig configures the API resource itself.
type APIConfig struct {
	// Name of the API.
	Name string

	// AuthenticationType is passed through to the provider. If empty, the
	// provider default applies.
	AuthenticationType string

	// Schema is the merged schema document to attach, if any.
	Schema string
}

// DataSourceConfig carries the variant-specific inputs for a data source.
// The field matching Variant is set; others are nil.
type DataSourceConfig struct {
	// Variant is the classified kind of the data source.
	Variant definition.DataSourceVariant

	// Function is the realized compute function for Lambda data sources.
	Function Function

	// Table describes the table for DynamoDB data sources.
	Table *definition.Table

	// RDS describes the cluster for relational data sources.
	RDS *definition.RDS

	// HTTP describes the endpoint for HTTP data sources.
	HTTP *definition.HTTP
}

// ResolverConfig carries the inputs for a resolver.
type ResolverConfig struct {
	// TypeName and FieldName identify the GraphQL field.
	TypeName  string
	FieldName string

	// DataSource is the realized data source the resolver delegates to.
	DataSource Handle

	// RequestTemplate and ResponseTemplate are optional mapping templates.
	RequestTemplate  *template.Artifact
	ResponseTemplate *template.Artifact
}

// A Provider realizes resources.
type Provider interface {
	// CreateAPI creates the API resource. Called at most once per API.
	CreateAPI(ctx context.Context, cfg APIConfig) (Handle, error)

	// CreateDataSource creates a data source on the API.
	CreateDataSource(ctx context.Context, api Handle, key string, cfg DataSourceConfig) (Handle, error)

	// CreateResolver creates a resolver on the API.
	CreateResolver(ctx context.Context, api Handle, cfg ResolverConfig) (Handle, error)

	// CreateFunction creates a compute function. The definition has defaults
	// already merged in; scope and idHint determine the resource name and
	// must produce a stable name across runs.
	CreateFunction(ctx context.Context, scope, idHint string, def definition.Function) (Function, error)
}
