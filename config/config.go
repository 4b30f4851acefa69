// Package config loads a project declaration from .hcl files on disk.
package config

import (
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/zclconf/go-cty/cty"
	"go.uber.org/multierr"

	"github.com/graphbind/graphbind/definition"
)

// Root is the root structure of a project declaration.
type Root struct {
	API         *APIBlock         `hcl:"api,block"`
	Variables   []VariableBlock   `hcl:"variable,block"`
	DataSources []DataSourceBlock `hcl:"data_source,block"`
	Resolvers   []ResolverBlock   `hcl:"resolver,block"`
}

// APIBlock declares the API.
type APIBlock struct {
	Name     string         `hcl:"name"`
	Auth     *string        `hcl:"auth"`
	Schema   []string       `hcl:"schema,optional"`
	Defaults *DefaultsBlock `hcl:"defaults,block"`
}

// DefaultsBlock carries the base configuration for created functions.
type DefaultsBlock struct {
	Function *FunctionBlock `hcl:"function,block"`
}

// VariableBlock declares a value that other blocks reference as var.<name>.
type VariableBlock struct {
	Name  string    `hcl:"name,label"`
	Value cty.Value `hcl:"value"`
}

// DataSourceBlock declares a data source.
type DataSourceBlock struct {
	Name     string         `hcl:"name,label"`
	Function *FunctionBlock `hcl:"function,block"`
	Table    *TableBlock    `hcl:"table,block"`
	RDS      *RDSBlock      `hcl:"rds,block"`
	HTTP     *HTTPBlock     `hcl:"http,block"`
}

// ResolverBlock declares a resolver. The label is the resolver key,
// "TypeName FieldName".
type ResolverBlock struct {
	Field            string         `hcl:"field,label"`
	DataSource       *string        `hcl:"data_source"`
	Handler          *string        `hcl:"handler"`
	Function         *FunctionBlock `hcl:"function,block"`
	RequestTemplate  *TemplateBlock `hcl:"request_template,block"`
	ResponseTemplate *TemplateBlock `hcl:"response_template,block"`
}

// FunctionBlock declares a compute function.
type FunctionBlock struct {
	Handler     *string            `hcl:"handler"`
	Source      *string            `hcl:"source"`
	Runtime     *string            `hcl:"runtime"`
	Description *string            `hcl:"description"`
	Timeout     *int64             `hcl:"timeout"`
	MemorySize  *int64             `hcl:"memory_size"`
	Environment map[string]string  `hcl:"environment,optional"`
	Layers      []string           `hcl:"layers,optional"`
	Permissions []PermissionBlock  `hcl:"permission,block"`
}

// PermissionBlock declares a permission grant.
type PermissionBlock struct {
	Actions   []string `hcl:"actions"`
	Resources []string `hcl:"resources,optional"`
}

// TableBlock declares a DynamoDB-backed data source.
type TableBlock struct {
	TableName string  `hcl:"table_name"`
	Region    *string `hcl:"region"`
}

// RDSBlock declares a relational database backed data source.
type RDSBlock struct {
	ClusterARN   string  `hcl:"cluster_arn"`
	SecretARN    string  `hcl:"secret_arn"`
	DatabaseName *string `hcl:"database_name"`
}

// HTTPBlock declares an HTTP endpoint backed data source.
type HTTPBlock struct {
	Endpoint string `hcl:"endpoint"`
}

// A Project is the decoded, validated declaration, with paths resolved
// relative to the project root.
type Project struct {
	// Root is the absolute path to the project directory.
	Root string

	// Name of the API.
	Name string

	// AuthenticationType passed through to the provider.
	AuthenticationType string

	// SchemaFiles are the schema sources, in declaration order.
	SchemaFiles []string

	// Defaults merged into every created function.
	Defaults definition.FunctionDefaults

	// DataSources keyed by data source key.
	DataSources map[string]definition.DataSource

	// Resolvers keyed by resolver key.
	Resolvers map[string]definition.Resolver
}

// project converts the decoded root into a Project. All conversion errors
// are collected so the user sees every problem at once.
func (r Root) project(rootDir string) (*Project, error) {
	var errs error

	if r.API == nil {
		return nil, errors.New("no api block")
	}
	p := &Project{
		Root:        rootDir,
		Name:        r.API.Name,
		DataSources: make(map[string]definition.DataSource, len(r.DataSources)),
		Resolvers:   make(map[string]definition.Resolver, len(r.Resolvers)),
	}
	if r.API.Name == "" {
		errs = multierr.Append(errs, errors.New("api name is required"))
	}
	if r.API.Auth != nil {
		p.AuthenticationType = *r.API.Auth
	}
	for _, f := range r.API.Schema {
		p.SchemaFiles = append(p.SchemaFiles, filepath.Join(rootDir, f))
	}
	if r.API.Defaults != nil && r.API.Defaults.Function != nil {
		fn := r.API.Defaults.Function.function(rootDir)
		if fn.Handler != "" || fn.Source != "" || fn.Description != "" {
			errs = multierr.Append(errs, errors.New("defaults cannot set handler, source or description"))
		}
		p.Defaults = definition.FunctionDefaults{
			Runtime:     fn.Runtime,
			Timeout:     fn.Timeout,
			MemorySize:  fn.MemorySize,
			Environment: fn.Environment,
			Layers:      fn.Layers,
			Permissions: fn.Permissions,
		}
	}

	for _, ds := range r.DataSources {
		if _, ok := p.DataSources[ds.Name]; ok {
			errs = multierr.Append(errs, errors.Errorf("duplicate data_source %q", ds.Name))
			continue
		}
		def := definition.DataSource{}
		if ds.Function != nil {
			fn := ds.Function.function(rootDir)
			def.Function = &fn
		}
		if ds.Table != nil {
			t := &definition.Table{TableName: ds.Table.TableName}
			if ds.Table.Region != nil {
				t.Region = *ds.Table.Region
			}
			def.Table = t
		}
		if ds.RDS != nil {
			rds := &definition.RDS{
				ClusterARN: ds.RDS.ClusterARN,
				SecretARN:  ds.RDS.SecretARN,
			}
			if ds.RDS.DatabaseName != nil {
				rds.DatabaseName = *ds.RDS.DatabaseName
			}
			def.RDS = rds
		}
		if ds.HTTP != nil {
			def.HTTP = &definition.HTTP{Endpoint: ds.HTTP.Endpoint}
		}
		if _, err := def.Variant(); err != nil {
			errs = multierr.Append(errs, errors.Wrapf(err, "data_source %q", ds.Name))
			continue
		}
		p.DataSources[ds.Name] = def
	}

	for _, res := range r.Resolvers {
		if _, ok := p.Resolvers[res.Field]; ok {
			errs = multierr.Append(errs, errors.Errorf("duplicate resolver %q", res.Field))
			continue
		}
		def := definition.Resolver{}
		if res.Handler != nil {
			def.Shorthand = *res.Handler
		}
		if res.DataSource != nil {
			def.DataSource = *res.DataSource
		}
		if res.Function != nil {
			fn := res.Function.function(rootDir)
			def.Function = &fn
		}
		if res.RequestTemplate != nil {
			def.RequestTemplate = res.RequestTemplate.template(rootDir)
		}
		if res.ResponseTemplate != nil {
			def.ResponseTemplate = res.ResponseTemplate.template(rootDir)
		}
		p.Resolvers[res.Field] = def
	}

	if errs != nil {
		return nil, errs
	}
	return p, nil
}

func (b FunctionBlock) function(rootDir string) definition.Function {
	fn := definition.Function{
		Environment: b.Environment,
		Layers:      b.Layers,
	}
	if b.Handler != nil {
		fn.Handler = *b.Handler
	}
	if b.Source != nil {
		fn.Source = filepath.Join(rootDir, *b.Source)
	}
	if b.Runtime != nil {
		fn.Runtime = *b.Runtime
	}
	if b.Description != nil {
		fn.Description = *b.Description
	}
	fn.Timeout = b.Timeout
	fn.MemorySize = b.MemorySize
	for _, perm := range b.Permissions {
		fn.Permissions = append(fn.Permissions, definition.Permission{
			Actions:   perm.Actions,
			Resources: perm.Resources,
		})
	}
	return fn
}

// TemplateBlock declares a mapping template. Exactly one of file and inline
// should be set; the template builder rejects a block with both or neither.
type TemplateBlock struct {
	File   *string `hcl:"file"`
	Inline *string `hcl:"inline"`
}

func (b TemplateBlock) template(rootDir string) *definition.Template {
	t := &definition.Template{}
	if b.File != nil {
		t.File = filepath.Join(rootDir, *b.File)
	}
	if b.Inline != nil {
		t.Inline = *b.Inline
	}
	return t
}
