// Package mock provides an in-memory provider for tests and dry runs.
package mock

import (
	"context"
	"fmt"

	"github.com/graphbind/graphbind/definition"
	"github.com/graphbind/graphbind/provider"
)

// Handle is an in-memory resource handle.
type Handle string

// ID implements provider.Handle.
func (h Handle) ID() string { return string(h) }

// A Function records a created compute function and the permissions granted
// to it.
type Function struct {
	Name   string
	Def    definition.Function
	Grants []definition.Permission

	// GrantErr, if set, is returned from every Grant call.
	GrantErr error
}

// ID implements provider.Function.
func (f *Function) ID() string { return "function:" + f.Name }

// Grant records the permission.
func (f *Function) Grant(ctx context.Context, perm definition.Permission) error {
	if f.GrantErr != nil {
		return f.GrantErr
	}
	f.Grants = append(f.Grants, perm)
	return nil
}

// An Event describes one provider call.
type Event struct {
	Op   string // api / datasource / resolver / function
	Name string
}

// Provider records created resources in memory.
//
// The zero value is ready to use. Errors can be injected per operation to
// exercise failure paths.
type Provider struct {
	APIs        []provider.APIConfig
	DataSources map[string]provider.DataSourceConfig
	Resolvers   map[string]provider.ResolverConfig
	Functions   map[string]*Function
	Events      []Event

	// CreateAPIErr, CreateDataSourceErr, CreateResolverErr and
	// CreateFunctionErr are returned from the corresponding calls when set.
	CreateAPIErr        error
	CreateDataSourceErr error
	CreateResolverErr   error
	CreateFunctionErr   error
}

var _ provider.Provider = (*Provider)(nil)

// CreateAPI records the API.
func (p *Provider) CreateAPI(ctx context.Context, cfg provider.APIConfig) (provider.Handle, error) {
	if p.CreateAPIErr != nil {
		return nil, p.CreateAPIErr
	}
	p.APIs = append(p.APIs, cfg)
	p.Events = append(p.Events, Event{Op: "api", Name: cfg.Name})
	return Handle("api:" + cfg.Name), nil
}

// CreateDataSource records the data source.
func (p *Provider) CreateDataSource(ctx context.Context, api provider.Handle, key string, cfg provider.DataSourceConfig) (provider.Handle, error) {
	if p.CreateDataSourceErr != nil {
		return nil, p.CreateDataSourceErr
	}
	if p.DataSources == nil {
		p.DataSources = make(map[string]provider.DataSourceConfig)
	}
	p.DataSources[key] = cfg
	p.Events = append(p.Events, Event{Op: "datasource", Name: key})
	return Handle("datasource:" + key), nil
}

// CreateResolver records the resolver.
func (p *Provider) CreateResolver(ctx context.Context, api provider.Handle, cfg provider.ResolverConfig) (provider.Handle, error) {
	if p.CreateResolverErr != nil {
		return nil, p.CreateResolverErr
	}
	key := cfg.TypeName + " " + cfg.FieldName
	if p.Resolvers == nil {
		p.Resolvers = make(map[string]provider.ResolverConfig)
	}
	p.Resolvers[key] = cfg
	p.Events = append(p.Events, Event{Op: "resolver", Name: key})
	return Handle("resolver:" + key), nil
}

// CreateFunction records the function.
func (p *Provider) CreateFunction(ctx context.Context, scope, idHint string, def definition.Function) (provider.Function, error) {
	if p.CreateFunctionErr != nil {
		return nil, p.CreateFunctionErr
	}
	name := fmt.Sprintf("%s-%s", scope, idHint)
	fn := &Function{Name: name, Def: def}
	if p.Functions == nil {
		p.Functions = make(map[string]*Function)
	}
	p.Functions[name] = fn
	p.Events = append(p.Events, Event{Op: "function", Name: name})
	return fn, nil
}
