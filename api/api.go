// Package api implements the binding core: it wires declarative data source
// and resolver definitions into realized resources through a provider, and
// keeps the registries that later lookups and permission grants resolve
// against.
//
// The construct is append-only. Entries are never removed or replaced, and a
// failed batch call leaves entries processed before the failure fully
// registered; there is no rollback. Callers that need atomicity must validate
// input up front, or correct the declaration and re-drive the remainder.
//
// All methods must be called from a single goroutine. Every call runs to
// completion before returning and there is no internal concurrency, so no
// locking is needed.
package api

import (
	"context"
	"sort"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/graphbind/graphbind/definition"
	"github.com/graphbind/graphbind/provider"
	"github.com/graphbind/graphbind/schema"
)

// Config declares an API.
type Config struct {
	// Name of the API. Used as the scope for resources created on behalf of
	// the API.
	Name string

	// AuthenticationType is passed through to the provider.
	AuthenticationType string

	// Schema is the merged schema document to attach, if any.
	Schema *schema.Document

	// Defaults is the base configuration merged into every function created
	// by this API.
	Defaults definition.FunctionDefaults

	// DataSources declares the initial data sources, keyed by data source
	// key.
	DataSources map[string]definition.DataSource

	// Resolvers declares the initial resolvers, keyed by "TypeName
	// FieldName".
	Resolvers map[string]definition.Resolver
}

// A DataSourceEntry is a realized data source.
type DataSourceEntry struct {
	// Key is the data source key, unique within the API.
	Key string

	// Variant is the classified kind.
	Variant definition.DataSourceVariant

	// Handle is the realized backing resource.
	Handle provider.Handle

	// Function is the compute function implementing the data source. Only
	// set for the Lambda variant.
	Function provider.Function
}

// A ResolverEntry is a realized resolver.
type ResolverEntry struct {
	// TypeName and FieldName identify the GraphQL field.
	TypeName  string
	FieldName string

	// DataSourceKey is the key of the data source the resolver is bound to.
	DataSourceKey string

	// Handle is the realized resolver.
	Handle provider.Handle
}

// An API owns the registries for one GraphQL API. Create it with New, then
// add more data sources and resolvers with AddDataSources and AddResolvers.
type API struct {
	name     string
	provider provider.Provider
	logger   *zap.Logger
	defaults definition.FunctionDefaults

	handle provider.Handle

	dataSources  map[string]*DataSourceEntry
	resolvers    map[string]*ResolverEntry
	dsByResolver map[string]string // normalized resolver key -> data source key

	// grants holds global permission grants in attachment order. Replayed
	// against every compute function registered after attachment.
	grants []definition.Permission
}

// An Option configures an API.
type Option func(*API)

// WithLogger sets the logger. If not set, logs are discarded.
func WithLogger(logger *zap.Logger) Option {
	return func(a *API) {
		a.logger = logger
	}
}

// New realizes the API resource and the declared data sources and resolvers.
//
// Data sources are processed before resolvers so that resolvers may reference
// sibling data sources by key. Within each batch, entries are processed in
// lexicographical key order; sibling entries must not depend on declaration
// order.
func New(ctx context.Context, p provider.Provider, cfg Config, opts ...Option) (*API, error) {
	a := &API{
		name:         cfg.Name,
		provider:     p,
		logger:       zap.NewNop(),
		defaults:     cfg.Defaults,
		dataSources:  make(map[string]*DataSourceEntry),
		resolvers:    make(map[string]*ResolverEntry),
		dsByResolver: make(map[string]string),
	}
	for _, opt := range opts {
		opt(a)
	}

	apiCfg := provider.APIConfig{
		Name:               cfg.Name,
		AuthenticationType: cfg.AuthenticationType,
	}
	if cfg.Schema != nil {
		apiCfg.Schema = cfg.Schema.Source
	}
	handle, err := p.CreateAPI(ctx, apiCfg)
	if err != nil {
		return nil, errors.Wrapf(err, "create api %s", cfg.Name)
	}
	a.handle = handle
	a.logger.Debug("api created", zap.String("name", cfg.Name), zap.String("id", handle.ID()))

	if err := a.AddDataSources(ctx, cfg.DataSources); err != nil {
		return nil, err
	}
	if err := a.AddResolvers(ctx, cfg.Resolvers); err != nil {
		return nil, err
	}
	return a, nil
}

// Handle returns the realized API resource.
func (a *API) Handle() provider.Handle {
	return a.handle
}

// DataSource returns the backing resource behind the given key. The key may
// be a data source key or a resolver key; resolver keys resolve through the
// data source the resolver was bound to. Returns nil if the key does not
// resolve.
func (a *API) DataSource(key string) provider.Handle {
	entry := a.lookup(key)
	if entry == nil {
		return nil
	}
	return entry.Handle
}

// Function returns the compute function behind the given key, resolved like
// DataSource. Returns nil if the key does not resolve or the data source has
// no compute function.
func (a *API) Function(key string) provider.Function {
	entry := a.lookup(key)
	if entry == nil {
		return nil
	}
	return entry.Function
}

// Resolver returns the realized resolver for the given resolver key. Returns
// nil if no resolver was registered under the key.
func (a *API) Resolver(key string) provider.Handle {
	entry, ok := a.resolvers[normalizeKey(key)]
	if !ok {
		return nil
	}
	return entry.Handle
}

// lookup resolves a key to a data source entry: first as a literal data
// source key, then as a resolver key through the resolver index. Both hops
// use the normalized key; a miss on either hop resolves to nil. The two-hop
// chain is kept here so every accessor resolves identically.
func (a *API) lookup(key string) *DataSourceEntry {
	k := normalizeKey(key)
	if entry, ok := a.dataSources[k]; ok {
		return entry
	}
	if dsKey, ok := a.dsByResolver[k]; ok {
		return a.dataSources[dsKey]
	}
	return nil
}

// dataSourceKeys returns the registered data source keys in sorted order.
func (a *API) dataSourceKeys() []string {
	keys := make([]string, 0, len(a.dataSources))
	for k := range a.dataSources {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
