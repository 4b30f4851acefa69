package api

import (
	"context"
	"fmt"
	"sort"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/graphbind/graphbind/definition"
	"github.com/graphbind/graphbind/provider"
)

// A DuplicateKeyError is returned when a key is already registered. Entries
// are never silently overwritten.
type DuplicateKeyError struct {
	// Kind is "data source" or "resolver".
	Kind string

	// Key is the duplicated key.
	Key string
}

// Error implements error.
func (e DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Kind, e.Key)
}

// AddDataSources realizes the given data source definitions and registers
// them. May be called any number of times; keys must not collide with
// previously registered data sources.
//
// Entries are processed in lexicographical key order. On error the batch
// stops; entries processed before the failure stay registered.
func (a *API) AddDataSources(ctx context.Context, defs map[string]definition.DataSource) error {
	keys := make([]string, 0, len(defs))
	for k := range defs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if _, err := a.addDataSource(ctx, key, defs[key]); err != nil {
			return err
		}
	}
	return nil
}

// addDataSource realizes one data source and registers it. For the Lambda
// variant the compute function is realized first, then the retained global
// grants are replayed against it before returning.
func (a *API) addDataSource(ctx context.Context, key string, def definition.DataSource) (*DataSourceEntry, error) {
	if _, ok := a.dataSources[key]; ok {
		return nil, DuplicateKeyError{Kind: "data source", Key: key}
	}

	variant, err := def.Variant()
	if err != nil {
		return nil, errors.Wrapf(err, "data source %s", key)
	}

	cfg := provider.DataSourceConfig{Variant: variant}
	var fn provider.Function
	switch variant {
	case definition.Lambda:
		fn, err = a.realizeFunction(ctx, key, *def.Function)
		if err != nil {
			return nil, errors.Wrapf(err, "data source %s", key)
		}
		cfg.Function = fn
	case definition.DynamoDB:
		cfg.Table = def.Table
	case definition.Rds:
		cfg.RDS = def.RDS
	case definition.Http:
		cfg.HTTP = def.HTTP
	}

	handle, err := a.provider.CreateDataSource(ctx, a.handle, key, cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "create data source %s", key)
	}

	entry := &DataSourceEntry{
		Key:      key,
		Variant:  variant,
		Handle:   handle,
		Function: fn,
	}
	a.dataSources[key] = entry
	a.logger.Debug("data source registered",
		zap.String("key", key),
		zap.Stringer("variant", variant),
	)

	if fn != nil {
		if err := a.replayGrants(ctx, key, fn); err != nil {
			return nil, err
		}
	}
	return entry, nil
}

// realizeFunction merges defaults into the definition and creates the
// function, or returns the referenced existing function. Permissions carried
// on the merged definition are attached before returning.
func (a *API) realizeFunction(ctx context.Context, idHint string, def definition.Function) (provider.Function, error) {
	merged, err := definition.Merge(a.defaults, def)
	if err != nil {
		return nil, err
	}
	if merged.Existing != nil {
		return merged.Existing, nil
	}

	fn, err := a.provider.CreateFunction(ctx, a.name, idHint, merged)
	if err != nil {
		return nil, errors.Wrapf(err, "create function %s", idHint)
	}
	for _, perm := range merged.Permissions {
		if err := fn.Grant(ctx, perm); err != nil {
			return nil, errors.Wrapf(err, "grant permission to function %s", idHint)
		}
	}
	return fn, nil
}
