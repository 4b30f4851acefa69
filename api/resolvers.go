package api

import (
	"context"
	"sort"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/graphbind/graphbind/definition"
	"github.com/graphbind/graphbind/provider"
	"github.com/graphbind/graphbind/template"
)

// AddResolvers realizes the given resolver definitions and registers them.
// Keys are normalized before use, so differently spaced keys for the same
// field collide. May be called any number of times; a data source referenced
// by key must already be registered.
//
// A resolver carrying an inline function creates an implicit data source
// under a key derived from the field identity.
//
// Entries are processed in lexicographical key order. On error the batch
// stops; entries processed before the failure stay registered, including any
// implicit data source created for the failing entry.
func (a *API) AddResolvers(ctx context.Context, defs map[string]definition.Resolver) error {
	keys := make([]string, 0, len(defs))
	for k := range defs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := a.addResolver(ctx, key, defs[key]); err != nil {
			return err
		}
	}
	return nil
}

func (a *API) addResolver(ctx context.Context, rawKey string, def definition.Resolver) error {
	key := normalizeKey(rawKey)
	typeName, fieldName, err := parseResolverKey(key)
	if err != nil {
		return err
	}
	if _, ok := a.resolvers[key]; ok {
		return DuplicateKeyError{Kind: "resolver", Key: key}
	}

	target, err := def.ResolveTarget(a.dataSourceKeys())
	if err != nil {
		return errors.Wrapf(err, "resolver %s", key)
	}

	var ds *DataSourceEntry
	if target.DataSourceKey != "" {
		ds = a.dataSources[target.DataSourceKey]
	} else {
		dsKey := implicitDataSourceKey(typeName, fieldName)
		ds, err = a.addDataSource(ctx, dsKey, definition.DataSource{Function: target.Function})
		if err != nil {
			return errors.Wrapf(err, "resolver %s", key)
		}
	}

	req, err := template.Build(def.RequestTemplate)
	if err != nil {
		return errors.Wrapf(err, "resolver %s: request template", key)
	}
	resp, err := template.Build(def.ResponseTemplate)
	if err != nil {
		return errors.Wrapf(err, "resolver %s: response template", key)
	}

	handle, err := a.provider.CreateResolver(ctx, a.handle, provider.ResolverConfig{
		TypeName:         typeName,
		FieldName:        fieldName,
		DataSource:       ds.Handle,
		RequestTemplate:  req,
		ResponseTemplate: resp,
	})
	if err != nil {
		return errors.Wrapf(err, "create resolver %s", key)
	}

	a.resolvers[key] = &ResolverEntry{
		TypeName:      typeName,
		FieldName:     fieldName,
		DataSourceKey: ds.Key,
		Handle:        handle,
	}
	a.dsByResolver[key] = ds.Key
	a.logger.Debug("resolver registered",
		zap.String("key", key),
		zap.String("data_source", ds.Key),
	)
	return nil
}
