package api

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/graphbind/graphbind/definition"
	"github.com/graphbind/graphbind/provider"
)

// An UnknownTargetError is returned when a targeted permission grant does not
// resolve to a compute function. The key may be unregistered, or registered
// against a data source variant that has no compute function.
type UnknownTargetError struct {
	// Key is the key the grant was issued against.
	Key string
}

// Error implements error.
func (e UnknownTargetError) Error() string {
	return fmt.Sprintf("no compute function found for %q", e.Key)
}

// AttachPermissions attaches a permission to every compute function of the
// API, current and future. The grant is retained and replayed against every
// compute function registered afterward, in original attachment order, so
// the result does not depend on whether grants are attached before or after
// the data sources they apply to.
func (a *API) AttachPermissions(ctx context.Context, perm definition.Permission) error {
	a.grants = append(a.grants, perm)
	for _, key := range a.dataSourceKeys() {
		entry := a.dataSources[key]
		if entry.Function == nil {
			continue
		}
		if err := entry.Function.Grant(ctx, perm); err != nil {
			return errors.Wrapf(err, "grant permission to data source %s", key)
		}
	}
	return nil
}

// AttachPermissionsToDataSource attaches a permission to the compute
// function behind the given key, resolved like DataSource. Unlike
// AttachPermissions the grant is applied once and not retained, and the
// target must already exist: an unresolved key or a data source without a
// compute function is an UnknownTargetError.
func (a *API) AttachPermissionsToDataSource(ctx context.Context, key string, perm definition.Permission) error {
	entry := a.lookup(key)
	if entry == nil || entry.Function == nil {
		return UnknownTargetError{Key: key}
	}
	if err := entry.Function.Grant(ctx, perm); err != nil {
		return errors.Wrapf(err, "grant permission to data source %s", entry.Key)
	}
	return nil
}

// replayGrants applies the retained global grants to a newly registered
// compute function, in original attachment order.
func (a *API) replayGrants(ctx context.Context, key string, fn provider.Function) error {
	for _, perm := range a.grants {
		if err := fn.Grant(ctx, perm); err != nil {
			return errors.Wrapf(err, "replay permission grant on data source %s", key)
		}
	}
	return nil
}
