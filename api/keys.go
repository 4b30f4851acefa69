package api

import (
	"fmt"
	"strings"
)

// An InvalidResolverKeyError is returned when a resolver key does not split
// into exactly a type name and a field name.
type InvalidResolverKeyError struct {
	// Key is the offending key, after normalization.
	Key string
}

// Error implements error.
func (e InvalidResolverKeyError) Error() string {
	return fmt.Sprintf("invalid resolver key %q: want \"TypeName FieldName\"", e.Key)
}

// normalizeKey canonicalizes a key: internal whitespace runs collapse to a
// single space and surrounding whitespace is trimmed. Idempotent.
func normalizeKey(key string) string {
	return strings.Join(strings.Fields(key), " ")
}

// parseResolverKey splits a normalized resolver key into its type name and
// field name. The key must contain exactly two non-empty tokens.
func parseResolverKey(key string) (typeName, fieldName string, err error) {
	parts := strings.Split(key, " ")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", InvalidResolverKeyError{Key: key}
	}
	return parts[0], parts[1], nil
}

// implicitDataSourceKey derives the data source key for a resolver that
// carries an inline function without naming a data source. Purely a function
// of the field identity, so repeated runs with unchanged input derive
// unchanged keys.
func implicitDataSourceKey(typeName, fieldName string) string {
	return fmt.Sprintf("LambdaDS_%s_%s", typeName, fieldName)
}
