package definition

import "fmt"

// A DataSource describes a backing resource for resolvers to delegate to.
//
// Exactly one of the variant fields is expected to be set. When several are
// set, the variant is chosen in the order Function, Table, RDS, HTTP.
type DataSource struct {
	// Function makes this a Lambda data source.
	Function *Function

	// Table makes this a DynamoDB data source.
	Table *Table

	// RDS makes this a relational database data source.
	RDS *RDS

	// HTTP makes this an HTTP data source.
	HTTP *HTTP
}

// A DataSourceVariant is the classified kind of a data source definition.
type DataSourceVariant int

// Data source variants.
const (
	Lambda DataSourceVariant = iota + 1
	DynamoDB
	Rds
	Http
)

// String returns a human readable variant name.
func (v DataSourceVariant) String() string {
	switch v {
	case Lambda:
		return "lambda"
	case DynamoDB:
		return "dynamodb"
	case Rds:
		return "rds"
	case Http:
		return "http"
	default:
		return fmt.Sprintf("unknown (%d)", int(v))
	}
}

// An AmbiguousDefinitionError is returned when a definition cannot be
// classified into exactly one variant.
type AmbiguousDefinitionError struct {
	// Reason describes why the definition could not be classified.
	Reason string
}

// Error implements error.
func (e AmbiguousDefinitionError) Error() string {
	return fmt.Sprintf("ambiguous definition: %s", e.Reason)
}

// Variant classifies the definition. The variant fields are checked in
// priority order and the first set field wins. A definition with no variant
// field set returns an AmbiguousDefinitionError.
func (d DataSource) Variant() (DataSourceVariant, error) {
	switch {
	case d.Function != nil:
		return Lambda, nil
	case d.Table != nil:
		return DynamoDB, nil
	case d.RDS != nil:
		return Rds, nil
	case d.HTTP != nil:
		return Http, nil
	default:
		return 0, AmbiguousDefinitionError{Reason: "data source has no function, table, rds or http definition"}
	}
}
