// Package aws realizes resources on AWS AppSync, Lambda and IAM.
package aws

import (
	"github.com/graphbind/graphbind/provider"
)

// A Provider realizes resources on AWS.
//
// The zero value uses the default credential chain and region. Clients can be
// injected for tests through the embedded service structs.
type Provider struct {
	// Region to create resources in. If empty, the default region from the
	// environment or shared config is used.
	Region string

	appsyncService
	lambdaService
	iamService
}

var _ provider.Provider = (*Provider)(nil)

// A handle identifies a realized AWS resource by id and ARN.
type handle struct {
	id  string
	arn string
}

// ID returns the resource id.
func (h handle) ID() string { return h.id }

// ARN returns the resource ARN. Empty for resources that have no ARN.
func (h handle) ARN() string { return h.arn }
