package aws

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// policyVersion is set on generated IAM policy documents.
const policyVersion = "2012-10-17"

type policyDocument struct {
	Version   string            `json:"Version"`
	Statement []policyStatement `json:"Statement"`
}

type policyStatement struct {
	Effect    string              `json:"Effect"`
	Action    []string            `json:"Action,omitempty"`
	Resource  []string            `json:"Resource,omitempty"`
	Principal map[string][]string `json:"Principal,omitempty"`
}

// allowPolicy generates a policy document allowing the given actions on the
// given resources.
func allowPolicy(actions, resources []string) (string, error) {
	doc := policyDocument{
		Version: policyVersion,
		Statement: []policyStatement{{
			Effect:   "Allow",
			Action:   actions,
			Resource: resources,
		}},
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return "", errors.Wrap(err, "marshal policy document")
	}
	return string(b), nil
}

// assumeRolePolicy generates a trust policy allowing the given service to
// assume the role.
func assumeRolePolicy(service string) (string, error) {
	doc := policyDocument{
		Version: policyVersion,
		Statement: []policyStatement{{
			Effect:    "Allow",
			Action:    []string{"sts:AssumeRole"},
			Principal: map[string][]string{"Service": {service}},
		}},
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return "", errors.Wrap(err, "marshal policy document")
	}
	return string(b), nil
}
