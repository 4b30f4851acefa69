package aws

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/awserr"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/pkg/errors"
)

// roleNameMaxLen is the IAM limit on role names.
const roleNameMaxLen = 64

// createRole creates an IAM role that can be assumed by the given service.
// If a role with the name already exists, it is reused. Returns the role ARN.
func (p *Provider) createRole(ctx context.Context, name, service string) (string, error) {
	svc, err := p.iamService.service(p.Region)
	if err != nil {
		return "", err
	}

	trust, err := assumeRolePolicy(service)
	if err != nil {
		return "", err
	}

	input := &iam.CreateRoleInput{
		AssumeRolePolicyDocument: aws.String(trust),
		RoleName:                 aws.String(name),
	}
	if err := input.Validate(); err != nil {
		return "", err
	}
	resp, err := svc.CreateRoleRequest(input).Send(ctx)
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok && aerr.Code() == iam.ErrCodeEntityAlreadyExistsException {
			get, gerr := svc.GetRoleRequest(&iam.GetRoleInput{RoleName: aws.String(name)}).Send(ctx)
			if gerr != nil {
				return "", errors.Wrapf(gerr, "get existing role %s", name)
			}
			return *get.Role.Arn, nil
		}
		return "", errors.Wrapf(handlePutError(err), "create role %s", name)
	}
	return *resp.Role.Arn, nil
}

// putRolePolicy attaches an inline policy to a role.
func (p *Provider) putRolePolicy(ctx context.Context, roleName, policyName, document string) error {
	svc, err := p.iamService.service(p.Region)
	if err != nil {
		return err
	}
	req := svc.PutRolePolicyRequest(&iam.PutRolePolicyInput{
		PolicyDocument: aws.String(document),
		PolicyName:     aws.String(policyName),
		RoleName:       aws.String(roleName),
	})
	if _, err := req.Send(ctx); err != nil {
		return errors.Wrapf(err, "put role policy %s on %s", policyName, roleName)
	}
	return nil
}

// attachRolePolicy attaches a managed policy to a role.
func (p *Provider) attachRolePolicy(ctx context.Context, roleName, policyARN string) error {
	svc, err := p.iamService.service(p.Region)
	if err != nil {
		return err
	}
	req := svc.AttachRolePolicyRequest(&iam.AttachRolePolicyInput{
		PolicyArn: aws.String(policyARN),
		RoleName:  aws.String(roleName),
	})
	if _, err := req.Send(ctx); err != nil {
		return errors.Wrapf(err, "attach policy %s to %s", policyARN, roleName)
	}
	return nil
}

// resourceName builds an AWS-safe name from parts: characters outside
// [A-Za-z0-9-_] become underscores and the result is truncated to maxLen,
// keeping a stable name for unchanged input.
func resourceName(maxLen int, parts ...string) string {
	name := strings.Join(parts, "-")
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
	if len(mapped) > maxLen {
		mapped = mapped[:maxLen]
	}
	return mapped
}
