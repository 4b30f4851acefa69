package aws

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/awserr"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/cenkalti/backoff"
	"github.com/pkg/errors"

	"github.com/graphbind/graphbind/definition"
	"github.com/graphbind/graphbind/provider"
	"github.com/graphbind/graphbind/source"
)

// defaultRuntime is used when neither the definition nor the defaults set a
// runtime.
const defaultRuntime = "go1.x"

// CreateFunction packages the handler sources, creates an execution role and
// creates the Lambda function.
func (p *Provider) CreateFunction(ctx context.Context, scope, idHint string, def definition.Function) (provider.Function, error) {
	svc, err := p.lambdaService.service(p.Region)
	if err != nil {
		return nil, err
	}

	if def.Handler == "" {
		return nil, errors.Errorf("function %s: no handler", idHint)
	}
	if def.Timeout != nil {
		if err := check.Var(*def.Timeout, "min=1,max=900"); err != nil {
			return nil, errors.Wrapf(err, "function %s: timeout", idHint)
		}
	}
	if def.MemorySize != nil {
		if err := check.Var(*def.MemorySize, "min=64,max=3008"); err != nil {
			return nil, errors.Wrapf(err, "function %s: memory size", idHint)
		}
	}

	dir := def.Source
	if dir == "" {
		dir = filepath.Dir(def.Handler)
	}
	var code bytes.Buffer
	if _, err := source.Archive(&code, dir); err != nil {
		return nil, errors.Wrapf(err, "function %s: package source", idHint)
	}

	name := resourceName(64, scope, idHint)
	roleName := resourceName(roleNameMaxLen, "lambda", scope, idHint)
	roleARN, err := p.createRole(ctx, roleName, "lambda.amazonaws.com")
	if err != nil {
		return nil, errors.Wrapf(err, "function %s: execution role", idHint)
	}
	const basicExecution = "arn:aws:iam::aws:policy/service-role/AWSLambdaBasicExecutionRole"
	if err := p.attachRolePolicy(ctx, roleName, basicExecution); err != nil {
		return nil, errors.Wrapf(err, "function %s", idHint)
	}

	runtime := def.Runtime
	if runtime == "" {
		runtime = defaultRuntime
	}

	input := &lambda.CreateFunctionInput{
		Code: &lambda.FunctionCode{
			ZipFile: code.Bytes(),
		},
		FunctionName: aws.String(name),
		Handler:      aws.String(handlerName(def.Handler)),
		Layers:       def.Layers,
		MemorySize:   def.MemorySize,
		Role:         aws.String(roleARN),
		Runtime:      lambda.Runtime(runtime),
		Timeout:      def.Timeout,
	}
	if def.Description != "" {
		input.Description = aws.String(def.Description)
	}
	if len(def.Environment) > 0 {
		input.Environment = &lambda.Environment{
			Variables: def.Environment,
		}
	}
	if err := input.Validate(); err != nil {
		return nil, errors.Wrapf(err, "function %s", idHint)
	}

	var arn string
	err = backoff.Retry(func() error {
		resp, err := svc.CreateFunctionRequest(input).Send(ctx)
		if err != nil {
			if aerr, ok := err.(awserr.Error); ok {
				if aerr.Code() == lambda.ErrCodeInvalidParameterValueException &&
					strings.Contains(aerr.Message(), "cannot be assumed by Lambda") {
					// The execution role has not propagated yet. IAM is
					// eventually consistent; the same call succeeds within
					// seconds.
					return err
				}
			}
			return handlePutError(err)
		}
		arn = *resp.FunctionArn
		return nil
	}, iamBackoff(ctx))
	if err != nil {
		return nil, errors.Wrapf(err, "create function %s", name)
	}

	return &Function{
		arn:      arn,
		roleName: roleName,
		provider: p,
	}, nil
}

// handlerName returns the handler as passed to Lambda: the file portion of a
// handler path. "src/notes.main" becomes "notes.main".
func handlerName(handler string) string {
	return filepath.Base(handler)
}

// A Function is a realized Lambda function.
type Function struct {
	arn      string
	roleName string
	provider *Provider

	grants int
}

var _ provider.Function = (*Function)(nil)

// ID returns the function ARN.
func (f *Function) ID() string { return f.arn }

// Grant attaches an IAM policy statement to the function's execution role.
// Each grant becomes its own inline policy so repeated grants do not clobber
// each other.
func (f *Function) Grant(ctx context.Context, perm definition.Permission) error {
	doc, err := allowPolicy(perm.Actions, perm.Resources)
	if err != nil {
		return err
	}
	f.grants++
	name := fmt.Sprintf("grant-%d", f.grants)
	if err := f.provider.putRolePolicy(ctx, f.roleName, name, doc); err != nil {
		return errors.Wrapf(err, "grant %s", f.arn)
	}
	return nil
}
