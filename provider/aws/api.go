package aws

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/appsync"
	"github.com/cenkalti/backoff"
	"github.com/pkg/errors"

	"github.com/graphbind/graphbind/provider"
)

// defaultAuthenticationType is used when the API config does not specify an
// authentication type.
const defaultAuthenticationType = "API_KEY"

// CreateAPI creates an AppSync GraphQL API and, when a schema is given,
// uploads it and waits for schema creation to finish.
func (p *Provider) CreateAPI(ctx context.Context, cfg provider.APIConfig) (provider.Handle, error) {
	svc, err := p.appsyncService.service(p.Region)
	if err != nil {
		return nil, err
	}

	if err := check.Var(cfg.Name, "required,max=65536"); err != nil {
		return nil, errors.Wrap(err, "api name")
	}

	auth := cfg.AuthenticationType
	if auth == "" {
		auth = defaultAuthenticationType
	}

	resp, err := svc.CreateGraphqlApiRequest(&appsync.CreateGraphqlApiInput{
		Name:               aws.String(cfg.Name),
		AuthenticationType: appsync.AuthenticationType(auth),
	}).Send(ctx)
	if err != nil {
		return nil, errors.Wrapf(handlePutError(err), "create graphql api %s", cfg.Name)
	}
	h := handle{id: *resp.GraphqlApi.ApiId, arn: *resp.GraphqlApi.Arn}

	if cfg.Schema != "" {
		if err := p.createSchema(ctx, h.id, cfg.Schema); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// createSchema starts schema creation and polls until it completes. Schema
// creation is asynchronous on the AppSync side.
func (p *Provider) createSchema(ctx context.Context, apiID, schema string) error {
	svc, err := p.appsyncService.service(p.Region)
	if err != nil {
		return err
	}

	_, err = svc.StartSchemaCreationRequest(&appsync.StartSchemaCreationInput{
		ApiId:      aws.String(apiID),
		Definition: []byte(schema),
	}).Send(ctx)
	if err != nil {
		return errors.Wrap(handlePutError(err), "start schema creation")
	}

	algo := backoff.WithContext(backoff.NewExponentialBackOff(), ctx)
	return backoff.Retry(func() error {
		resp, err := svc.GetSchemaCreationStatusRequest(&appsync.GetSchemaCreationStatusInput{
			ApiId: aws.String(apiID),
		}).Send(ctx)
		if err != nil {
			return handlePutError(err)
		}
		switch string(resp.Status) {
		case "SUCCESS", "ACTIVE":
			return nil
		case "FAILED", "NOT_APPLICABLE":
			details := ""
			if resp.Details != nil {
				details = *resp.Details
			}
			return backoff.Permanent(errors.Errorf("schema creation failed: %s", details))
		default:
			// Still processing.
			return errors.New("schema creation in progress")
		}
	}, algo)
}

// iamRetryMaxElapsed is how long IAM propagation retries are allowed to
// take. IAM is eventually consistent; a role created moments ago may not yet
// be visible to the service consuming it.
const iamRetryMaxElapsed = 2 * time.Minute

func iamBackoff(ctx context.Context) backoff.BackOff {
	algo := backoff.NewExponentialBackOff()
	algo.MaxElapsedTime = iamRetryMaxElapsed
	return backoff.WithContext(algo, ctx)
}
