package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/appsync"
	"github.com/pkg/errors"

	"github.com/graphbind/graphbind/provider"
)

// CreateResolver creates an AppSync resolver binding one field to a data
// source.
func (p *Provider) CreateResolver(ctx context.Context, api provider.Handle, cfg provider.ResolverConfig) (provider.Handle, error) {
	svc, err := p.appsyncService.service(p.Region)
	if err != nil {
		return nil, err
	}

	input := &appsync.CreateResolverInput{
		ApiId:          aws.String(api.ID()),
		TypeName:       aws.String(cfg.TypeName),
		FieldName:      aws.String(cfg.FieldName),
		DataSourceName: aws.String(cfg.DataSource.ID()),
	}
	if cfg.RequestTemplate != nil {
		input.RequestMappingTemplate = aws.String(cfg.RequestTemplate.Content)
	}
	if cfg.ResponseTemplate != nil {
		input.ResponseMappingTemplate = aws.String(cfg.ResponseTemplate.Content)
	}

	resp, err := svc.CreateResolverRequest(input).Send(ctx)
	if err != nil {
		return nil, errors.Wrapf(handlePutError(err), "create resolver %s.%s", cfg.TypeName, cfg.FieldName)
	}
	return handle{id: cfg.TypeName + "." + cfg.FieldName, arn: *resp.Resolver.ResolverArn}, nil
}
