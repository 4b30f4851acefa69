package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/appsync"
	"github.com/pkg/errors"

	"github.com/graphbind/graphbind/definition"
	"github.com/graphbind/graphbind/provider"
)

// CreateDataSource creates an AppSync data source, including the service
// role AppSync uses to reach the backing resource.
func (p *Provider) CreateDataSource(ctx context.Context, api provider.Handle, key string, cfg provider.DataSourceConfig) (provider.Handle, error) {
	svc, err := p.appsyncService.service(p.Region)
	if err != nil {
		return nil, err
	}

	input := &appsync.CreateDataSourceInput{
		ApiId: aws.String(api.ID()),
		Name:  aws.String(resourceName(roleNameMaxLen, key)),
	}

	switch cfg.Variant {
	case definition.Lambda:
		fnARN := cfg.Function.ID()
		if err := check.Var(fnARN, "arn"); err != nil {
			return nil, errors.Wrapf(err, "data source %s: function arn", key)
		}
		roleARN, err := p.serviceRole(ctx, api.ID(), key, []string{"lambda:InvokeFunction"}, []string{fnARN})
		if err != nil {
			return nil, err
		}
		input.Type = appsync.DataSourceTypeAwsLambda
		input.ServiceRoleArn = aws.String(roleARN)
		input.LambdaConfig = &appsync.LambdaDataSourceConfig{
			LambdaFunctionArn: aws.String(fnARN),
		}
	case definition.DynamoDB:
		region := cfg.Table.Region
		if region == "" {
			region = p.Region
		}
		if region == "" {
			region = defaultRegion()
		}
		roleARN, err := p.serviceRole(ctx, api.ID(), key, []string{"dynamodb:*"}, []string{"*"})
		if err != nil {
			return nil, err
		}
		input.Type = appsync.DataSourceTypeAmazonDynamodb
		input.ServiceRoleArn = aws.String(roleARN)
		input.DynamodbConfig = &appsync.DynamodbDataSourceConfig{
			AwsRegion: aws.String(region),
			TableName: aws.String(cfg.Table.TableName),
		}
	case definition.Rds:
		if err := check.Var(cfg.RDS.ClusterARN, "arn"); err != nil {
			return nil, errors.Wrapf(err, "data source %s: cluster arn", key)
		}
		if err := check.Var(cfg.RDS.SecretARN, "arn"); err != nil {
			return nil, errors.Wrapf(err, "data source %s: secret arn", key)
		}
		roleARN, err := p.serviceRole(ctx, api.ID(), key,
			[]string{"rds-data:*", "secretsmanager:GetSecretValue"},
			[]string{cfg.RDS.ClusterARN, cfg.RDS.SecretARN},
		)
		if err != nil {
			return nil, err
		}
		region := p.Region
		if region == "" {
			region = defaultRegion()
		}
		input.Type = appsync.DataSourceTypeRelationalDatabase
		input.ServiceRoleArn = aws.String(roleARN)
		input.RelationalDatabaseConfig = &appsync.RelationalDatabaseDataSourceConfig{
			RelationalDatabaseSourceType: appsync.RelationalDatabaseSourceTypeRdsHttpEndpoint,
			RdsHttpEndpointConfig: &appsync.RdsHttpEndpointConfig{
				AwsRegion:           aws.String(region),
				AwsSecretStoreArn:   aws.String(cfg.RDS.SecretARN),
				DbClusterIdentifier: aws.String(cfg.RDS.ClusterARN),
				DatabaseName:        aws.String(cfg.RDS.DatabaseName),
			},
		}
	case definition.Http:
		if err := check.Var(cfg.HTTP.Endpoint, "required,url"); err != nil {
			return nil, errors.Wrapf(err, "data source %s: endpoint", key)
		}
		input.Type = appsync.DataSourceTypeHttp
		input.HttpConfig = &appsync.HttpDataSourceConfig{
			Endpoint: aws.String(cfg.HTTP.Endpoint),
		}
	default:
		return nil, errors.Errorf("data source %s: unsupported variant %s", key, cfg.Variant)
	}

	resp, err := svc.CreateDataSourceRequest(input).Send(ctx)
	if err != nil {
		return nil, errors.Wrapf(handlePutError(err), "create data source %s", key)
	}
	return handle{id: *resp.DataSource.Name, arn: *resp.DataSource.DataSourceArn}, nil
}

// serviceRole creates the role AppSync assumes for a data source and grants
// it the given actions. The role name is derived from the API id and data
// source key so redeploys reuse the same role.
func (p *Provider) serviceRole(ctx context.Context, apiID, key string, actions, resources []string) (string, error) {
	name := resourceName(roleNameMaxLen, "appsync", apiID, key)
	roleARN, err := p.createRole(ctx, name, "appsync.amazonaws.com")
	if err != nil {
		return "", errors.Wrapf(err, "data source %s: service role", key)
	}
	doc, err := allowPolicy(actions, resources)
	if err != nil {
		return "", err
	}
	if err := p.putRolePolicy(ctx, name, "datasource", doc); err != nil {
		return "", errors.Wrapf(err, "data source %s", key)
	}
	return roleARN, nil
}
