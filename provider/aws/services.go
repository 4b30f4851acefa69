package aws

import (
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/awserr"
	"github.com/aws/aws-sdk-go-v2/aws/endpoints"
	"github.com/aws/aws-sdk-go-v2/aws/external"
	"github.com/aws/aws-sdk-go-v2/service/appsync"
	"github.com/aws/aws-sdk-go-v2/service/appsync/appsynciface"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/iam/iamiface"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/lambdaiface"
	"github.com/cenkalti/backoff"
	"github.com/pkg/errors"
)

type appsyncService struct {
	appsyncClient appsynciface.ClientAPI
}

// service returns an AppSync API Client. If a client was set, it is returned.
func (p *appsyncService) service(region string) (appsynciface.ClientAPI, error) {
	if p.appsyncClient != nil {
		return p.appsyncClient, nil
	}
	cfg, err := awsConfig(region)
	if err != nil {
		return nil, err
	}
	return appsync.New(cfg), nil
}

type lambdaService struct {
	lambdaClient lambdaiface.ClientAPI
}

// service returns a Lambda API Client. If a client was set, it is returned.
func (p *lambdaService) service(region string) (lambdaiface.ClientAPI, error) {
	if p.lambdaClient != nil {
		return p.lambdaClient, nil
	}
	cfg, err := awsConfig(region)
	if err != nil {
		return nil, err
	}
	return lambda.New(cfg), nil
}

type iamService struct {
	iamClient iamiface.ClientAPI
}

// service returns an IAM API Client. If a client was set, it is returned.
// IAM is global; the region only selects the endpoint to send calls to.
func (p *iamService) service(region string) (iamiface.ClientAPI, error) {
	if p.iamClient != nil {
		return p.iamClient, nil
	}
	if region == "" {
		region = defaultRegion()
	}
	cfg, err := awsConfig(region)
	if err != nil {
		return nil, err
	}
	return iam.New(cfg), nil
}

func awsConfig(region string) (aws.Config, error) {
	cfg, err := external.LoadDefaultAWSConfig()
	if err != nil {
		return aws.Config{}, errors.Wrap(err, "load aws config")
	}
	if region != "" {
		cfg.Region = region
	}
	if cfg.Region == "" {
		cfg.Region = defaultRegion()
	}
	return cfg, nil
}

func handlePutError(err error) error {
	if err == nil {
		return nil
	}
	if aerr, ok := err.(awserr.RequestFailure); ok {
		if aerr.StatusCode() == http.StatusTooManyRequests {
			return err
		}
		if aerr.StatusCode() >= 400 && aerr.StatusCode() < 500 {
			return backoff.Permanent(err)
		}
		return err
	}
	return err
}

// defaultRegion determines the default region to use based on:
//
//  - From AWS_DEFAULT_REGION environment variable.
//  - From region in ~/.aws/credentials.
//  - If neither is set, us-east-1 is used.
func defaultRegion() string {
	const fallback = endpoints.UsEast1RegionID
	var cfgs external.Configs
	cfgs, err := cfgs.AppendFromLoaders(external.DefaultConfigLoaders)
	if err != nil {
		return fallback
	}
	cfg, err := cfgs.ResolveAWSConfig([]external.AWSConfigResolver{
		external.ResolveRegion,
	})
	if err != nil {
		return fallback
	}
	if cfg.Region == "" {
		// No AWS config available
		return fallback
	}
	return cfg.Region
}
