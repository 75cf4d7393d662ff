// Package awsutil loads AWS configuration for the S3 blob store and the
// DynamoDB claim store.
package awsutil

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
)

// Load resolves credentials and region the standard SDK way. A non-empty
// endpoint (e.g. http://localhost:4566 for localstack) overrides the
// service endpoints.
func Load(ctx context.Context, region, endpoint string) (aws.Config, error) {
	opts := []func(*awscfg.LoadOptions) error{}
	if region != "" {
		opts = append(opts, awscfg.WithRegion(region))
	}
	cfg, err := awscfg.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	if endpoint != "" {
		cfg.BaseEndpoint = aws.String(endpoint)
	}
	return cfg, nil
}
