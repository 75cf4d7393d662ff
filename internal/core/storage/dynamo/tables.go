package dynamo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// TableCreator is the part of the DynamoDB client EnsureTables needs.
type TableCreator interface {
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// EnsureTables creates the claims and topics tables when they are missing
// and waits until both are active.
func EnsureTables(ctx context.Context, api TableCreator, tables Tables) error {
	inputs := []*dynamodb.CreateTableInput{
		{
			TableName:   aws.String(tables.Claims),
			BillingMode: types.BillingModePayPerRequest,
			AttributeDefinitions: []types.AttributeDefinition{
				{AttributeName: aws.String("claim_id"), AttributeType: types.ScalarAttributeTypeS},
				{AttributeName: aws.String("customer_id"), AttributeType: types.ScalarAttributeTypeS},
				{AttributeName: aws.String("created_seq"), AttributeType: types.ScalarAttributeTypeN},
			},
			KeySchema: []types.KeySchemaElement{
				{AttributeName: aws.String("claim_id"), KeyType: types.KeyTypeHash},
			},
			GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{
				{
					IndexName: aws.String(CustomerIndex),
					KeySchema: []types.KeySchemaElement{
						{AttributeName: aws.String("customer_id"), KeyType: types.KeyTypeHash},
						{AttributeName: aws.String("created_seq"), KeyType: types.KeyTypeRange},
					},
					Projection: &types.Projection{
						ProjectionType:   types.ProjectionTypeInclude,
						NonKeyAttributes: []string{"status"},
					},
				},
			},
		},
		{
			TableName:   aws.String(tables.Topics),
			BillingMode: types.BillingModePayPerRequest,
			AttributeDefinitions: []types.AttributeDefinition{
				{AttributeName: aws.String("topic_id"), AttributeType: types.ScalarAttributeTypeS},
			},
			KeySchema: []types.KeySchemaElement{
				{AttributeName: aws.String("topic_id"), KeyType: types.KeyTypeHash},
			},
		},
	}

	waiter := dynamodb.NewTableExistsWaiter(api)
	for _, in := range inputs {
		_, err := api.CreateTable(ctx, in)
		var inUse *types.ResourceInUseException
		switch {
		case errors.As(err, &inUse):
			slog.Info("[DynamoDB] Table already exists", "table", *in.TableName)
			continue
		case err != nil:
			return fmt.Errorf("failed to create table %s: %w", *in.TableName, err)
		}

		slog.Info("[DynamoDB] Created table, waiting until active", "table", *in.TableName)
		if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: in.TableName}, 2*time.Minute); err != nil {
			return fmt.Errorf("table %s did not become active: %w", *in.TableName, err)
		}
	}
	return nil
}
