// Package dynamo implements storage.ClaimStore on DynamoDB. Each claim is one
// item holding its header and the JSON-encoded event history; topics live in
// a second table.
package dynamo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	v1 "github.com/claimledger-lab/claimledger/internal/api/v1"
	"github.com/claimledger-lab/claimledger/internal/core/storage"
)

// CustomerIndex is the global secondary index listing a customer's claims
// in creation order.
const CustomerIndex = "customer_id-created_seq-index"

// API is the part of the DynamoDB client the store uses.
type API interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

type Tables struct {
	Claims string
	Topics string
}

// claimItem is the stored shape of a claim.
type claimItem struct {
	ClaimID    string    `dynamodbav:"claim_id"`
	CustomerID string    `dynamodbav:"customer_id"`
	TopicID    string    `dynamodbav:"topic_id"`
	Status     v1.Status `dynamodbav:"status"`
	CreatedSeq int64     `dynamodbav:"created_seq"`
	Events     []string  `dynamodbav:"events"`
}

type topicItem struct {
	TopicID   string `dynamodbav:"topic_id"`
	CreatedAt string `dynamodbav:"created_at"`
}

// Store implements storage.ClaimStore.
type Store struct {
	api    API
	tables Tables
	now    func() time.Time
}

func NewStore(api API, tables Tables) (*Store, error) {
	if tables.Claims == "" || tables.Topics == "" {
		return nil, fmt.Errorf("claims and topics table names are required")
	}
	return &Store{api: api, tables: tables, now: time.Now}, nil
}

func (s *Store) RegisterTopic(ctx context.Context, topicID string) (bool, error) {
	item, err := attributevalue.MarshalMap(topicItem{
		TopicID:   topicID,
		CreatedAt: s.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return false, fmt.Errorf("failed to marshal topic: %w", err)
	}

	_, err = s.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.tables.Topics),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(topic_id)"),
	})
	var exists *types.ConditionalCheckFailedException
	if errors.As(err, &exists) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to register topic: %w", err)
	}
	return true, nil
}

func (s *Store) GetClaim(ctx context.Context, claimID string) (*v1.Claim, error) {
	out, err := s.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.tables.Claims),
		Key:            claimKey(claimID),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get claim: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, storage.ErrNotFound
	}

	var item claimItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal claim: %w", err)
	}

	claim := &v1.Claim{
		ClaimID:    item.ClaimID,
		CustomerID: item.CustomerID,
		TopicID:    item.TopicID,
		Status:     item.Status,
		Events:     make([]*v1.Event, 0, len(item.Events)),
	}
	for i, raw := range item.Events {
		var evt v1.Event
		if err := json.Unmarshal([]byte(raw), &evt); err != nil {
			return nil, fmt.Errorf("failed to decode event %d of claim %s: %w", i, claimID, err)
		}
		claim.Events = append(claim.Events, &evt)
	}
	return claim, nil
}

// ReplaceClaim overwrites the header and history. created_seq is set only on
// first write so a resubmitted claim keeps its place in customer listings.
func (s *Store) ReplaceClaim(ctx context.Context, rec storage.ClaimRecord, evt *v1.Event) error {
	encoded, err := encodeEvent(evt)
	if err != nil {
		return err
	}

	_, err = s.api.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(s.tables.Claims),
		Key:              claimKey(rec.ClaimID),
		UpdateExpression: aws.String("SET customer_id = :c, topic_id = :t, #s = :s, events = :e, created_seq = if_not_exists(created_seq, :seq)"),
		ExpressionAttributeNames: map[string]string{
			"#s": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":c":   &types.AttributeValueMemberS{Value: rec.CustomerID},
			":t":   &types.AttributeValueMemberS{Value: rec.TopicID},
			":s":   &types.AttributeValueMemberS{Value: string(rec.Status)},
			":e":   &types.AttributeValueMemberL{Value: []types.AttributeValue{encoded}},
			":seq": s.seq(),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to replace claim: %w", err)
	}

	slog.Debug("[DynamoDB] Replaced claim", "claim_id", rec.ClaimID, "transaction_id", evt.TransactionID)
	return nil
}

// AppendEvent adds evt to the history. The header attributes are only
// written when the claim is new.
func (s *Store) AppendEvent(ctx context.Context, rec storage.ClaimRecord, evt *v1.Event) error {
	encoded, err := encodeEvent(evt)
	if err != nil {
		return err
	}

	_, err = s.api.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.tables.Claims),
		Key:       claimKey(rec.ClaimID),
		UpdateExpression: aws.String("SET customer_id = if_not_exists(customer_id, :c), " +
			"topic_id = if_not_exists(topic_id, :t), #s = :s, " +
			"events = list_append(if_not_exists(events, :empty), :e), " +
			"created_seq = if_not_exists(created_seq, :seq)"),
		ExpressionAttributeNames: map[string]string{
			"#s": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":c":     &types.AttributeValueMemberS{Value: rec.CustomerID},
			":t":     &types.AttributeValueMemberS{Value: rec.TopicID},
			":s":     &types.AttributeValueMemberS{Value: string(rec.Status)},
			":e":     &types.AttributeValueMemberL{Value: []types.AttributeValue{encoded}},
			":empty": &types.AttributeValueMemberL{Value: []types.AttributeValue{}},
			":seq":   s.seq(),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}

	slog.Debug("[DynamoDB] Appended event", "claim_id", rec.ClaimID, "transaction_id", evt.TransactionID)
	return nil
}

func (s *Store) ListClaimsByCustomer(ctx context.Context, customerID string) ([]v1.ClaimSummary, error) {
	paginator := dynamodb.NewQueryPaginator(s.api, &dynamodb.QueryInput{
		TableName:              aws.String(s.tables.Claims),
		IndexName:              aws.String(CustomerIndex),
		KeyConditionExpression: aws.String("customer_id = :c"),
		ProjectionExpression:   aws.String("claim_id, customer_id, #s"),
		ExpressionAttributeNames: map[string]string{
			"#s": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":c": &types.AttributeValueMemberS{Value: customerID},
		},
		ScanIndexForward: aws.Bool(true),
	})

	claims := []v1.ClaimSummary{}
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to query customer claims: %w", err)
		}
		var items []claimItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, fmt.Errorf("failed to unmarshal customer claims: %w", err)
		}
		for _, item := range items {
			claims = append(claims, v1.ClaimSummary{
				ClaimID:    item.ClaimID,
				CustomerID: item.CustomerID,
				Status:     item.Status,
			})
		}
	}
	return claims, nil
}

// Ping reports whether the claims table is reachable.
func (s *Store) Ping(ctx context.Context) error {
	_, err := s.api.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(s.tables.Claims),
	})
	return err
}

func (s *Store) seq() types.AttributeValue {
	return &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", s.now().UnixNano())}
}

func claimKey(claimID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"claim_id": &types.AttributeValueMemberS{Value: claimID},
	}
}

func encodeEvent(evt *v1.Event) (types.AttributeValue, error) {
	if evt.Payload == nil {
		return nil, fmt.Errorf("event %s has no payload", evt.TransactionID)
	}
	data, err := json.Marshal(evt)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}
	return &types.AttributeValueMemberS{Value: string(data)}, nil
}
