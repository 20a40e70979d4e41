package dynamodb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"portfolio/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const (
	documentSK = "DOCUMENT"
	entityType = "Collection"
)

// Client is the subset of the DynamoDB API the document store needs
type Client interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// documentItem is the single item holding a whole collection
type documentItem struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	EntityType string `dynamodbav:"EntityType"`
	Document   string `dynamodbav:"Document"`
	ItemCount  int    `dynamodbav:"ItemCount"`
	UpdatedAt  string `dynamodbav:"UpdatedAt"`
}

// DocumentStore keeps a whole collection as one JSON document in a single
// DynamoDB item. Replace is an unconditional PutItem and the last writer
// wins. Seeding is conditional, so it never clobbers a real document.
type DocumentStore[T any] struct {
	client    Client
	tableName string
	name      string
	logger    *zap.Logger
}

// NewDocumentStore creates a store for the named collection
func NewDocumentStore[T any](client Client, tableName, name string, logger *zap.Logger) *DocumentStore[T] {
	return &DocumentStore[T]{
		client:    client,
		tableName: tableName,
		name:      name,
		logger:    logger,
	}
}

// Name returns the collection name
func (s *DocumentStore[T]) Name() string {
	return s.name
}

func (s *DocumentStore[T]) key() map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: "COLLECTION#" + s.name},
		"SK": &types.AttributeValueMemberS{Value: documentSK},
	}
}

// Load reads the collection, seeding an empty document when the item is absent
func (s *DocumentStore[T]) Load(ctx context.Context) (items []T, err error) {
	ctx, span := observability.StartSpan(ctx, "dynamodb.load",
		attribute.String("collection", s.name),
		attribute.String("table", s.tableName),
	)
	defer func() { observability.EndSpan(span, err) }()

	item, found, err := s.get(ctx)
	if err != nil {
		return nil, err
	}
	if !found {
		if err := s.seed(ctx); err != nil {
			return nil, err
		}
		if item, found, err = s.get(ctx); err != nil {
			return nil, err
		}
		if !found {
			return []T{}, nil
		}
	}

	items = []T{}
	if item.Document != "" {
		if err := json.Unmarshal([]byte(item.Document), &items); err != nil {
			return nil, fmt.Errorf("failed to decode %s document: %w", s.name, err)
		}
	}
	if items == nil {
		items = []T{}
	}
	span.SetAttributes(attribute.Int("items", len(items)))
	return items, nil
}

// Replace overwrites the whole collection
func (s *DocumentStore[T]) Replace(ctx context.Context, items []T) (err error) {
	ctx, span := observability.StartSpan(ctx, "dynamodb.replace",
		attribute.String("collection", s.name),
		attribute.Int("items", len(items)),
	)
	defer func() { observability.EndSpan(span, err) }()

	input, err := s.putInput(items)
	if err != nil {
		return err
	}
	if _, err := s.client.PutItem(ctx, input); err != nil {
		return fmt.Errorf("failed to put %s document: %w", s.name, err)
	}

	s.logger.Debug("Collection document saved",
		zap.String("collection", s.name),
		zap.Int("items", len(items)),
	)
	return nil
}

func (s *DocumentStore[T]) get(ctx context.Context) (documentItem, bool, error) {
	var item documentItem

	projection := expression.NamesList(expression.Name("Document"))
	expr, err := expression.NewBuilder().WithProjection(projection).Build()
	if err != nil {
		return item, false, fmt.Errorf("failed to build expression: %w", err)
	}

	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:                aws.String(s.tableName),
		Key:                      s.key(),
		ProjectionExpression:     expr.Projection(),
		ExpressionAttributeNames: expr.Names(),
		ConsistentRead:           aws.Bool(true),
	})
	if err != nil {
		return item, false, fmt.Errorf("failed to get %s document: %w", s.name, err)
	}
	if result.Item == nil {
		return item, false, nil
	}

	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return item, false, fmt.Errorf("failed to unmarshal %s document: %w", s.name, err)
	}
	return item, true, nil
}

// seed writes an empty document only while no item exists. Losing the
// race to another writer is not an error.
func (s *DocumentStore[T]) seed(ctx context.Context) error {
	input, err := s.putInput(nil)
	if err != nil {
		return err
	}

	cond := expression.AttributeNotExists(expression.Name("PK"))
	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return fmt.Errorf("failed to build expression: %w", err)
	}
	input.ConditionExpression = expr.Condition()
	input.ExpressionAttributeNames = expr.Names()

	_, err = s.client.PutItem(ctx, input)
	var conflict *types.ConditionalCheckFailedException
	switch {
	case err == nil:
		s.logger.Info("Seeded empty collection", zap.String("collection", s.name), zap.String("table", s.tableName))
		return nil
	case errors.As(err, &conflict):
		return nil
	default:
		return fmt.Errorf("failed to seed %s document: %w", s.name, err)
	}
}

func (s *DocumentStore[T]) putInput(items []T) (*dynamodb.PutItemInput, error) {
	if items == nil {
		items = []T{}
	}

	doc, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s document: %w", s.name, err)
	}

	item, err := attributevalue.MarshalMap(documentItem{
		PK:         "COLLECTION#" + s.name,
		SK:         documentSK,
		EntityType: entityType,
		Document:   string(doc),
		ItemCount:  len(items),
		UpdatedAt:  time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s document: %w", s.name, err)
	}

	return &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	}, nil
}
