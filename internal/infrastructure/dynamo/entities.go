package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/go-notify-api/internal/config"
	"github.com/go-notify-api/internal/domain"
)

// EntityStore resolves current snapshots of requests and orders from the host
// application's tables. Read-only: the engine never writes entities.
type EntityStore struct {
	client *dynamodb.Client
	tables config.DynamoTables
}

func NewEntityStore(client *dynamodb.Client, tables config.DynamoTables) *EntityStore {
	return &EntityStore{client: client, tables: tables}
}

// Lookup implements domain.EntityLookup. Returns domain.ErrNotFound when the
// referenced entity does not exist.
func (s *EntityStore) Lookup(ctx context.Context, entityType domain.EntityType, entityID string) (*domain.EntitySnapshot, error) {
	var table, keyAttr string
	switch entityType {
	case domain.EntityRequest:
		table, keyAttr = s.tables.Requests, "request_id"
	case domain.EntityOrder:
		table, keyAttr = s.tables.Orders, "order_id"
	default:
		return nil, fmt.Errorf("unknown entity type %q: %w", entityType, domain.ErrBadRequest)
	}

	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key:       strKey(keyAttr, entityID),
	})
	if err != nil {
		return nil, fmt.Errorf("get %s %s: %w", entityType, entityID, err)
	}
	if out.Item == nil {
		return nil, domain.ErrNotFound
	}
	var snap domain.EntitySnapshot
	if err := attributevalue.UnmarshalMap(out.Item, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal %s %s: %w", entityType, entityID, err)
	}
	return &snap, nil
}
