package dynamo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-notify-api/internal/domain"
)

// logItemKey is the partition key of the single item holding the whole log.
const logItemKey = "notification-log"

// LogStore keeps the full notification log as one opaque JSON blob in a single
// DynamoDB item. All mutation flows are read-all, transform, write-all; there
// is no partial-write path and no cross-writer isolation (last writer wins).
type LogStore struct {
	client    *dynamodb.Client
	tableName string
}

func NewLogStore(client *dynamodb.Client, tableName string) *LogStore {
	return &LogStore{client: client, tableName: tableName}
}

// LoadAll returns the current log in storage order (callers sort). A missing
// item or an unparseable payload is treated as an empty log, never an error.
func (s *LogStore) LoadAll(ctx context.Context) ([]domain.Notification, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key:       strKey("log_id", logItemKey),
	})
	if err != nil {
		return nil, fmt.Errorf("get notification log: %w", err)
	}
	if out.Item == nil {
		return []domain.Notification{}, nil
	}
	payload, ok := out.Item["payload"].(*types.AttributeValueMemberS)
	if !ok {
		slog.Warn("notification log item has no payload attribute, treating as empty")
		return []domain.Notification{}, nil
	}
	var log []domain.Notification
	if err := json.Unmarshal([]byte(payload.Value), &log); err != nil {
		slog.Warn("corrupt notification log payload, treating as empty", "err", err)
		return []domain.Notification{}, nil
	}
	return log, nil
}

// SaveAll overwrites the stored log with the given list.
func (s *LogStore) SaveAll(ctx context.Context, log []domain.Notification) error {
	if log == nil {
		log = []domain.Notification{}
	}
	payload, err := json.Marshal(log)
	if err != nil {
		return fmt.Errorf("marshal notification log: %w", err)
	}
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item: map[string]types.AttributeValue{
			"log_id":  &types.AttributeValueMemberS{Value: logItemKey},
			"payload": &types.AttributeValueMemberS{Value: string(payload)},
		},
	})
	if err != nil {
		return fmt.Errorf("put notification log: %w", err)
	}
	return nil
}
