package sns

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/go-notify-api/internal/config"
	"github.com/go-notify-api/internal/domain"
)

// EventMirror publishes a copy of each recorded notification to an external
// topic for ops-side fan-out. Best effort: the engine's own log is the source
// of truth and a failed mirror never fails a publish.
type EventMirror interface {
	Mirror(ctx context.Context, n *domain.Notification) error
}

type mirror struct {
	client   *sns.Client
	topicARN string
}

// NewMirror creates the mirror. When cfg.AWSEndpointURL is set (LocalStack),
// it overrides the endpoint, same as the DynamoDB and S3 clients.
func NewMirror(cfg *config.Config) (EventMirror, error) {
	if cfg.SNSTopicARN == "" {
		return nil, fmt.Errorf("no SNS topic configured")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWSRegion),
	}
	if cfg.AWSAccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, err
	}

	clientOpts := []func(*sns.Options){}
	if cfg.AWSEndpointURL != "" {
		clientOpts = append(clientOpts, func(o *sns.Options) {
			o.BaseEndpoint = aws.String(cfg.AWSEndpointURL)
		})
	}

	return &mirror{client: sns.NewFromConfig(awsCfg, clientOpts...), topicARN: cfg.SNSTopicARN}, nil
}

func (m *mirror) Mirror(ctx context.Context, n *domain.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification for mirror: %w", err)
	}
	msg := string(payload)
	_, err = m.client.Publish(ctx, &sns.PublishInput{
		TopicArn: &m.topicARN,
		Message:  &msg,
	})
	return err
}
