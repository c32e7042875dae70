// internal/common/alerts/sns.go
package alerts

import (
	"context"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"minimart-assistant/internal/common/logger"
)

// Notifier publishes operational alerts. Catalog outages are the one
// condition in the query pipeline worth paging on.
type Notifier interface {
	Alert(ctx context.Context, subject, message string)
}

// SNSNotifier publishes alerts to an AWS SNS topic.
type SNSNotifier struct {
	client   *sns.Client
	topicARN string
	logger   logger.Logger
}

func NewSNSNotifier(ctx context.Context, region, topicARN string, log logger.Logger) (*SNSNotifier, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &SNSNotifier{
		client:   sns.NewFromConfig(cfg),
		topicARN: topicARN,
		logger:   log,
	}, nil
}

// Alert publishes best-effort; a failed alert is logged, never propagated.
func (n *SNSNotifier) Alert(ctx context.Context, subject, message string) {
	_, err := n.client.Publish(ctx, &sns.PublishInput{
		TopicArn: &n.topicARN,
		Subject:  &subject,
		Message:  &message,
	})
	if err != nil {
		n.logger.Error("failed to publish alert", map[string]interface{}{
			"subject": subject,
			"error":   err.Error(),
		})
	}
}

// NoopNotifier is used when alerting is disabled.
type NoopNotifier struct{}

func (NoopNotifier) Alert(ctx context.Context, subject, message string) {}
