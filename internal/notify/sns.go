package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/rs/zerolog/log"
)

// SNSDispatcher publishes push-channel dispatches to an SNS topic.
type SNSDispatcher struct {
	svc      *sns.Client
	topicArn string
}

func NewSNSDispatcher(region, topicArn string) (*SNSDispatcher, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}
	return &SNSDispatcher{
		svc:      sns.NewFromConfig(cfg),
		topicArn: topicArn,
	}, nil
}

func (c *SNSDispatcher) Send(ctx context.Context, d Dispatch) error {
	input := &sns.PublishInput{
		TopicArn: aws.String(c.topicArn),
		Subject:  aws.String(d.Subject),
		Message:  aws.String(d.Message),
	}
	result, err := c.svc.Publish(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to publish to SNS: %w", err)
	}
	log.Debug().Str("message_id", aws.ToString(result.MessageId)).Str("dispatch", d.ID).Msg("alert published")
	return nil
}
