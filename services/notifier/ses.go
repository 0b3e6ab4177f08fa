package notifier

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	appconfig "sjsage522/shoetracker/config"
	"sjsage522/shoetracker/internal/policy"
	"sjsage522/shoetracker/logger"
	apperrors "sjsage522/shoetracker/pkg/errors"
)

// SESNotifier sends the alert summary via Amazon SES
type SESNotifier struct {
	client *ses.Client
	from   string
	to     []string
	log    *logger.Logger
}

// NewSESNotifier builds an SES notifier from the application configuration.
// Callers must check cfg.EmailConfigured() first and fall back to Noop.
func NewSESNotifier(ctx context.Context, cfg appconfig.Config) (*SESNotifier, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, apperrors.NewNotification("notifier", "failed to configure SES client", err)
	}

	return &SESNotifier{
		client: ses.NewFromConfig(awsCfg),
		from:   cfg.EmailFrom,
		to:     cfg.EmailTo,
		log:    logger.ForNotifier(),
	}, nil
}

// Notify composes one summary email covering all alerts and sends it.
// Nothing is sent for an empty alert slice.
func (n *SESNotifier) Notify(ctx context.Context, alerts []policy.AlertEvent) error {
	if len(alerts) == 0 {
		return nil
	}

	out, err := n.client.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(n.from),
		Destination: &types.Destination{
			ToAddresses: n.to,
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(Subject(alerts))},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(TextBody(alerts))},
				Html: &types.Content{Data: aws.String(HTMLBody(alerts))},
			},
		},
	})
	if err != nil {
		return apperrors.NewNotification("notifier", "failed to send alert email", err)
	}

	n.log.Info().
		Str("message_id", aws.ToString(out.MessageId)).
		Int("recipients", len(n.to)).
		Int("alerts", len(alerts)).
		Msg("Alert email sent")
	return nil
}
