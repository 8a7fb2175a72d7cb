package sns

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/pkg/errors"
	"github.com/shop-assistant-api/internal/config"
	"github.com/shop-assistant-api/internal/infrastructure/awsclient"
)

// SMSSender sends SMS messages via AWS SNS.
type SMSSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

// PublishAPI is the part of *sns.Client the sender uses.
type PublishAPI interface {
	Publish(ctx context.Context, in *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type sender struct {
	client PublishAPI
}

func NewSender(ctx context.Context, cfg *config.Config) (SMSSender, error) {
	awsCfg, err := awsclient.Load(ctx, cfg, cfg.SNSRegion)
	if err != nil {
		return nil, err
	}
	return NewSenderWithClient(sns.NewFromConfig(awsCfg)), nil
}

func NewSenderWithClient(client PublishAPI) SMSSender {
	return &sender{client: client}
}

// SendSMS publishes a transactional SMS. Local Vietnamese numbers (leading 0)
// are converted to E.164.
func (s *sender) SendSMS(ctx context.Context, to, message string) error {
	phone := E164(to)
	_, err := s.client.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(phone),
		Message:     aws.String(message),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"AWS.SNS.SMS.SMSType": {DataType: aws.String("String"), StringValue: aws.String("Transactional")},
		},
	})
	return errors.Wrapf(err, "publish sms to %s", phone)
}

// E164 normalises a phone number, assuming Vietnam (+84) for local numbers.
func E164(phone string) string {
	p := strings.NewReplacer(" ", "", ".", "", "-", "").Replace(strings.TrimSpace(phone))
	switch {
	case strings.HasPrefix(p, "+"):
		return p
	case strings.HasPrefix(p, "84"):
		return "+" + p
	case strings.HasPrefix(p, "0"):
		return "+84" + p[1:]
	}
	return p
}
