package mailer

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

type Email struct {
	To       string
	Subject  string
	HTMLBody string
}

// Mailer is the transactional email side-channel. Sends are fire-and-forget
// from the caller's perspective; nothing is retried.
type Mailer interface {
	Send(ctx context.Context, email Email) error
}

// SES delivers through AWS SES.
type SES struct {
	client  *sesv2.Client
	from    string
	replyTo string
}

func NewSES(awsCfg aws.Config, from, replyTo string) *SES {
	if replyTo == "" {
		replyTo = from
	}
	return &SES{
		client:  sesv2.NewFromConfig(awsCfg),
		from:    from,
		replyTo: replyTo,
	}
}

func (s *SES) Send(ctx context.Context, email Email) error {
	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.from),
		Destination: &types.Destination{
			ToAddresses: []string{email.To},
		},
		ReplyToAddresses: []string{s.replyTo},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(email.Subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(email.HTMLBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	})
	return err
}
