// internal/notify/notifier.go
package notify

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"

	"github.com/sanjaykumar079/farmer-backend/internal/common/config"
	"github.com/sanjaykumar079/farmer-backend/internal/common/errors"
	"github.com/sanjaykumar079/farmer-backend/internal/common/logger"
	"github.com/sanjaykumar079/farmer-backend/internal/models"
)

// EmailSender is the slice of the SES client the notifier needs.
type EmailSender interface {
	SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error)
}

// SMSPublisher is the slice of the SNS client the notifier needs.
type SMSPublisher interface {
	Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error)
}

// Notifier tells a farmer their query got an officer reply. Channels are
// independently configurable and failures never bubble up to the reply
// flow, an undelivered notification must not fail the officer's reply.
type Notifier struct {
	email  EmailSender
	sms    SMSPublisher
	cfg    config.NotificationConfig
	logger logger.Logger
}

func New(email EmailSender, sms SMSPublisher, cfg config.NotificationConfig, log logger.Logger) *Notifier {
	return &Notifier{email: email, sms: sms, cfg: cfg, logger: log}
}

// ReplyPosted notifies the farmer over every enabled channel. Returns the
// last delivery error for observability; callers log it and move on.
func (n *Notifier) ReplyPosted(ctx context.Context, farmer *models.Profile, query *models.Query, reply *models.Reply) error {
	if farmer == nil {
		return nil
	}

	var lastErr error

	if n.cfg.Email.Enabled && n.email != nil && farmer.Email != "" {
		if err := n.sendEmail(ctx, farmer, query, reply); err != nil {
			lastErr = err
		}
	}

	if n.cfg.SMS.Enabled && n.sms != nil && farmer.Phone != "" {
		if err := n.sendSMS(ctx, farmer, query); err != nil {
			lastErr = err
		}
	}

	return lastErr
}

func (n *Notifier) sendEmail(ctx context.Context, farmer *models.Profile, query *models.Query, reply *models.Reply) error {
	subject := fmt.Sprintf("Your farming query #%d has a new reply", query.ID)
	body := fmt.Sprintf("Hello %s,\n\nAn officer replied to your query:\n\n%q\n\nReply:\n%s\n",
		farmer.FullName, truncate(query.QueryText, 200), reply.ResponseText)

	_, err := n.email.SendEmail(ctx, &ses.SendEmailInput{
		Source: awssdk.String(n.cfg.Email.FromEmail),
		Destination: &sestypes.Destination{
			ToAddresses: []string{farmer.Email},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: awssdk.String(subject)},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: awssdk.String(body)},
			},
		},
	})
	if err != nil {
		n.logger.WithError(err).Warn("Reply email notification failed", map[string]interface{}{
			"queryId":  query.ID,
			"farmerId": farmer.ID,
		})
		return errors.NewNotificationSendFailedError("email", err)
	}

	n.logger.Info("Reply email notification sent", map[string]interface{}{
		"queryId":  query.ID,
		"farmerId": farmer.ID,
	})
	return nil
}

func (n *Notifier) sendSMS(ctx context.Context, farmer *models.Profile, query *models.Query) error {
	message := fmt.Sprintf("Your farming query #%d has a new reply. Log in to view it.", query.ID)

	input := &sns.PublishInput{
		PhoneNumber: awssdk.String(farmer.Phone),
		Message:     awssdk.String(message),
	}
	if n.cfg.SMS.SenderID != "" {
		input.MessageAttributes = map[string]snstypes.MessageAttributeValue{
			"AWS.SNS.SMS.SenderID": {
				DataType:    awssdk.String("String"),
				StringValue: awssdk.String(n.cfg.SMS.SenderID),
			},
		}
	}

	_, err := n.sms.Publish(ctx, input)
	if err != nil {
		n.logger.WithError(err).Warn("Reply SMS notification failed", map[string]interface{}{
			"queryId":  query.ID,
			"farmerId": farmer.ID,
		})
		return errors.NewNotificationSendFailedError("sms", err)
	}

	n.logger.Info("Reply SMS notification sent", map[string]interface{}{
		"queryId":  query.ID,
		"farmerId": farmer.ID,
	})
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
