package service

import (
	"context"
	"errors"
	"fmt"

	"firebase.google.com/go/v4/messaging"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"partyhub-backend/internal/domain"
	"partyhub-backend/internal/logger"
	"partyhub-backend/internal/repository"
)

// notificationDispatcher resolves fanout recipients to user profiles and
// hands each message to the transport. Delivery failures are logged and
// swallowed: a missed notification never rolls back the state transition
// that triggered it.
type notificationDispatcher struct {
	userRepo repository.UserRepository
	notifier Notifier
}

func NewNotificationDispatcher(userRepo repository.UserRepository, notifier Notifier) NotificationDispatcher {
	return &notificationDispatcher{userRepo: userRepo, notifier: notifier}
}

func (d *notificationDispatcher) Dispatch(ctx context.Context, notes []domain.Notification) {
	for _, note := range notes {
		user, err := d.userRepo.GetByID(ctx, note.RecipientID)
		if err != nil {
			logger.Warn("notification recipient lookup failed", "user_id", note.RecipientID, "kind", note.Kind, "error", err)
			continue
		}
		if err := d.notifier.Send(ctx, user, note.Title, note.Body); err != nil {
			logger.Warn("notification delivery failed", "user_id", note.RecipientID, "kind", note.Kind, "error", err)
		}
	}
}

// pushNotifier delivers through Firebase Cloud Messaging, one message per
// registered device token.
type pushNotifier struct {
	client *messaging.Client
}

func NewPushNotifier(client *messaging.Client) Notifier {
	return &pushNotifier{client: client}
}

func (n *pushNotifier) Send(ctx context.Context, user *domain.User, title, body string) error {
	if len(user.DeviceTokens) == 0 {
		return fmt.Errorf("user %s has no registered devices", user.ID)
	}
	var errs []error
	for _, token := range user.DeviceTokens {
		_, err := n.client.Send(ctx, &messaging.Message{
			Token: token,
			Notification: &messaging.Notification{
				Title: title,
				Body:  body,
			},
		})
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// emailNotifier delivers through SendGrid, for deployments without a push
// pipeline.
type emailNotifier struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailNotifier(apiKey, fromEmail, fromName string) Notifier {
	return &emailNotifier{apiKey: apiKey, fromEmail: fromEmail, fromName: fromName}
}

func (n *emailNotifier) Send(ctx context.Context, user *domain.User, title, body string) error {
	if user.Email == "" {
		return fmt.Errorf("user %s has no email on file", user.ID)
	}
	from := mail.NewEmail(n.fromName, n.fromEmail)
	to := mail.NewEmail(user.Name, user.Email)
	message := mail.NewSingleEmail(from, title, to, body, "")

	client := sendgrid.NewSendClient(n.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

// logNotifier is the transport for local development: it just logs.
type logNotifier struct{}

func NewLogNotifier() Notifier {
	return logNotifier{}
}

func (logNotifier) Send(ctx context.Context, user *domain.User, title, body string) error {
	logger.Info("notification", "user_id", user.ID, "title", title, "body", body)
	return nil
}
