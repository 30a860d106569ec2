// Package notification provides delivery adapters for customer
// notifications. The email and SMS adapters are wired to structured logging
// until real gateways are configured.
package notification

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/versebank/banking/pkg/notification"
)

// EmailNotifier delivers notifications over email.
type EmailNotifier struct {
	logger *slog.Logger
}

// NewEmailNotifier creates an email notifier.
func NewEmailNotifier(logger *slog.Logger) *EmailNotifier {
	return &EmailNotifier{logger: logger}
}

// Notify implements notification.Notifier.
func (n *EmailNotifier) Notify(ctx context.Context, accountID uuid.UUID, op notification.Operation, details string) error {
	n.logger.Info("email notification sent",
		"accountID", accountID,
		"operation", op,
		"details", details,
	)
	return nil
}

// SMSNotifier delivers notifications over SMS.
type SMSNotifier struct {
	logger *slog.Logger
}

// NewSMSNotifier creates an SMS notifier.
func NewSMSNotifier(logger *slog.Logger) *SMSNotifier {
	return &SMSNotifier{logger: logger}
}

// Notify implements notification.Notifier.
func (n *SMSNotifier) Notify(ctx context.Context, accountID uuid.UUID, op notification.Operation, details string) error {
	n.logger.Info("sms notification sent",
		"accountID", accountID,
		"operation", op,
		"details", details,
	)
	return nil
}

// Fanout delivers each notification through every channel. All channels are
// attempted even when an earlier one fails; the failures are joined.
type Fanout struct {
	channels []notification.Notifier
}

// NewFanout creates a fanout over the given channels.
func NewFanout(channels ...notification.Notifier) *Fanout {
	return &Fanout{channels: channels}
}

// Notify implements notification.Notifier.
func (f *Fanout) Notify(ctx context.Context, accountID uuid.UUID, op notification.Operation, details string) error {
	var errs []error
	for _, ch := range f.channels {
		if err := ch.Notify(ctx, accountID, op, details); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
