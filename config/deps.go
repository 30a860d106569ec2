package config

import (
	"log/slog"

	"github.com/versebank/banking/pkg/eventbus"
	"github.com/versebank/banking/pkg/notification"
	"github.com/versebank/banking/pkg/repository"
)

// Deps holds all infrastructure dependencies for building the app and
// services.
type Deps struct {
	Uow      repository.UnitOfWork
	Notifier notification.Notifier
	EventBus eventbus.Bus
	Logger   *slog.Logger
	Config   *App
}
