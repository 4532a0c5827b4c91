package providers

import (
	"log/slog"

	"github.com/samber/do/v2"

	"github.com/ttpu/sports-equipment-portal-zplay800/internal/domain"
	"github.com/ttpu/sports-equipment-portal-zplay800/internal/logger"
	"github.com/ttpu/sports-equipment-portal-zplay800/internal/store"
)

// EventLog writes every committed catalog event to the debug log.
type EventLog struct {
	logger *slog.Logger
}

// Emit implements store.EventEmitter.
func (e *EventLog) Emit(event domain.Event) {
	e.logger.Debug("catalog event",
		"event_id", event.ID,
		"type", string(event.Type),
		"subject", event.Subject,
	)
}

var _ store.EventEmitter = (*EventLog)(nil)

// ProvideEventLog provides the event emitter handed to the store.
func ProvideEventLog(i do.Injector) (*EventLog, error) {
	log := do.MustInvoke[*logger.Logger](i)
	return &EventLog{logger: log.WithComponent("events").Logger}, nil
}

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the in-memory catalog store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)
	events := do.MustInvoke[*EventLog](i)

	db, err := store.New(log.WithComponent("store").Logger, events)
	if err != nil {
		return nil, err
	}

	return &StoreHandle{Store: db}, nil
}
