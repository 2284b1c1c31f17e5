package dailyduty

import (
	"context"
	"log/slog"

	"github.com/rowalls/uh-internal-project/internal/core/events"
)

// AuditHandler writes one audit log line per acknowledged duty.
func AuditHandler(logger *slog.Logger) events.Handler {
	return func(ctx context.Context, e events.Event) error {
		ack, ok := e.(*events.DutyAcknowledgedEvent)
		if !ok {
			logger.WarnContext(ctx, "unexpected event for duty audit", "kind", e.Kind(), "event_id", e.ID())
			return nil
		}
		logger.InfoContext(ctx, "daily duty acknowledged",
			"audit", true,
			"event_id", ack.ID(),
			"duty", ack.Duty,
			"user_id", ack.UserID,
			"username", ack.Username,
			"at", ack.At().Format(TimeLayout))
		return nil
	}
}

// SubscribeAudit registers AuditHandler on the bus.
func SubscribeAudit(bus *events.EventBus, logger *slog.Logger) {
	bus.Subscribe(events.KindDutyAcknowledged, AuditHandler(logger))
}
