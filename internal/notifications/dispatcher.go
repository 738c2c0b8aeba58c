package notifications

import (
	"context"
	"fmt"

	"github.com/helphub/helphub-backend/pkg/db/models"
	"github.com/helphub/helphub-backend/pkg/enums"
	"github.com/helphub/helphub-backend/pkg/logger"
	"github.com/helphub/helphub-backend/pkg/metrics"
	"github.com/helphub/helphub-backend/pkg/outbox"
	"go.uber.org/multierr"
)

const allSinks = "all"

type reportFinder interface {
	FindByID(ctx context.Context, id uint) (*models.Report, error)
}

type userFinder interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
}

// DispatcherParams bundles the dependencies required to build a dispatcher.
type DispatcherParams struct {
	Reports       reportFinder
	Users         userFinder
	Notifiers     []Notifier
	Metrics       *metrics.ReportMetrics
	Logger        *logger.Logger
	ExcerptLength int
}

// Dispatcher consumes the events of a committed report mutation. It records
// metrics for every event and sends resolution notices. It never fails the
// caller: notice errors are logged and counted.
type Dispatcher struct {
	reports       reportFinder
	users         userFinder
	notifiers     []Notifier
	metrics       *metrics.ReportMetrics
	logg          *logger.Logger
	decoders      *outbox.DecoderRegistry
	excerptLength int
}

func NewDispatcher(params DispatcherParams) (*Dispatcher, error) {
	if params.Reports == nil {
		return nil, fmt.Errorf("report finder required")
	}
	if params.Users == nil {
		return nil, fmt.Errorf("user finder required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &Dispatcher{
		reports:       params.Reports,
		users:         params.Users,
		notifiers:     params.Notifiers,
		metrics:       params.Metrics,
		logg:          logg,
		decoders:      outbox.NewReportDecoderRegistry(),
		excerptLength: params.ExcerptLength,
	}, nil
}

// Dispatch handles events in order.
func (d *Dispatcher) Dispatch(ctx context.Context, events []outbox.DomainEvent) {
	for _, event := range events {
		d.dispatchOne(ctx, event)
	}
}

func (d *Dispatcher) dispatchOne(ctx context.Context, event outbox.DomainEvent) {
	logCtx := d.logg.WithFields(d.logg.WithReportID(ctx, event.AggregateID), map[string]any{
		"event_id":   event.EventID.String(),
		"event_type": event.EventType,
	})
	defer func() {
		if r := recover(); r != nil {
			d.logg.Error(logCtx, "event dispatch panicked", fmt.Errorf("%v", r))
		}
	}()

	switch event.EventType {
	case enums.EventReportSubmitted:
		if payload, ok := payloadOf[outbox.ReportSubmittedEvent](d.decoders, event); ok {
			d.metrics.IncSubmitted(payload.Anonymous)
		}
	case enums.EventReportStatusChanged:
		if payload, ok := payloadOf[outbox.ReportStatusChangedEvent](d.decoders, event); ok {
			d.metrics.IncTransition(payload.From, payload.To)
		}
	case enums.EventReportResolved:
		payload, ok := payloadOf[outbox.ReportResolvedEvent](d.decoders, event)
		if !ok {
			d.logg.Warn(logCtx, "undecodable resolution event")
			return
		}
		if err := d.notifyResolved(logCtx, payload.ReportID); err != nil {
			d.logg.Error(logCtx, "failed to send resolution notice", err)
		}
	}
}

// payloadOf accepts typed payloads directly and falls back to the envelope
// registry for anything else.
func payloadOf[T any](decoders *outbox.DecoderRegistry, event outbox.DomainEvent) (T, bool) {
	if payload, ok := event.Data.(T); ok {
		return payload, true
	}
	var zero T
	envelope, err := event.Envelope()
	if err != nil {
		return zero, false
	}
	decoded, err := decoders.Decode(envelope)
	if err != nil {
		return zero, false
	}
	payload, ok := decoded.(T)
	return payload, ok
}

func (d *Dispatcher) notifyResolved(ctx context.Context, reportID uint) error {
	report, err := d.reports.FindByID(ctx, reportID)
	if err != nil {
		d.metrics.IncNotification(allSinks, metrics.NoticeFailed)
		return fmt.Errorf("load report: %w", err)
	}
	if report == nil {
		d.metrics.IncNotification(allSinks, metrics.NoticeSkipped)
		d.logg.Warn(ctx, "resolved report not found; notice skipped")
		return nil
	}
	if report.IsAnonymous() {
		d.metrics.IncNotification(allSinks, metrics.NoticeSkipped)
		return nil
	}

	ctx = d.logg.WithUserID(ctx, *report.UserID)
	user, err := d.users.FindByID(ctx, *report.UserID)
	if err != nil {
		d.metrics.IncNotification(allSinks, metrics.NoticeFailed)
		return fmt.Errorf("load user: %w", err)
	}
	if user == nil {
		d.metrics.IncNotification(allSinks, metrics.NoticeSkipped)
		d.logg.Warn(ctx, "report owner not found; notice skipped")
		return nil
	}

	notice := BuildNotice(user, report, d.excerptLength)
	var errs error
	for _, notifier := range d.notifiers {
		if err := notifier.Notify(ctx, notice); err != nil {
			d.metrics.IncNotification(notifier.Name(), metrics.NoticeFailed)
			errs = multierr.Append(errs, fmt.Errorf("%s sink: %w", notifier.Name(), err))
			continue
		}
		d.metrics.IncNotification(notifier.Name(), metrics.NoticeSent)
	}
	return errs
}
