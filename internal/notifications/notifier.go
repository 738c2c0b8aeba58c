package notifications

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/helphub/helphub-backend/pkg/config"
	"github.com/helphub/helphub-backend/pkg/logger"
	"github.com/helphub/helphub-backend/pkg/redis"
)

// Notifier delivers a resolution notice to one sink.
type Notifier interface {
	Name() string
	Notify(ctx context.Context, notice Notice) error
}

// LogNotifier simulates email delivery by writing the notice to the log.
type LogNotifier struct {
	logg *logger.Logger
}

func NewLogNotifier(logg *logger.Logger) *LogNotifier {
	if logg == nil {
		logg = logger.Nop()
	}
	return &LogNotifier{logg: logg}
}

func (n *LogNotifier) Name() string { return config.SinkLog }

func (n *LogNotifier) Notify(ctx context.Context, notice Notice) error {
	logCtx := n.logg.WithFields(n.logg.WithReportID(ctx, notice.ReportID), map[string]any{
		"to":      notice.To,
		"subject": notice.Subject,
		"body":    notice.Body(),
	})
	n.logg.Info(logCtx, "simulated email notification")
	return nil
}

// RedisNotifier mirrors notices into a capped Redis list for inspection.
type RedisNotifier struct {
	store  redis.NoticeStore
	list   string
	maxLen int64
}

func NewRedisNotifier(store redis.NoticeStore, cfg config.NotificationsConfig) (*RedisNotifier, error) {
	if store == nil {
		return nil, fmt.Errorf("redis notice store required")
	}
	return &RedisNotifier{store: store, list: cfg.RedisListKey, maxLen: cfg.RedisMaxLen}, nil
}

func (n *RedisNotifier) Name() string { return config.SinkRedis }

func (n *RedisNotifier) Notify(ctx context.Context, notice Notice) error {
	payload, err := json.Marshal(notice)
	if err != nil {
		return fmt.Errorf("marshal notice: %w", err)
	}
	if err := n.store.PushNotice(ctx, n.list, string(payload), n.maxLen); err != nil {
		return err
	}
	if _, err := n.store.Incr(ctx, n.store.CounterKey("notices_sent")); err != nil {
		return fmt.Errorf("count notice: %w", err)
	}
	return nil
}

// NotifiersFromConfig builds the configured sinks. store may be nil when the
// redis sink is disabled.
func NotifiersFromConfig(cfg config.NotificationsConfig, store redis.NoticeStore, logg *logger.Logger) ([]Notifier, error) {
	var out []Notifier
	if cfg.HasSink(config.SinkLog) {
		out = append(out, NewLogNotifier(logg))
	}
	if cfg.HasSink(config.SinkRedis) {
		notifier, err := NewRedisNotifier(store, cfg)
		if err != nil {
			return nil, err
		}
		out = append(out, notifier)
	}
	return out, nil
}
