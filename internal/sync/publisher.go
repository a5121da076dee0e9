// publisher.go: pushes unsynced LGU reports to the broker
package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/cvsuagritech/agrisight-go/internal/conf"
	"github.com/cvsuagritech/agrisight-go/internal/datastore"
	"github.com/cvsuagritech/agrisight-go/internal/logging"
	"github.com/cvsuagritech/agrisight-go/internal/model"
	"github.com/cvsuagritech/agrisight-go/internal/observability"
)

// Publisher pushes pending reports to the configured topic and marks them
// synced in the store. The store never syncs on its own; this is the external
// collaborator that flips the flag.
type Publisher struct {
	store   datastore.Interface
	client  Client
	topic   string
	metrics *observability.SyncMetrics
	log     *slog.Logger
	now     func() time.Time
}

// NewPublisher wires a publisher over the given store and broker client.
func NewPublisher(settings *conf.Settings, store datastore.Interface, client Client, metrics *observability.SyncMetrics) *Publisher {
	return &Publisher{
		store:   store,
		client:  client,
		topic:   settings.Sync.MQTT.Topic,
		metrics: metrics,
		log:     logging.ForService("sync"),
		now:     time.Now,
	}
}

// reportEnvelope is the wire format for one published report.
type reportEnvelope struct {
	Report      *model.LGUReport `json:"report"`
	PublishedAt time.Time        `json:"published_at"`
}

// PublishPending publishes every unsynced report, oldest first, and marks
// each one synced after its publish succeeds. Publishing stops at the first
// failure so ordering is preserved across retries. Returns the number of
// reports synced in this call.
func (p *Publisher) PublishPending(ctx context.Context) (int, error) {
	reports, err := p.store.GetUnsyncedLGUReports()
	if err != nil {
		return 0, err
	}
	if len(reports) == 0 {
		return 0, nil
	}

	if !p.client.IsConnected() {
		if err := p.client.Connect(ctx); err != nil {
			p.countError()
			return 0, err
		}
	}

	published := 0
	for i := range reports {
		if err := ctx.Err(); err != nil {
			return published, err
		}

		payload, err := json.Marshal(reportEnvelope{Report: &reports[i], PublishedAt: p.now()})
		if err != nil {
			p.countError()
			return published, fmt.Errorf("failed to encode report %d: %w", reports[i].ID, err)
		}

		topic := fmt.Sprintf("%s/%s", p.topic, string(reports[i].ReportType))
		if err := p.client.Publish(ctx, topic, string(payload)); err != nil {
			p.countError()
			return published, err
		}

		marked, err := p.store.MarkLGUReportSynced(reports[i].ID, p.now())
		if err != nil {
			return published, err
		}
		if !marked {
			p.log.Warn("report already marked synced by another publisher", "report_id", reports[i].ID)
		}

		published++
		if p.metrics != nil {
			p.metrics.PublishedTotal.Inc()
		}
		p.log.Info("report published",
			"report_id", reports[i].ID,
			"barangay", reports[i].BarangayName,
			"topic", topic)
	}
	return published, nil
}

func (p *Publisher) countError() {
	if p.metrics != nil {
		p.metrics.ErrorsTotal.Inc()
	}
}
