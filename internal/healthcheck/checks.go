package healthcheck

import (
	"context"
	"time"

	"github.com/casedesk/casedesk/internal/config"
)

const dbCheckTimeout = 2 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

// DatabaseChecker pings Postgres.
type DatabaseChecker struct {
	db Pinger
}

func NewDatabaseChecker(db Pinger) *DatabaseChecker {
	return &DatabaseChecker{db: db}
}

func (c *DatabaseChecker) ListChecks(ctx context.Context) []CheckResult {
	result := CheckResult{ID: "postgres", Type: "database"}
	if c.db == nil {
		result.Status = StatusError
		result.Summary = "database not configured"
		return []CheckResult{result}
	}
	ctx, cancel := context.WithTimeout(ctx, dbCheckTimeout)
	defer cancel()
	started := time.Now()
	if err := c.db.Ping(ctx); err != nil {
		result.Status = StatusError
		result.Summary = "ping failed"
		result.Detail = err.Error()
		return []CheckResult{result}
	}
	result.Status = StatusOK
	result.Summary = "reachable in " + time.Since(started).Round(time.Millisecond).String()
	return []CheckResult{result}
}

// IntegrationsChecker reports which outbound integrations are configured.
// Missing ones degrade features without stopping ingestion.
type IntegrationsChecker struct {
	cfg config.Config
}

func NewIntegrationsChecker(cfg config.Config) *IntegrationsChecker {
	return &IntegrationsChecker{cfg: cfg}
}

func (c *IntegrationsChecker) ListChecks(context.Context) []CheckResult {
	return []CheckResult{
		configured("classifier", "llm", c.cfg.Classifier.Enabled(), "messages are stored without case links"),
		configured("n8n_rag_query", "webhook", c.cfg.N8N.RAGQueryURL != "", "RAG queries are rejected"),
		configured("n8n_upload_to_drive", "webhook", c.cfg.N8N.UploadToDriveURL != "", "Drive uploads are rejected"),
		configured("webhook_signature", "security", c.cfg.Webhooks.Secret != "", "inbound webhooks are not signature-checked"),
	}
}

func configured(id, typ string, ok bool, degraded string) CheckResult {
	if ok {
		return CheckResult{ID: id, Type: typ, Status: StatusOK, Summary: "configured"}
	}
	return CheckResult{ID: id, Type: typ, Status: StatusWarn, Summary: "not configured", Detail: degraded}
}
