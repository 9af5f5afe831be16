package portalauth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/portalauth/portalauth/policy"
	"github.com/portalauth/portalauth/session"
)

// Client defines a public type used by portalauth APIs.
//
// Client instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Client struct {
	config  Config
	store   session.Store
	policy  *policy.Policy
	http    *http.Client
	logger  *zap.Logger
	audit   *auditDispatcher
	metrics *Metrics

	// seqMu guards latestLoginSeq. Only the login attempt holding the
	// latest sequence tag may commit its result to the store.
	seqMu          sync.Mutex
	latestLoginSeq string
}

// Close describes the close operation and its observable behavior.
//
// Close does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) Close() {
	if c == nil {
		return
	}
	if c.audit != nil {
		c.audit.Close()
	}
}

// AuditDropped describes the auditdropped operation and its observable behavior.
//
// AuditDropped does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) AuditDropped() uint64 {
	if c == nil || c.audit == nil {
		return 0
	}
	return c.audit.Dropped()
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) MetricsSnapshot() MetricsSnapshot {
	if c == nil || c.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return c.metrics.Snapshot()
}

// Policy exposes the decision functions the client was built with so
// callers can evaluate roles without going through a guard.
func (c *Client) Policy() *policy.Policy {
	if c == nil {
		return nil
	}
	return c.policy
}

// Config returns a defensive copy of the client configuration.
func (c *Client) Config() Config {
	if c == nil {
		return Config{}
	}
	return cloneConfig(c.config)
}

func (c *Client) metricInc(id MetricID) {
	if c == nil || c.metrics == nil {
		return
	}
	c.metrics.Inc(id)
}

func (c *Client) auditEmit(ctx context.Context, event AuditEvent) {
	if c == nil || c.audit == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if event.IP == "" {
		event.IP = clientIPFromContext(ctx)
	}
	if event.Route == "" {
		event.Route = requestPathFromContext(ctx)
	}
	if event.UserAgent == "" {
		event.UserAgent = userAgentFromContext(ctx)
	}
	c.audit.Emit(ctx, event)
}

// EnsureSchema reconciles the persisted session record with the schema
// version the client was configured for. A version mismatch (including a
// missing tag) wipes the whole record as a unit before the new tag is
// written; a field-by-field migration is never attempted.
//
//	Docs: docs/session.md
func (c *Client) EnsureSchema(ctx context.Context) error {
	if c == nil || c.store == nil {
		return ErrClientNotReady
	}

	wiped, err := c.store.EnsureSchema(ctx, c.config.Session.SchemaVersion)
	if err != nil {
		return fmt.Errorf("%w: %v", session.ErrStoreUnavailable, err)
	}
	if wiped {
		c.metricInc(MetricSchemaWipe)
		c.logger.Info("session schema mismatch, record wiped",
			zap.Int("schema_version", c.config.Session.SchemaVersion))
	}
	return nil
}

// CurrentSession loads the persisted session record. Absent and
// unparseable records both yield nil without error; the caller treats
// nil as signed-out.
func (c *Client) CurrentSession(ctx context.Context) (*Session, error) {
	if c == nil || c.store == nil {
		return nil, ErrClientNotReady
	}

	sess, err := c.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", session.ErrStoreUnavailable, err)
	}
	return sess, nil
}

/* ==== UPSTREAM TRANSPORT ==== */

type upstreamError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// postJSON issues a JSON request against the configured upstream base URL
// and decodes the response body into out when out is non-nil. Transport
// failures and 5xx responses surface as ErrUpstreamUnavailable; 401 maps
// to ErrInvalidCredentials and any other 4xx to ErrRequestRejected.
func (c *Client) postJSON(ctx context.Context, method, path, token string, in, out any) error {
	if c.config.Client.BaseURL == "" {
		return fmt.Errorf("%w: upstream base URL not configured", ErrClientNotReady)
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%w: encode request: %v", ErrRequestRejected, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.Client.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestRejected, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decode response: %v", ErrUpstreamUnavailable, err)
		}
		return nil
	}

	var ue upstreamError
	_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&ue)

	return mapUpstreamStatus(resp.StatusCode, ue.Message)
}

func mapUpstreamStatus(status int, message string) error {
	switch {
	case status == http.StatusUnauthorized:
		if message != "" {
			return fmt.Errorf("%w: %s", ErrInvalidCredentials, message)
		}
		return ErrInvalidCredentials
	case status >= 400 && status < 500:
		if message != "" {
			return fmt.Errorf("%w: status %d: %s", ErrRequestRejected, status, message)
		}
		return fmt.Errorf("%w: status %d", ErrRequestRejected, status)
	default:
		return fmt.Errorf("%w: status %d", ErrUpstreamUnavailable, status)
	}
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
