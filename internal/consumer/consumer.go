// Package consumer bridges the NATS message bus to the activity-log
// service: it ingests published audit events and answers request/reply
// queries from other services on the bus.
package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"

	"github.com/coopsuite/activity-log-ms/internal/models"
)

// Subjects handled by the consumer.
const (
	SubjectCreated = "activity.log.created"
	SubjectSearch  = "activity.log.getActivityLogsFiltrado"
	SubjectGetByID = "activity.log.getActivityLogById"
)

const (
	// queueGroup makes subscriptions load-balanced across instances.
	queueGroup = "activity-log-ms"

	requestTimeout = 30 * time.Second
)

// Querier defines the query operations the consumer answers over NATS.
type Querier interface {
	Search(ctx context.Context, f *models.ActivityLogFilter) (*models.ActivityLogPage, error)
	GetByID(ctx context.Context, id string) (*models.ActivityLogDetail, error)
}

// EventSink accepts events for asynchronous, fire-and-forget persistence.
type EventSink interface {
	Enqueue(ev *models.ActivityLogEvent)
}

// Consumer subscribes to the activity-log subjects on a NATS connection.
type Consumer struct {
	conn    *nats.Conn
	querier Querier
	sink    EventSink
	log     *logrus.Logger
}

// New creates a Consumer over an established NATS connection.
func New(conn *nats.Conn, querier Querier, sink EventSink, log *logrus.Logger) *Consumer {
	return &Consumer{conn: conn, querier: querier, sink: sink, log: log}
}

// Start registers the queue subscriptions. Handlers run on the NATS
// client's delivery goroutines.
func (c *Consumer) Start() error {
	handlers := []struct {
		subject string
		handler nats.MsgHandler
	}{
		{SubjectCreated, c.handleCreated},
		{SubjectSearch, c.handleSearch},
		{SubjectGetByID, c.handleGetByID},
	}

	for _, h := range handlers {
		if _, err := c.conn.QueueSubscribe(h.subject, queueGroup, h.handler); err != nil {
			return fmt.Errorf("subscribing to %s: %w", h.subject, err)
		}
	}

	c.log.WithField("queue_group", queueGroup).Info("nats consumer started")

	return nil
}

// Run blocks until the context is cancelled, then drains the connection
// so in-flight messages are handled before shutdown.
func (c *Consumer) Run(ctx context.Context) error {
	<-ctx.Done()

	if err := c.conn.Drain(); err != nil {
		return fmt.Errorf("draining nats connection: %w", err)
	}

	return nil
}

// handleCreated ingests a published audit event. Events are
// fire-and-forget: malformed payloads are logged and dropped, and
// persistence outcomes are never reported back to the publisher.
func (c *Consumer) handleCreated(msg *nats.Msg) {
	var ev models.ActivityLogEvent
	if err := json.Unmarshal(msg.Data, &ev); err != nil {
		c.log.WithError(err).WithField("subject", msg.Subject).
			Warn("discarding malformed activity event")

		return
	}

	c.sink.Enqueue(&ev)
}

func (c *Consumer) handleSearch(msg *nats.Msg) {
	var req struct {
		Input *models.ActivityLogFilter `json:"input"`
	}

	if err := json.Unmarshal(msg.Data, &req); err != nil {
		c.replyError(msg, models.Invalidf("input", "invalid filter payload: %v", err))

		return
	}

	if req.Input == nil {
		req.Input = &models.ActivityLogFilter{}
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	page, err := c.querier.Search(ctx, req.Input)
	if err != nil {
		c.logFailure(msg, err, "activity log search failed")
		c.replyError(msg, err)

		return
	}

	c.reply(msg, page)
}

func (c *Consumer) handleGetByID(msg *nats.Msg) {
	var req struct {
		ID string `json:"id"`
	}

	if err := json.Unmarshal(msg.Data, &req); err != nil {
		c.replyError(msg, models.Invalidf("id", "invalid lookup payload: %v", err))

		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	detail, err := c.querier.GetByID(ctx, req.ID)
	if err != nil {
		c.logFailure(msg, err, "activity log lookup failed")
		c.replyError(msg, err)

		return
	}

	c.reply(msg, detail)
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type errorReply struct {
	Error errorBody `json:"error"`
}

func (c *Consumer) reply(msg *nats.Msg, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		c.log.WithError(err).WithField("subject", msg.Subject).
			Error("encoding nats reply failed")

		return
	}

	if err := msg.Respond(data); err != nil && !errors.Is(err, nats.ErrMsgNoReply) {
		c.log.WithError(err).WithField("subject", msg.Subject).Warn("nats reply failed")
	}
}

func (c *Consumer) replyError(msg *nats.Msg, err error) {
	c.reply(msg, errorReplyFor(err))
}

// errorReplyFor maps service-layer errors onto the wire error shape:
// validation errors carry the offending field, missing records report
// not_found, everything else is an opaque internal error.
func errorReplyFor(err error) errorReply {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		return errorReply{Error: errorBody{
			Code:    "validation_error",
			Message: verr.Message,
			Field:   verr.Field,
		}}
	case errors.Is(err, models.ErrRecordNotFound):
		return errorReply{Error: errorBody{
			Code:    "not_found",
			Message: "activity log record not found",
		}}
	default:
		return errorReply{Error: errorBody{
			Code:    "internal_error",
			Message: "internal error",
		}}
	}
}

// logFailure logs unexpected failures only: validation errors and
// not-found outcomes are expected caller-facing results, not faults.
func (c *Consumer) logFailure(msg *nats.Msg, err error, text string) {
	var verr *models.ValidationError
	if errors.As(err, &verr) || errors.Is(err, models.ErrRecordNotFound) {
		return
	}

	c.log.WithError(err).WithField("subject", msg.Subject).Error(text)
}
