package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// Default classification values applied at ingestion when the event omits them.
const (
	SourceAPI     = "API"
	ResultSuccess = "SUCCESS"
	ResultError   = "ERROR"
)

// ActivityRecord is one persisted audit event. Records are immutable:
// created once on ingestion, read many times, never updated or deleted.
type ActivityRecord struct {
	ID        int64
	CreatedAt time.Time

	Service   string
	Module    string
	Action    string
	Source    string
	Result    string
	EventName *string

	Entity   string
	EntityID *string

	UserID     *string
	UserNombre *string
	UserRol    *string

	CooperativaID *string
	SucursalID    *string

	Before json.RawMessage
	After  json.RawMessage

	IP            *string
	UserAgent     *string
	RequestID     *string
	CorrelationID *string

	Message *string
	Error   *string
}

// EventUser identifies the actor of an activity-log event.
type EventUser struct {
	ID     *string `json:"id,omitempty"`
	Nombre *string `json:"nombre,omitempty"`
	Rol    *string `json:"rol,omitempty"`
}

// EventOrg carries the organizational scope of an event.
type EventOrg struct {
	CooperativaID *string `json:"cooperativaId,omitempty"`
	SucursalID    *string `json:"sucursalId,omitempty"`
}

// EventMeta carries request metadata captured alongside an event.
type EventMeta struct {
	IP            *string `json:"ip,omitempty"`
	UserAgent     *string `json:"userAgent,omitempty"`
	RequestID     *string `json:"requestId,omitempty"`
	CorrelationID *string `json:"correlationId,omitempty"`
}

// ActivityLogEvent is the inbound ingestion payload.
type ActivityLogEvent struct {
	Service   string  `json:"service"`
	Module    string  `json:"module"`
	Action    string  `json:"action"`
	Source    string  `json:"source,omitempty"`
	Result    string  `json:"result,omitempty"`
	EventName *string `json:"eventName,omitempty"`

	Entity   string  `json:"entity"`
	EntityID *string `json:"entityId,omitempty"`

	User *EventUser `json:"user,omitempty"`
	Org  *EventOrg  `json:"org,omitempty"`

	Before json.RawMessage `json:"before,omitempty"`
	After  json.RawMessage `json:"after,omitempty"`

	Meta *EventMeta `json:"meta,omitempty"`

	Message *string `json:"message,omitempty"`
	Error   *string `json:"error,omitempty"`
}

// Validate checks the required classification fields of an event.
func (e *ActivityLogEvent) Validate() error {
	switch {
	case e.Service == "":
		return &ValidationError{Field: "service", Message: "service is required"}
	case e.Module == "":
		return &ValidationError{Field: "module", Message: "module is required"}
	case e.Action == "":
		return &ValidationError{Field: "action", Message: "action is required"}
	case e.Entity == "":
		return &ValidationError{Field: "entity", Message: "entity is required"}
	}

	return nil
}

// Record builds the storable record for an event, applying the default
// source and result classifications when the event omits them.
func (e *ActivityLogEvent) Record() *ActivityRecord {
	rec := &ActivityRecord{
		Service:   e.Service,
		Module:    e.Module,
		Action:    e.Action,
		Source:    e.Source,
		Result:    e.Result,
		EventName: e.EventName,
		Entity:    e.Entity,
		EntityID:  e.EntityID,
		Before:    e.Before,
		After:     e.After,
		Message:   e.Message,
		Error:     e.Error,
	}

	if rec.Source == "" {
		rec.Source = SourceAPI
	}

	if rec.Result == "" {
		rec.Result = ResultSuccess
	}

	if e.User != nil {
		rec.UserID = e.User.ID
		rec.UserNombre = e.User.Nombre
		rec.UserRol = e.User.Rol
	}

	if e.Org != nil {
		rec.CooperativaID = e.Org.CooperativaID
		rec.SucursalID = e.Org.SucursalID
	}

	if e.Meta != nil {
		rec.IP = e.Meta.IP
		rec.UserAgent = e.Meta.UserAgent
		rec.RequestID = e.Meta.RequestID
		rec.CorrelationID = e.Meta.CorrelationID
	}

	return rec
}

// Constraint is one (match mode, value) pair narrowing a single field
// within the generic filter group.
type Constraint struct {
	MatchMode string `json:"matchMode"`
	Value     any    `json:"value"`
}

// ConstraintSet is the list of constraints applied to one external field.
//
// The wire format accepts two shapes: a bare array of constraints, or an
// object exposing a "constraints" array (the shape UI filter widgets emit
// when they attach operator metadata). Anything else is a decode error.
type ConstraintSet []Constraint

// UnmarshalJSON accepts both supported wire shapes.
func (cs *ConstraintSet) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)

	if bytes.Equal(trimmed, []byte("null")) {
		*cs = nil

		return nil
	}

	if len(trimmed) > 0 && trimmed[0] == '[' {
		var plain []Constraint
		if err := json.Unmarshal(trimmed, &plain); err != nil {
			return err
		}

		*cs = plain

		return nil
	}

	var wrapper struct {
		Constraints []Constraint `json:"constraints"`
	}
	if err := json.Unmarshal(trimmed, &wrapper); err != nil {
		return err
	}

	*cs = wrapper.Constraints

	return nil
}

// ActivityLogFilter is the full set of caller-supplied criteria for a
// list query: direct filters, a date range, a free-text search term, the
// generic constraint group, and pagination controls.
//
// First is a 0-based row offset; when present and non-negative it takes
// precedence over Page.
type ActivityLogFilter struct {
	Service       string `json:"service,omitempty"`
	Module        string `json:"module,omitempty"`
	Action        string `json:"action,omitempty"`
	Result        string `json:"result,omitempty"`
	Source        string `json:"source,omitempty"`
	Entity        string `json:"entity,omitempty"`
	UserID        string `json:"userId,omitempty"`
	CooperativaID string `json:"cooperativaId,omitempty"`

	DateFrom string `json:"dateFrom,omitempty"`
	DateTo   string `json:"dateTo,omitempty"`

	Search string `json:"search,omitempty"`

	Filters map[string]ConstraintSet `json:"filters,omitempty"`

	Paginated *bool `json:"paginated,omitempty"`
	Page      *int  `json:"page,omitempty"`
	PageSize  *int  `json:"pageSize,omitempty"`
	First     *int  `json:"first,omitempty"`
}

// ActivityLogItem is the list projection of a record. Optional columns
// are omitted from the JSON rather than rendered as null.
type ActivityLogItem struct {
	ID        string `json:"id"`
	CreatedAt string `json:"createdAt"`

	Service   string  `json:"service"`
	Module    string  `json:"module"`
	Action    string  `json:"action"`
	Source    string  `json:"source"`
	Result    string  `json:"result"`
	EventName *string `json:"eventName,omitempty"`

	Entity   string  `json:"entity"`
	EntityID *string `json:"entityId,omitempty"`

	UserID     *string `json:"userId,omitempty"`
	UserNombre *string `json:"userNombre,omitempty"`
	UserRol    *string `json:"userRol,omitempty"`

	CooperativaID *string `json:"cooperativaId,omitempty"`
	SucursalID    *string `json:"sucursalId,omitempty"`

	Message *string `json:"message,omitempty"`
	Error   *string `json:"error,omitempty"`
}

// ActivityLogMeta is the request-metadata sub-object of the detail projection.
type ActivityLogMeta struct {
	IP            *string `json:"ip,omitempty"`
	UserAgent     *string `json:"userAgent,omitempty"`
	RequestID     *string `json:"requestId,omitempty"`
	CorrelationID *string `json:"correlationId,omitempty"`
}

// ActivityLogDetail is the single-record projection: the list shape plus
// the before/after state payloads and request metadata, which the list
// endpoint omits for compactness.
type ActivityLogDetail struct {
	ActivityLogItem

	Before json.RawMessage  `json:"before,omitempty"`
	After  json.RawMessage  `json:"after,omitempty"`
	Meta   *ActivityLogMeta `json:"meta,omitempty"`
}

// ActivityLogPage is a page of list results with pagination metadata.
type ActivityLogPage struct {
	Data           []ActivityLogItem `json:"data"`
	Page           int               `json:"page"`
	PageSize       int               `json:"pageSize"`
	TotalPages     int               `json:"totalPages"`
	TotalRegistros int64             `json:"totalRegistros"`
}

// Item maps the record to its list projection.
func (r *ActivityRecord) Item() ActivityLogItem {
	return ActivityLogItem{
		ID:            strconv.FormatInt(r.ID, 10),
		CreatedAt:     r.CreatedAt.UTC().Format(time.RFC3339),
		Service:       r.Service,
		Module:        r.Module,
		Action:        r.Action,
		Source:        r.Source,
		Result:        r.Result,
		EventName:     r.EventName,
		Entity:        r.Entity,
		EntityID:      r.EntityID,
		UserID:        r.UserID,
		UserNombre:    r.UserNombre,
		UserRol:       r.UserRol,
		CooperativaID: r.CooperativaID,
		SucursalID:    r.SucursalID,
		Message:       r.Message,
		Error:         r.Error,
	}
}

// Detail maps the record to its single-record projection.
func (r *ActivityRecord) Detail() ActivityLogDetail {
	d := ActivityLogDetail{
		ActivityLogItem: r.Item(),
		Before:          r.Before,
		After:           r.After,
	}

	if r.IP != nil || r.UserAgent != nil || r.RequestID != nil || r.CorrelationID != nil {
		d.Meta = &ActivityLogMeta{
			IP:            r.IP,
			UserAgent:     r.UserAgent,
			RequestID:     r.RequestID,
			CorrelationID: r.CorrelationID,
		}
	}

	return d
}
