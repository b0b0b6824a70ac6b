package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"dayflow/internal/events"

	"go.uber.org/zap"
)

type Projector struct {
	repo   Repository
	logger *zap.Logger
}

func NewProjector(repo Repository, logger ...*zap.Logger) *Projector {
	l := zap.L().Named("activity.projector")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("activity.projector")
	}
	return &Projector{repo: repo, logger: l}
}

// ErrUnknownEvent marks payloads that can never be projected. Callers
// should commit past them.
var ErrUnknownEvent = fmt.Errorf("activity: unknown event")

// Project turns one domain event into a feed row. Redelivered events are
// ignored.
func (p *Projector) Project(ctx context.Context, payload []byte) error {
	var base events.Base
	if err := json.Unmarshal(payload, &base); err != nil {
		return fmt.Errorf("%w: %v", ErrUnknownEvent, err)
	}
	if base.EventID == "" || base.UserID == "" {
		return fmt.Errorf("%w: missing event_id or user_id", ErrUnknownEvent)
	}

	msg, err := describe(base.EventType, payload)
	if err != nil {
		return err
	}

	inserted, err := p.repo.Insert(ctx, &Activity{
		EventID:    base.EventID,
		EventType:  base.EventType,
		UserID:     base.UserID,
		ActorID:    base.ActorID,
		Message:    msg,
		OccurredAt: base.OccurredAt,
	})
	if err != nil {
		return err
	}
	if !inserted {
		p.logger.Debug("activity already projected", zap.String("event_id", base.EventID))
		return nil
	}

	p.logger.Info("activity projected",
		zap.String("event_id", base.EventID),
		zap.String("event_type", base.EventType),
	)
	return nil
}

func describe(eventType string, payload []byte) (string, error) {
	switch eventType {
	case events.EmployeeCreated, events.EmployeeDeleted:
		var e events.EmployeeLifecycleEvent
		if err := json.Unmarshal(payload, &e); err != nil {
			return "", fmt.Errorf("%w: %v", ErrUnknownEvent, err)
		}
		if eventType == events.EmployeeCreated {
			return fmt.Sprintf("%s joined the team", e.FullName), nil
		}
		return fmt.Sprintf("%s was removed from the directory", e.FullName), nil

	case events.LeaveRequested, events.LeaveApproved, events.LeaveRejected:
		var e events.LeaveLifecycleEvent
		if err := json.Unmarshal(payload, &e); err != nil {
			return "", fmt.Errorf("%w: %v", ErrUnknownEvent, err)
		}
		span := fmt.Sprintf("%d day", e.Days)
		if e.Days != 1 {
			span += "s"
		}
		switch eventType {
		case events.LeaveRequested:
			return fmt.Sprintf("requested %s of %s leave", span, e.LeaveType), nil
		case events.LeaveApproved:
			return fmt.Sprintf("%s leave approved (%s)", capitalize(e.LeaveType), span), nil
		default:
			return fmt.Sprintf("%s leave rejected", capitalize(e.LeaveType)), nil
		}

	case events.AttendanceCheckedIn, events.AttendanceCheckedOut, events.AttendanceCorrected:
		var e events.AttendanceRecordedEvent
		if err := json.Unmarshal(payload, &e); err != nil {
			return "", fmt.Errorf("%w: %v", ErrUnknownEvent, err)
		}
		switch eventType {
		case events.AttendanceCheckedIn:
			if e.Status == "late" {
				return "checked in late", nil
			}
			return "checked in", nil
		case events.AttendanceCheckedOut:
			return "checked out", nil
		default:
			return fmt.Sprintf("attendance for %s corrected to %s", e.Date, e.Status), nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownEvent, eventType)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
