package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const agentCallColumns = `id, sequence, timestamp, session_id, request_type, agent_id, target,
	message, status_code, latency_ms, success, error_message, response_body`

func (r *eventRepo) AppendAgentCall(ctx context.Context, data AgentCallEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO agent_call_events
			(sequence, timestamp, session_id, request_type, agent_id, target, message,
			 status_code, latency_ms, success, error_message, response_body)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum,
		formatTime(time.Now()),
		data.SessionID,
		data.RequestType,
		data.AgentID,
		data.Target,
		data.Message,
		data.StatusCode,
		data.LatencyMs,
		boolToInt(data.Success),
		data.ErrorMessage,
		data.ResponseBody,
	)
	if err != nil {
		return fmt.Errorf("save agent call event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAgentCalls(ctx context.Context, opts QueryOpts) ([]AgentCallEvent, error) {
	where, args := opts.whereClause()
	query := `SELECT ` + agentCallColumns + ` FROM agent_call_events` + where +
		` ORDER BY sequence DESC` + opts.limitClause()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query agent calls: %w", err)
	}
	defer rows.Close()

	var events []AgentCallEvent
	for rows.Next() {
		ev, err := scanAgentCall(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate agent calls: %w", err)
	}
	return events, nil
}

func (r *eventRepo) GetAgentCall(ctx context.Context, id int64) (*AgentCallEvent, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+agentCallColumns+` FROM agent_call_events WHERE id = ?`, id)
	ev, err := scanAgentCall(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("agent call %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return ev, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAgentCall(s rowScanner) (*AgentCallEvent, error) {
	var (
		ev      AgentCallEvent
		ts      string
		success int
	)
	err := s.Scan(
		&ev.ID,
		&ev.Sequence,
		&ts,
		&ev.SessionID,
		&ev.RequestType,
		&ev.AgentID,
		&ev.Target,
		&ev.Message,
		&ev.StatusCode,
		&ev.LatencyMs,
		&success,
		&ev.ErrorMessage,
		&ev.ResponseBody,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan agent call: %w", err)
	}
	ev.Success = success != 0
	if ev.Timestamp, err = parseTime(ts); err != nil {
		return nil, err
	}
	return &ev, nil
}
