package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

func (r *eventRepo) AppendQuizResult(ctx context.Context, data QuizResultEventData) error {
	answers := data.Answers
	if answers == nil {
		answers = []QuizAnswerRecord{}
	}
	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}

	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO quiz_result_events
			(sequence, timestamp, session_id, topic, score, total, mastery_level, answers)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum,
		formatTime(time.Now()),
		data.SessionID,
		data.Topic,
		data.Score,
		data.Total,
		data.MasteryLevel,
		string(answersJSON),
	)
	if err != nil {
		return fmt.Errorf("save quiz result event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryQuizResults(ctx context.Context, opts QueryOpts) ([]QuizResultEvent, error) {
	where, args := opts.whereClause()
	query := `SELECT id, sequence, timestamp, session_id, topic, score, total, mastery_level, answers
		FROM quiz_result_events` + where + ` ORDER BY sequence DESC` + opts.limitClause()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query quiz results: %w", err)
	}
	defer rows.Close()

	var events []QuizResultEvent
	for rows.Next() {
		var (
			ev      QuizResultEvent
			ts      string
			answers string
		)
		if err := rows.Scan(&ev.ID, &ev.Sequence, &ts, &ev.SessionID, &ev.Topic,
			&ev.Score, &ev.Total, &ev.MasteryLevel, &answers); err != nil {
			return nil, fmt.Errorf("scan quiz result: %w", err)
		}
		if ev.Timestamp, err = parseTime(ts); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(answers), &ev.Answers); err != nil {
			return nil, fmt.Errorf("unmarshal answers for result %d: %w", ev.ID, err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quiz results: %w", err)
	}
	return events, nil
}
