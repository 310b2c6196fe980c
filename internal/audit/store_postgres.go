package audit

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	txcontext "covergate/pkg/platform/tx"
)

// PostgresStore appends audit events to PostgreSQL. Events join the ambient
// step transaction when one is present, so a step and its audit trail commit
// or roll back together.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, event Event) error {
	var exec interface {
		ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	} = s.db
	if tx, ok := txcontext.From(ctx); ok {
		exec = tx
	}

	_, err := exec.ExecContext(ctx, `
		INSERT INTO audit_events (id, ts, user_id, session_token, action, decision, reason)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		uuid.New(), event.Timestamp, event.UserID, event.SessionToken,
		event.Action, event.Decision, event.Reason,
	)
	if err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListBySession(ctx context.Context, token string) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ts, user_id, session_token, action, decision, reason
		FROM audit_events WHERE session_token = $1 ORDER BY ts`, token)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.Timestamp, &e.UserID, &e.SessionToken, &e.Action, &e.Decision, &e.Reason); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
