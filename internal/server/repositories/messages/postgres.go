package messages

import (
	"context"
	"fmt"

	"github.com/internova/internova/internal/dbx"
	domain "github.com/internova/internova/internal/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Insert(ctx context.Context, msg *domain.Message) error {
	query :=
		`INSERT INTO messages (id, from_email, to_email, subject, content, type, internship_id, timestamp, read)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 `

	_, err := r.db.ExecContext(ctx, query,
		msg.ID, msg.From, msg.To, msg.Subject, msg.Body, msg.Type,
		msg.InternshipID, msg.Timestamp, msg.Read)

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) SelectForUser(ctx context.Context, email string) ([]domain.Message, error) {
	query :=
		`SELECT id, from_email, to_email, subject, content, type, internship_id, timestamp, read
		 FROM messages
		 WHERE from_email = $1 OR to_email = $1
		 ORDER BY timestamp DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []domain.Message
	for rows.Next() {
		var msg domain.Message
		err := rows.Scan(&msg.ID, &msg.From, &msg.To, &msg.Subject, &msg.Body,
			&msg.Type, &msg.InternshipID, &msg.Timestamp, &msg.Read)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

// MarkRead flips the read flag. Unknown ids are a no-op.
func (r *PostgresRepository) MarkRead(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE messages SET read = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) UnreadCount(ctx context.Context, email string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM messages WHERE to_email = $1 AND read = false`, email).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
