package saved

import (
	"context"
	"fmt"

	"github.com/internova/internova/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Insert bookmarks a listing. Saving an existing bookmark is a no-op.
func (r *PostgresRepository) Insert(ctx context.Context, studentID, internshipID string) error {
	query :=
		`INSERT INTO saved_internships (student_id, internship_id)
		 VALUES ($1, $2)
		 ON CONFLICT (student_id, internship_id) DO NOTHING
		 `

	_, err := r.db.ExecContext(ctx, query, studentID, internshipID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Delete removes a bookmark. Removing a missing bookmark is a no-op.
func (r *PostgresRepository) Delete(ctx context.Context, studentID, internshipID string) error {
	query := `DELETE FROM saved_internships WHERE student_id = $1 AND internship_id = $2`

	_, err := r.db.ExecContext(ctx, query, studentID, internshipID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) SelectByStudent(ctx context.Context, studentID string) ([]string, error) {
	query :=
		`SELECT internship_id FROM saved_internships
		 WHERE student_id = $1
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
