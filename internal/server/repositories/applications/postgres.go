package applications

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/internova/internova/internal/common"
	"github.com/internova/internova/internal/dbx"
	domain "github.com/internova/internova/internal/models"
)

const selectColumns = `id, student_id, internship_id, company_id, applied_at,
	status, student_profile, student_name, student_email`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Insert(ctx context.Context, app *domain.Application) error {
	profile, err := json.Marshal(app.StudentProfile)
	if err != nil {
		return fmt.Errorf("failed to encode profile snapshot: %w", err)
	}

	query :=
		`INSERT INTO applications (id, student_id, internship_id, company_id, applied_at,
		     status, student_profile, student_name, student_email)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 `

	_, err = r.db.ExecContext(ctx, query,
		app.ID, app.StudentID, app.InternshipID, app.CompanyID, app.AppliedAt,
		app.Status, profile, app.StudentName, app.StudentEmail)

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) SelectAll(ctx context.Context) ([]domain.Application, error) {
	query := `SELECT ` + selectColumns + ` FROM applications ORDER BY applied_at DESC`
	return r.selectMany(ctx, query)
}

func (r *PostgresRepository) SelectByStudent(ctx context.Context, studentID string) ([]domain.Application, error) {
	query := `SELECT ` + selectColumns + ` FROM applications WHERE student_id = $1 ORDER BY applied_at DESC`
	return r.selectMany(ctx, query, studentID)
}

// SelectByCompany matches both the owner id stamped on the application and
// applications to the company's own listings.
func (r *PostgresRepository) SelectByCompany(ctx context.Context, companyID string) ([]domain.Application, error) {
	query :=
		`SELECT ` + selectColumns + ` FROM applications
		 WHERE company_id = $1
		    OR internship_id IN (SELECT id FROM internships WHERE company_id = $1)
		 ORDER BY applied_at DESC
		 `
	return r.selectMany(ctx, query, companyID)
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) (*domain.Application, error) {
	query :=
		`UPDATE applications SET status = $2 WHERE id = $1
		 RETURNING ` + selectColumns

	app, err := scanApplication(r.db.QueryRowContext(ctx, query, id, status).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return app, nil
}

func (r *PostgresRepository) CountByInternship(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT internship_id, count(*) FROM applications GROUP BY internship_id`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		counts[id] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *PostgresRepository) selectMany(ctx context.Context, query string, args ...any) ([]domain.Application, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []domain.Application
	for rows.Next() {
		app, err := scanApplication(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, *app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func scanApplication(scan func(dest ...any) error) (*domain.Application, error) {
	app := &domain.Application{}
	var profile []byte

	err := scan(&app.ID, &app.StudentID, &app.InternshipID, &app.CompanyID,
		&app.AppliedAt, &app.Status, &profile, &app.StudentName, &app.StudentEmail)
	if err != nil {
		return nil, err
	}

	if len(profile) > 0 {
		if err := json.Unmarshal(profile, &app.StudentProfile); err != nil {
			return nil, fmt.Errorf("failed to decode profile snapshot: %w", err)
		}
	}
	return app, nil
}
