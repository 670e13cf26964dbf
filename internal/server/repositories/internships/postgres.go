package internships

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

const selectColumns = `id, company_id, title, company, location, mode, duration,
	stipend, stipend_amount, description, skills, source, posted, created_at,
	status, requirements`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) SelectAll(ctx context.Context) ([]domain.Internship, error) {
	query := `SELECT ` + selectColumns + ` FROM internships ORDER BY posted DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return scanListings(rows)
}

func (r *PostgresRepository) SelectByCompany(ctx context.Context, companyID string) ([]domain.Internship, error) {
	query := `SELECT ` + selectColumns + ` FROM internships WHERE company_id = $1 ORDER BY posted DESC`

	rows, err := r.db.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return scanListings(rows)
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*domain.Internship, error) {
	query := `SELECT ` + selectColumns + ` FROM internships WHERE id = $1`

	row := r.db.QueryRowContext(ctx, query, id)

	in, err := scanListing(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return in, nil
}

func (r *PostgresRepository) Insert(ctx context.Context, in *domain.Internship) error {
	skills, requirements, err := encodeJSONFields(in)
	if err != nil {
		return err
	}

	query :=
		`INSERT INTO internships (id, company_id, title, company, location, mode, duration,
		     stipend, stipend_amount, description, skills, source, posted, created_at, status, requirements)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		 `

	_, err = r.db.ExecContext(ctx, query,
		in.ID, in.CompanyID, in.Title, in.Company, in.Location, in.Mode, in.Duration,
		in.Stipend, in.StipendAmount, in.Description, skills, in.Source, in.Posted,
		in.CreatedAt, in.Status, requirements)

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Replace overwrites every mutable column. Replacing a missing id is a no-op.
func (r *PostgresRepository) Replace(ctx context.Context, in *domain.Internship) error {
	skills, requirements, err := encodeJSONFields(in)
	if err != nil {
		return err
	}

	query :=
		`UPDATE internships
		 SET company_id = $2, title = $3, company = $4, location = $5, mode = $6,
		     duration = $7, stipend = $8, stipend_amount = $9, description = $10,
		     skills = $11, source = $12, status = $13, requirements = $14
		 WHERE id = $1
		 `

	_, err = r.db.ExecContext(ctx, query,
		in.ID, in.CompanyID, in.Title, in.Company, in.Location, in.Mode,
		in.Duration, in.Stipend, in.StipendAmount, in.Description,
		skills, in.Source, in.Status, requirements)

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Delete removes a listing. Deleting a missing id is a no-op.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM internships WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Stats(ctx context.Context) (domain.ImportStats, error) {
	var stats domain.ImportStats

	query :=
		`SELECT count(*),
		        count(*) FILTER (WHERE status = 'Active'),
		        count(*) FILTER (WHERE status = 'Closed'),
		        count(DISTINCT lower(company))
		 FROM internships
		 `

	err := r.db.QueryRowContext(ctx, query).
		Scan(&stats.Total, &stats.Active, &stats.Closed, &stats.Companies)
	if err != nil {
		return domain.ImportStats{}, fmt.Errorf("db error: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT source, count(*) FROM internships WHERE source <> '' GROUP BY source ORDER BY count(*) DESC`)
	if err != nil {
		return domain.ImportStats{}, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sc domain.SourceCount
		if err := rows.Scan(&sc.Source, &sc.Count); err != nil {
			return domain.ImportStats{}, err
		}
		stats.Sources = append(stats.Sources, sc)
	}
	if err := rows.Err(); err != nil {
		return domain.ImportStats{}, err
	}

	return stats, nil
}

func encodeJSONFields(in *domain.Internship) (skills, requirements []byte, err error) {
	if skills, err = json.Marshal(in.Skills); err != nil {
		return nil, nil, fmt.Errorf("failed to encode skills: %w", err)
	}
	if in.Requirements != nil {
		if requirements, err = json.Marshal(in.Requirements); err != nil {
			return nil, nil, fmt.Errorf("failed to encode requirements: %w", err)
		}
	}
	return skills, requirements, nil
}

func scanListing(scan func(dest ...any) error) (*domain.Internship, error) {
	in := &domain.Internship{}
	var skills, requirements []byte

	err := scan(&in.ID, &in.CompanyID, &in.Title, &in.Company, &in.Location, &in.Mode,
		&in.Duration, &in.Stipend, &in.StipendAmount, &in.Description, &skills,
		&in.Source, &in.Posted, &in.CreatedAt, &in.Status, &requirements)
	if err != nil {
		return nil, err
	}

	if len(skills) > 0 {
		if err := json.Unmarshal(skills, &in.Skills); err != nil {
			return nil, fmt.Errorf("failed to decode skills: %w", err)
		}
	}
	if len(requirements) > 0 {
		in.Requirements = &domain.Requirements{}
		if err := json.Unmarshal(requirements, in.Requirements); err != nil {
			return nil, fmt.Errorf("failed to decode requirements: %w", err)
		}
	}
	return in, nil
}

func scanListings(rows *sql.Rows) ([]domain.Internship, error) {
	var out []domain.Internship
	for rows.Next() {
		in, err := scanListing(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, *in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}
