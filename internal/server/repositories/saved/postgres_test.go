package saved

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestInsert_OnConflictIgnored(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)INSERT\s+INTO\s+saved_internships.*ON\s+CONFLICT.*DO\s+NOTHING`).
		WithArgs("stu-1", "i1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Insert(context.Background(), "stu-1", "i1"); err != nil {
		t.Fatalf("Insert error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDelete_MissingIsNoop(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+saved_internships`).
		WithArgs("stu-1", "i1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "stu-1", "i1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}

func TestSelectByStudent(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"internship_id"}).AddRow("i2").AddRow("i1")
	mock.ExpectQuery(`SELECT\s+internship_id\s+FROM\s+saved_internships`).
		WithArgs("stu-1").
		WillReturnRows(rows)

	got, err := repo.SelectByStudent(context.Background(), "stu-1")
	if err != nil {
		t.Fatalf("SelectByStudent error: %v", err)
	}
	if len(got) != 2 || got[0] != "i2" {
		t.Fatalf("unexpected result: %v", got)
	}
}

func TestSelectByStudent_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+internship_id`).
		WillReturnError(errors.New("db down"))

	if _, err := repo.SelectByStudent(context.Background(), "stu-1"); err == nil {
		t.Fatalf("expected error")
	}
}
