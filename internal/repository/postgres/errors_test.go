package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "idx_users_email_address"}

	if !isUniqueViolation(pgErr) {
		t.Error("expected unique violation detected")
	}
	if !isUniqueViolation(fmt.Errorf("insert failed: %w", pgErr)) {
		t.Error("expected wrapped unique violation detected")
	}
	if isUniqueViolation(&pgconn.PgError{Code: foreignKeyViolationCode}) {
		t.Error("foreign key violation misclassified as unique")
	}
	if isUniqueViolation(errors.New("connection refused")) {
		t.Error("plain error misclassified as unique violation")
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "courses_user_id_fkey"}

	if !isForeignKeyViolation(pgErr) {
		t.Error("expected foreign key violation detected")
	}
	if !isForeignKeyViolation(fmt.Errorf("insert failed: %w", pgErr)) {
		t.Error("expected wrapped foreign key violation detected")
	}
	if isForeignKeyViolation(&pgconn.PgError{Code: uniqueViolationCode}) {
		t.Error("unique violation misclassified as foreign key")
	}
}

func TestIsNoRows(t *testing.T) {
	if !isNoRows(pgx.ErrNoRows) {
		t.Error("expected pgx.ErrNoRows detected")
	}
	if !isNoRows(fmt.Errorf("query: %w", pgx.ErrNoRows)) {
		t.Error("expected wrapped pgx.ErrNoRows detected")
	}
	if isNoRows(errors.New("no rows in result set elsewhere")) {
		t.Error("plain error misclassified as no rows")
	}
}
