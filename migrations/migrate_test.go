// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package migrations

import (
	"database/sql"
	"io/fs"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestMigrate_DBError(t *testing.T) {
	for _, dialect := range []string{DialectPostgres, DialectSQLite} {
		t.Run(dialect, func(t *testing.T) {
			db, _, err := sqlmock.New()
			if err != nil {
				t.Fatalf("failed to create sqlmock: %v", err)
			}
			defer db.Close()

			// no expectations: the first goose query fails
			err = Migrate(db, dialect)
			if err == nil {
				t.Fatal("expected error from Migrate, got nil")
			}

			if !strings.Contains(err.Error(), "migration error") {
				t.Errorf("expected wrapped migration error, got: %v", err)
			}
		})
	}
}

func TestMigrate_NilDB(t *testing.T) {
	var db *sql.DB

	err := Migrate(db, DialectPostgres)
	if err == nil {
		t.Fatal("expected error when db is nil, got nil")
	}

	if !strings.Contains(err.Error(), "db is nil") {
		t.Errorf("expected 'db is nil' error, got: %v", err)
	}
}

func TestMigrate_UnsupportedDialect(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	err = Migrate(db, "mysql")
	if err == nil || !strings.Contains(err.Error(), "unsupported dialect") {
		t.Fatalf("expected unsupported dialect error, got: %v", err)
	}
}

func TestEmbeddedMigrations_BothDialectsPresent(t *testing.T) {
	for _, dir := range []string{"postgres", "sqlite"} {
		files, err := fs.Glob(embedMigrations, dir+"/*.sql")
		if err != nil {
			t.Fatalf("glob %s: %v", dir, err)
		}
		if len(files) == 0 {
			t.Errorf("no migrations embedded for %s", dir)
		}
	}
}

func TestEmbeddedMigrations_SeedIsReversible(t *testing.T) {
	for _, dir := range []string{"postgres", "sqlite"} {
		data, err := fs.ReadFile(embedMigrations, dir+"/00002_seed.sql")
		if err != nil {
			t.Fatalf("read %s seed: %v", dir, err)
		}

		seed := string(data)
		for _, want := range []string{"-- +goose Up", "-- +goose Down", "'Ana'", "'Carlos'", "'Beatriz'", "'Monster Energy'", "'Coca-Cola Zero'"} {
			if !strings.Contains(seed, want) {
				t.Errorf("%s seed is missing %q", dir, want)
			}
		}
	}
}
