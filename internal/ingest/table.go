// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/dstowell/cable-engine/pkg/types"
)

// tableColumns is the column order shared by the CSV table and the SQLite
// snapshot.
var tableColumns = []string{
	"source_file", "date", "from", "to", "info", "subject", "tags",
	"reference", "document_number", "classification",
	"declassification_date", "concepts", "signer",
}

// rowValues flattens a record in tableColumns order.
func rowValues(rec types.CableRecord) []string {
	return []string{
		rec.SourceFile, rec.Date, rec.From, rec.To, rec.Info, rec.Subject,
		rec.Tags, rec.Reference, rec.DocumentNumber, rec.Classification,
		rec.DeclassificationDate, rec.Concepts, rec.Signer,
	}
}

// WriteCSV writes the combined metadata table, one row per record.
func WriteCSV(path string, records []types.CableRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(tableColumns); err != nil {
		return err
	}
	for _, rec := range records {
		if err := w.Write(rowValues(rec)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WriteSnapshot rebuilds the SQLite snapshot of the metadata table. The
// whole table is replaced each run; the snapshot mirrors the CSV exactly.
func WriteSnapshot(path string, records []types.CableRecord) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("opening snapshot: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(`DROP TABLE IF EXISTS cables`); err != nil {
		return fmt.Errorf("resetting snapshot: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE cables (
		source_file TEXT PRIMARY KEY,
		date TEXT,
		sender TEXT,
		recipient TEXT,
		info TEXT,
		subject TEXT,
		tags TEXT,
		reference TEXT,
		document_number TEXT,
		classification TEXT,
		declassification_date TEXT,
		concepts TEXT,
		signer TEXT
	)`); err != nil {
		return fmt.Errorf("creating snapshot schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning snapshot transaction: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO cables VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("preparing snapshot insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		args := make([]any, len(tableColumns))
		for i, v := range rowValues(rec) {
			args[i] = v
		}
		if _, err := stmt.Exec(args...); err != nil {
			tx.Rollback()
			return fmt.Errorf("inserting %s: %w", rec.SourceFile, err)
		}
	}
	return tx.Commit()
}
