package db

import (
	"fmt"
)

type migration struct {
	version int
	sql     string
}

// Money columns are TEXT holding decimal strings so no precision is lost.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TEXT NOT NULL DEFAULT (datetime('now'))
);

-- Tax components and the groups that bundle them
CREATE TABLE tax_rates (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE,
    rate TEXT NOT NULL
);

CREATE TABLE tax_groups (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE,
    total_rate TEXT NOT NULL
);

CREATE TABLE tax_group_rates (
    group_id INTEGER NOT NULL REFERENCES tax_groups(id) ON DELETE CASCADE,
    rate_id INTEGER NOT NULL REFERENCES tax_rates(id),
    PRIMARY KEY (group_id, rate_id)
);

-- Catalog
CREATE TABLE products (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE,
    unit TEXT NOT NULL DEFAULT '',
    selling_price TEXT NOT NULL DEFAULT '0',
    discount_type TEXT,
    discount_value TEXT,
    tax_group_id INTEGER REFERENCES tax_groups(id),
    created_at TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);

-- Purchase orders, debit notes and purchases
CREATE TABLE documents (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    kind TEXT NOT NULL,
    number TEXT NOT NULL UNIQUE,
    supplier TEXT NOT NULL DEFAULT '',
    reference TEXT NOT NULL DEFAULT '',
    date TEXT NOT NULL,
    notes TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT 'draft',
    sub_total TEXT NOT NULL DEFAULT '0',
    total_discount TEXT NOT NULL DEFAULT '0',
    total_tax TEXT NOT NULL DEFAULT '0',
    grand_total TEXT NOT NULL DEFAULT '0',
    created_at TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);

-- One row per product per document
CREATE TABLE document_items (
    document_id INTEGER NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
    product_id INTEGER NOT NULL,
    position INTEGER NOT NULL,
    name TEXT NOT NULL,
    unit TEXT NOT NULL DEFAULT '',
    qty INTEGER NOT NULL,
    rate TEXT NOT NULL,
    discount_type TEXT NOT NULL,
    discount_value TEXT NOT NULL,
    discount TEXT NOT NULL,
    tax_group_id INTEGER,
    tax TEXT NOT NULL,
    amount TEXT NOT NULL,
    PRIMARY KEY (document_id, product_id)
);

CREATE INDEX idx_documents_kind ON documents(kind);
CREATE INDEX idx_documents_status ON documents(status);
CREATE INDEX idx_documents_date ON documents(date);
`,
	},
}

// RunMigrations applies all pending database migrations
func (db *DB) RunMigrations() error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at TEXT NOT NULL DEFAULT (datetime('now'))
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	var currentVersion int
	err = db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	// Apply pending migrations in a transaction
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}

		if _, err := tx.Exec(m.sql); err != nil {
			return fmt.Errorf("failed to apply migration %d: %w", m.version, err)
		}

		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", m.version); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", m.version, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migrations: %w", err)
	}

	return nil
}

// Tables lists the data tables in an order that is safe to clear
func Tables() []string {
	return []string{
		"document_items",
		"documents",
		"products",
		"tax_group_rates",
		"tax_groups",
		"tax_rates",
	}
}
