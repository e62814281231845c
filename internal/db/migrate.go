package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent and re-run
// on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form in SQLite.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS work_orders (
		record_id                TEXT PRIMARY KEY,
		code                     TEXT NOT NULL,
		client                   TEXT NOT NULL,
		service                  TEXT NOT NULL,
		quotation_ref            TEXT NOT NULL DEFAULT '',
		agreement_ref            TEXT NOT NULL DEFAULT '',
		start_date               TEXT NOT NULL,
		end_date                 TEXT,
		value                    TEXT NOT NULL DEFAULT '0',
		display_value            TEXT NOT NULL DEFAULT '',
		status                   TEXT NOT NULL DEFAULT 'Draft'
		                         CHECK(status IN ('Draft','Pending','Approved','In Progress','On Hold','Completed')),
		billing_cycle            TEXT NOT NULL DEFAULT 'monthly'
		                         CHECK(billing_cycle IN ('monthly','quarterly','biannually','annually')),
		billing_rate             TEXT NOT NULL DEFAULT 'fixed'
		                         CHECK(billing_rate IN ('fixed','hourly','headcount','shift')),
		invoice_due_day          TEXT NOT NULL DEFAULT '30'
		                         CHECK(invoice_due_day IN ('15','30','45','60')),
		gst_inclusive            INTEGER NOT NULL DEFAULT 0,
		create_operational_posts INTEGER NOT NULL DEFAULT 1,
		document_url             TEXT NOT NULL DEFAULT '',
		client_approval          TEXT NOT NULL DEFAULT '',
		sync_status              TEXT NOT NULL DEFAULT 'not_requested'
		                         CHECK(sync_status IN ('not_requested','pending','synced','failed')),
		sync_error               TEXT NOT NULL DEFAULT '',
		created_at               TEXT NOT NULL,
		updated_at               TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_work_orders_code ON work_orders(code)`,
	`CREATE INDEX IF NOT EXISTS idx_work_orders_sync ON work_orders(sync_status)`,

	`CREATE TABLE IF NOT EXISTS security_posts (
		work_order_id TEXT NOT NULL REFERENCES work_orders(record_id) ON DELETE CASCADE,
		position      INTEGER NOT NULL,
		code          TEXT NOT NULL,
		name          TEXT NOT NULL,
		post_type     TEXT NOT NULL DEFAULT 'permanent'
		              CHECK(post_type IN ('permanent','temporary')),
		address       TEXT NOT NULL,
		digipin       TEXT NOT NULL DEFAULT '',
		duty_type     TEXT NOT NULL DEFAULT '8H'
		              CHECK(duty_type IN ('8H','12H')),
		PRIMARY KEY (work_order_id, position),
		UNIQUE (work_order_id, code)
	)`,

	`CREATE TABLE IF NOT EXISTS staff_requirements (
		work_order_id TEXT NOT NULL,
		post_position INTEGER NOT NULL,
		position      INTEGER NOT NULL,
		role          TEXT NOT NULL
		              CHECK(role IN ('Security Guard','Armed Guard','Supervisor','Patrol Officer','PSO')),
		count         INTEGER NOT NULL CHECK(count > 0),
		shift         TEXT NOT NULL,
		start_time    TEXT NOT NULL DEFAULT '',
		end_time      TEXT NOT NULL DEFAULT '',
		days          TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (work_order_id, post_position, position),
		FOREIGN KEY (work_order_id, post_position)
		            REFERENCES security_posts(work_order_id, position) ON DELETE CASCADE
	)`,

	`CREATE TABLE IF NOT EXISTS work_order_sequences (
		year     INTEGER PRIMARY KEY,
		next_seq INTEGER NOT NULL CHECK(next_seq > 0)
	)`,

	`CREATE TABLE IF NOT EXISTS operational_posts (
		id              TEXT PRIMARY KEY,
		work_order_id   TEXT NOT NULL REFERENCES work_orders(record_id) ON DELETE CASCADE,
		work_order_code TEXT NOT NULL,
		post_code       TEXT NOT NULL,
		name            TEXT NOT NULL,
		client          TEXT NOT NULL,
		address         TEXT NOT NULL,
		digipin         TEXT NOT NULL DEFAULT '',
		post_type       TEXT NOT NULL,
		duty_type       TEXT NOT NULL,
		headcount       INTEGER NOT NULL DEFAULT 0,
		shifts          TEXT NOT NULL DEFAULT '',
		start_date      TEXT NOT NULL,
		end_date        TEXT,
		status          TEXT NOT NULL DEFAULT 'active',
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL,
		UNIQUE (work_order_id, post_code)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_operational_posts_work_order ON operational_posts(work_order_id)`,

	// Record when the operational projection last succeeded.
	`ALTER TABLE work_orders ADD COLUMN synced_at TEXT`,
}
