package database

import (
	"context"
	"database/sql"
)

// Schema bootstrap for local and test deployments. Statements are
// idempotent so Migrate can run on every startup.
//
// tables.number carries no unique index: duplicate numbers are a
// data-quality condition the catalog resolves deterministically and
// logs instead of the storage layer rejecting them. The composite
// index on (table_id, booking_date) backs both the overlap read and
// the conditional commit's NOT EXISTS probe.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		first_name VARCHAR(100) NOT NULL,
		last_name VARCHAR(100) NOT NULL,
		email VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		is_active TINYINT(1) NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT UNSIGNED NOT NULL,
		token_hash CHAR(64) NOT NULL,
		expires_at DATETIME NOT NULL,
		revoked_at DATETIME NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_refresh_tokens_hash (token_hash),
		CONSTRAINT fk_refresh_tokens_user FOREIGN KEY (user_id) REFERENCES users (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS tables (
		id CHAR(36) NOT NULL PRIMARY KEY,
		number INT NOT NULL,
		capacity INT NOT NULL,
		is_vip TINYINT(1) NOT NULL DEFAULT 0,
		min_order DOUBLE NOT NULL DEFAULT 0,
		KEY idx_tables_number (number)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS reservations (
		id CHAR(36) NOT NULL PRIMARY KEY,
		table_id CHAR(36) NOT NULL,
		table_number INT NOT NULL,
		customer_name VARCHAR(255) NOT NULL,
		contact_number VARCHAR(64) NOT NULL,
		requester VARCHAR(255) NOT NULL,
		booking_date CHAR(10) NOT NULL,
		start_time CHAR(5) NOT NULL,
		end_time CHAR(5) NOT NULL,
		created_at DATETIME NOT NULL,
		KEY idx_reservations_key (table_id, booking_date, start_time),
		KEY idx_reservations_requester (requester)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate applies the schema statements in order. It is safe to call
// on every startup.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
