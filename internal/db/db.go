package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

type DB struct {
	*sql.DB
}

func New(host, port, user, password, dbname string) (*DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{db}, nil
}

func (db *DB) Migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		email_address VARCHAR(128) UNIQUE NOT NULL,
		user_name VARCHAR(128) UNIQUE NOT NULL,
		first_name VARCHAR(64) NOT NULL,
		last_name VARCHAR(64) NOT NULL,
		role VARCHAR(16) NOT NULL CHECK (role IN ('admin', 'editor')),
		hashed_password VARCHAR(128) NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		last_modified_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_users_email_address ON users(email_address);

	CREATE TABLE IF NOT EXISTS posts (
		id BIGSERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		body TEXT NOT NULL,
		status VARCHAR(16) NOT NULL CHECK (status IN ('draft', 'published')),
		user_id BIGINT REFERENCES users(id),
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		last_modified_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS tokens (
		id BIGSERIAL PRIMARY KEY,
		user_id TEXT NOT NULL,
		access_token TEXT UNIQUE NOT NULL,
		expiration_date TIMESTAMP WITH TIME ZONE NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_tokens_access_token ON tokens(access_token);

	CREATE OR REPLACE FUNCTION touch_last_modified_at() RETURNS TRIGGER AS $$
	BEGIN
		NEW.last_modified_at = NOW();
		RETURN NEW;
	END;
	$$ LANGUAGE plpgsql;

	DROP TRIGGER IF EXISTS users_touch_last_modified ON users;
	CREATE TRIGGER users_touch_last_modified
		BEFORE UPDATE ON users
		FOR EACH ROW EXECUTE FUNCTION touch_last_modified_at();

	DROP TRIGGER IF EXISTS posts_touch_last_modified ON posts;
	CREATE TRIGGER posts_touch_last_modified
		BEFORE UPDATE ON posts
		FOR EACH ROW EXECUTE FUNCTION touch_last_modified_at();
	`

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
