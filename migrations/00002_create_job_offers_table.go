package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateJobOffersTable, downCreateJobOffersTable)
}

func upCreateJobOffersTable(ctx context.Context, tx *sql.Tx) error {
	query := `
	CREATE TABLE job_offers (
	  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	  author_id UUID NOT NULL,
	  title TEXT NOT NULL,
	  position TEXT NOT NULL DEFAULT '',
	  firm TEXT NOT NULL DEFAULT '',
	  dimensions TEXT NOT NULL DEFAULT '',
	  description TEXT NOT NULL DEFAULT '',
	  city TEXT NOT NULL DEFAULT '',
	  street TEXT NOT NULL DEFAULT '',
	  number TEXT NOT NULL DEFAULT '',
	  tags JSONB NOT NULL DEFAULT '[]',
	  logo_path TEXT,
	  created_at TIMESTAMP WITH TIME ZONE DEFAULT now()
	);

	CREATE INDEX idx_job_offers_created_at ON job_offers (created_at);
	`

	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}

func downCreateJobOffersTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS job_offers;`
	_, err := tx.ExecContext(ctx, query)
	if err != nil {
		return err
	}
	return nil
}
