package database

import (
	"context"
	"fmt"

	"hr-dashboard-api/core/logger"
)

// schema is applied idempotently at startup.
var schema = []string{
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`,
	`CREATE TABLE IF NOT EXISTS profiles (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		full_name TEXT NOT NULL,
		email TEXT,
		role TEXT NOT NULL DEFAULT 'employee',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS calendar_events (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		title TEXT NOT NULL,
		description TEXT,
		location TEXT,
		start_at TIMESTAMPTZ NOT NULL,
		end_at TIMESTAMPTZ NOT NULL,
		all_day BOOLEAN NOT NULL DEFAULT FALSE,
		recurrence_rule TEXT,
		created_by UUID REFERENCES profiles(id) ON DELETE SET NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_calendar_events_start ON calendar_events (start_at)`,
	`CREATE TABLE IF NOT EXISTS one_on_one_slots (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		organizer_id UUID NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		start_at TIMESTAMPTZ NOT NULL,
		end_at TIMESTAMPTZ NOT NULL,
		mode TEXT NOT NULL DEFAULT 'online',
		location TEXT,
		status TEXT NOT NULL DEFAULT 'open',
		booked_by UUID REFERENCES profiles(id) ON DELETE SET NULL,
		booked_at TIMESTAMPTZ,
		meeting_url TEXT,
		google_event_id TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CHECK (status IN ('open', 'booking', 'booked', 'cancelled')),
		CHECK (mode IN ('online', 'offline'))
	)`,
	`CREATE INDEX IF NOT EXISTS idx_one_on_one_slots_start ON one_on_one_slots (start_at)`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		title TEXT NOT NULL,
		message TEXT NOT NULL,
		type TEXT NOT NULL,
		data JSONB,
		is_read BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

func (d *Database) Migrate(ctx context.Context) error {
	for i, stmt := range schema {
		if err := d.ExecContext(ctx, stmt); err != nil {
			logger.Error("Database:Migrate:Error", "statement", i, "error", err)
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}
	logger.Info("Database:Migrate:Success", "statements", len(schema))
	return nil
}
