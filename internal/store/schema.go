package store

import "context"

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS sessions (
		token UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		expires_at TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS businesses (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		base_cost DOUBLE PRECISION NOT NULL,
		base_production DOUBLE PRECISION NOT NULL,
		cost_multiplier DOUBLE PRECISION NOT NULL,
		unlock_requirement DOUBLE PRECISION NOT NULL DEFAULT 0,
		position INT NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS team_members (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		base_cost DOUBLE PRECISION NOT NULL,
		base_production DOUBLE PRECISION NOT NULL,
		cost_multiplier DOUBLE PRECISION NOT NULL,
		unlock_requirement DOUBLE PRECISION NOT NULL DEFAULT 0,
		position INT NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS upgrades (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		cost DOUBLE PRECISION NOT NULL,
		type TEXT NOT NULL,
		multiplier DOUBLE PRECISION NOT NULL,
		target_id TEXT NOT NULL DEFAULT '',
		unlock_requirement DOUBLE PRECISION NOT NULL DEFAULT 0,
		position INT NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS achievements (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		requirement DOUBLE PRECISION NOT NULL,
		type TEXT NOT NULL,
		reward DOUBLE PRECISION NOT NULL DEFAULT 0,
		position INT NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS player_progress (
		user_id UUID PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		current_loc DOUBLE PRECISION NOT NULL DEFAULT 0,
		total_loc DOUBLE PRECISION NOT NULL DEFAULT 0,
		loc_per_click DOUBLE PRECISION NOT NULL DEFAULT 1,
		offline_earned DOUBLE PRECISION NOT NULL DEFAULT 0,
		last_active TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS player_businesses (
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		business_id TEXT NOT NULL,
		level INT NOT NULL DEFAULT 0,
		managers JSONB NOT NULL DEFAULT '{}'::jsonb,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (user_id, business_id)
	)`,
	`CREATE TABLE IF NOT EXISTS player_team (
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		team_member_id TEXT NOT NULL,
		count INT NOT NULL DEFAULT 0,
		available_count INT NOT NULL DEFAULT 0,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (user_id, team_member_id)
	)`,
	`CREATE TABLE IF NOT EXISTS player_upgrades (
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		upgrade_id TEXT NOT NULL,
		purchased_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (user_id, upgrade_id)
	)`,
	`CREATE TABLE IF NOT EXISTS player_achievements (
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		achievement_id TEXT NOT NULL,
		unlocked_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (user_id, achievement_id)
	)`,
	`CREATE INDEX IF NOT EXISTS sessions_user_id_idx ON sessions(user_id)`,
	`CREATE INDEX IF NOT EXISTS sessions_expires_at_idx ON sessions(expires_at)`,
}

// EnsureSchema creates every table the API and seeder need. Statements are
// idempotent, so running it on every startup is safe.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
