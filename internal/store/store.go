// Package store persists catalog templates and per-player saves in Postgres.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"devcap/internal/catalog"
	"devcap/internal/engine"
)

var ErrSaveFailed = errors.New("save failed")

type Store struct {
	db  *pgxpool.Pool
	log *slog.Logger
}

func New(pool *pgxpool.Pool, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: pool, log: logger}
}

// SeedCatalog wipes the template tables and reinserts the given catalog in
// one transaction. Player rows are untouched; save rows referencing retired
// ids simply stop resolving on load.
func (s *Store) SeedCatalog(ctx context.Context, cat catalog.Catalog) error {
	if err := cat.Validate(); err != nil {
		return err
	}
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, table := range []string{"businesses", "team_members", "upgrades", "achievements"} {
		if _, err := tx.Exec(ctx, `DELETE FROM `+table); err != nil {
			return err
		}
	}
	for i, b := range cat.Businesses {
		_, err := tx.Exec(ctx, `
			INSERT INTO businesses (id, name, description, base_cost, base_production, cost_multiplier, unlock_requirement, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, b.ID, b.Name, b.Description, b.BaseCost, b.BaseProduction, b.CostMultiplier, b.UnlockRequirement, i)
		if err != nil {
			return err
		}
	}
	for i, t := range cat.TeamMembers {
		_, err := tx.Exec(ctx, `
			INSERT INTO team_members (id, name, description, base_cost, base_production, cost_multiplier, unlock_requirement, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, t.ID, t.Name, t.Description, t.BaseCost, t.BaseProduction, t.CostMultiplier, t.UnlockRequirement, i)
		if err != nil {
			return err
		}
	}
	for i, u := range cat.Upgrades {
		_, err := tx.Exec(ctx, `
			INSERT INTO upgrades (id, name, description, cost, type, multiplier, target_id, unlock_requirement, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, u.ID, u.Name, u.Description, u.Cost, string(u.Type), u.Multiplier, u.TargetID, u.UnlockRequirement, i)
		if err != nil {
			return err
		}
	}
	for i, a := range cat.Achievements {
		_, err := tx.Exec(ctx, `
			INSERT INTO achievements (id, name, description, requirement, type, reward, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, a.ID, a.Name, a.Description, a.Requirement, string(a.Type), a.Reward, i)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// CatalogEmpty reports whether the template tables have ever been seeded.
func (s *Store) CatalogEmpty(ctx context.Context) (bool, error) {
	var count int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(1) FROM businesses`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}

// Catalog fetches all four template collections in seed order.
func (s *Store) Catalog(ctx context.Context) (catalog.Catalog, error) {
	var cat catalog.Catalog

	rows, err := s.db.Query(ctx, `
		SELECT id, name, description, base_cost, base_production, cost_multiplier, unlock_requirement
		FROM businesses ORDER BY position
	`)
	if err != nil {
		return cat, err
	}
	defer rows.Close()
	for rows.Next() {
		var b catalog.Business
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.BaseCost, &b.BaseProduction, &b.CostMultiplier, &b.UnlockRequirement); err != nil {
			return cat, err
		}
		cat.Businesses = append(cat.Businesses, b)
	}
	if err := rows.Err(); err != nil {
		return cat, err
	}

	tRows, err := s.db.Query(ctx, `
		SELECT id, name, description, base_cost, base_production, cost_multiplier, unlock_requirement
		FROM team_members ORDER BY position
	`)
	if err != nil {
		return cat, err
	}
	defer tRows.Close()
	for tRows.Next() {
		var t catalog.TeamMember
		if err := tRows.Scan(&t.ID, &t.Name, &t.Description, &t.BaseCost, &t.BaseProduction, &t.CostMultiplier, &t.UnlockRequirement); err != nil {
			return cat, err
		}
		cat.TeamMembers = append(cat.TeamMembers, t)
	}
	if err := tRows.Err(); err != nil {
		return cat, err
	}

	uRows, err := s.db.Query(ctx, `
		SELECT id, name, description, cost, type, multiplier, target_id, unlock_requirement
		FROM upgrades ORDER BY position
	`)
	if err != nil {
		return cat, err
	}
	defer uRows.Close()
	for uRows.Next() {
		var u catalog.Upgrade
		var typ string
		if err := uRows.Scan(&u.ID, &u.Name, &u.Description, &u.Cost, &typ, &u.Multiplier, &u.TargetID, &u.UnlockRequirement); err != nil {
			return cat, err
		}
		if u.Type, err = catalog.ParseUpgradeType(typ); err != nil {
			return cat, err
		}
		cat.Upgrades = append(cat.Upgrades, u)
	}
	if err := uRows.Err(); err != nil {
		return cat, err
	}

	aRows, err := s.db.Query(ctx, `
		SELECT id, name, description, requirement, type, reward
		FROM achievements ORDER BY position
	`)
	if err != nil {
		return cat, err
	}
	defer aRows.Close()
	for aRows.Next() {
		var a catalog.Achievement
		var typ string
		if err := aRows.Scan(&a.ID, &a.Name, &a.Description, &a.Requirement, &typ, &a.Reward); err != nil {
			return cat, err
		}
		if a.Type, err = catalog.ParseAchievementType(typ); err != nil {
			return cat, err
		}
		cat.Achievements = append(cat.Achievements, a)
	}
	return cat, aRows.Err()
}

// LoadPlayer assembles the full save for a user. A first-time player gets a
// progress row created on the spot; the entity collections come back empty
// and the engine falls back to catalog defaults.
func (s *Store) LoadPlayer(ctx context.Context, userID string) (engine.LoadData, error) {
	var data engine.LoadData

	err := s.db.QueryRow(ctx, `
		INSERT INTO player_progress (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING current_loc, total_loc, loc_per_click, offline_earned, last_active, updated_at
	`, userID).Scan(
		&data.Progress.CurrentLoC,
		&data.Progress.TotalLoC,
		&data.Progress.LoCPerClick,
		&data.Progress.OfflineEarned,
		&data.Progress.LastActive,
		&data.Progress.UpdatedAt,
	)
	if err != nil {
		return data, fmt.Errorf("load progress: %w", err)
	}

	bRows, err := s.db.Query(ctx, `
		SELECT business_id, level, managers FROM player_businesses WHERE user_id = $1
	`, userID)
	if err != nil {
		return data, err
	}
	defer bRows.Close()
	for bRows.Next() {
		var save engine.BusinessSave
		if err := bRows.Scan(&save.ID, &save.Level, &save.Managers); err != nil {
			return data, err
		}
		for _, n := range save.Managers {
			save.AssignedManagers += n
		}
		data.Businesses = append(data.Businesses, save)
	}
	if err := bRows.Err(); err != nil {
		return data, err
	}

	tRows, err := s.db.Query(ctx, `
		SELECT team_member_id, count, available_count FROM player_team WHERE user_id = $1
	`, userID)
	if err != nil {
		return data, err
	}
	defer tRows.Close()
	for tRows.Next() {
		var save engine.TeamSave
		if err := tRows.Scan(&save.ID, &save.Count, &save.AvailableCount); err != nil {
			return data, err
		}
		data.Team = append(data.Team, save)
	}
	if err := tRows.Err(); err != nil {
		return data, err
	}

	uRows, err := s.db.Query(ctx, `
		SELECT upgrade_id FROM player_upgrades WHERE user_id = $1
	`, userID)
	if err != nil {
		return data, err
	}
	defer uRows.Close()
	for uRows.Next() {
		var save engine.UpgradeSave
		if err := uRows.Scan(&save.ID); err != nil {
			return data, err
		}
		data.Upgrades = append(data.Upgrades, save)
	}
	if err := uRows.Err(); err != nil {
		return data, err
	}

	aRows, err := s.db.Query(ctx, `
		SELECT achievement_id, unlocked_at FROM player_achievements WHERE user_id = $1
	`, userID)
	if err != nil {
		return data, err
	}
	defer aRows.Close()
	for aRows.Next() {
		var save engine.AchievementSave
		if err := aRows.Scan(&save.ID, &save.UnlockedAt); err != nil {
			return data, err
		}
		data.Achievements = append(data.Achievements, save)
	}
	return data, aRows.Err()
}

// SavePlayer upserts the sparse payload. The progress row must land; entity
// rows are upserted independently so one bad row cannot lose the rest of the
// save. Entity failures are logged and counted, not returned.
func (s *Store) SavePlayer(ctx context.Context, p engine.SavePayload) error {
	now := time.Now()
	_, err := s.db.Exec(ctx, `
		INSERT INTO player_progress (user_id, current_loc, total_loc, loc_per_click, offline_earned, last_active, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			current_loc = EXCLUDED.current_loc,
			total_loc = EXCLUDED.total_loc,
			loc_per_click = EXCLUDED.loc_per_click,
			offline_earned = EXCLUDED.offline_earned,
			last_active = EXCLUDED.last_active,
			updated_at = EXCLUDED.updated_at
	`, p.UserID, p.CurrentLoC, p.TotalLoC, p.LoCPerClick, p.OfflineEarned, now)
	if err != nil {
		return fmt.Errorf("%w: progress: %v", ErrSaveFailed, err)
	}

	failed := 0
	for _, b := range p.Businesses {
		managers := b.Managers
		if managers == nil {
			managers = map[string]int{}
		}
		_, err := s.db.Exec(ctx, `
			INSERT INTO player_businesses (user_id, business_id, level, managers, updated_at)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (user_id, business_id) DO UPDATE SET
				level = EXCLUDED.level,
				managers = EXCLUDED.managers,
				updated_at = EXCLUDED.updated_at
		`, p.UserID, b.ID, b.Level, managers, now)
		if err != nil {
			failed++
			s.log.Warn("save business row failed", "user_id", p.UserID, "business_id", b.ID, "error", err)
		}
	}
	for _, t := range p.TeamMembers {
		_, err := s.db.Exec(ctx, `
			INSERT INTO player_team (user_id, team_member_id, count, available_count, updated_at)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (user_id, team_member_id) DO UPDATE SET
				count = EXCLUDED.count,
				available_count = EXCLUDED.available_count,
				updated_at = EXCLUDED.updated_at
		`, p.UserID, t.ID, t.Count, t.AvailableCount, now)
		if err != nil {
			failed++
			s.log.Warn("save team row failed", "user_id", p.UserID, "team_member_id", t.ID, "error", err)
		}
	}
	for _, u := range p.Upgrades {
		_, err := s.db.Exec(ctx, `
			INSERT INTO player_upgrades (user_id, upgrade_id)
			VALUES ($1, $2)
			ON CONFLICT (user_id, upgrade_id) DO NOTHING
		`, p.UserID, u.ID)
		if err != nil {
			failed++
			s.log.Warn("save upgrade row failed", "user_id", p.UserID, "upgrade_id", u.ID, "error", err)
		}
	}
	for _, a := range p.Achievements {
		unlockedAt := a.UnlockedAt
		if unlockedAt.IsZero() {
			unlockedAt = now
		}
		_, err := s.db.Exec(ctx, `
			INSERT INTO player_achievements (user_id, achievement_id, unlocked_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (user_id, achievement_id) DO NOTHING
		`, p.UserID, a.ID, unlockedAt)
		if err != nil {
			failed++
			s.log.Warn("save achievement row failed", "user_id", p.UserID, "achievement_id", a.ID, "error", err)
		}
	}
	if failed > 0 {
		s.log.Warn("save completed with failed rows", "user_id", p.UserID, "failed", failed)
	}
	return nil
}

// DeleteExpiredSessions prunes sessions past their expiry. Called
// periodically by the API.
func (s *Store) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	cmd, err := s.db.Exec(ctx, `DELETE FROM sessions WHERE expires_at < now()`)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
