package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"restorativeLandsAPI/internal/achievement"
	"restorativeLandsAPI/internal/course"
	"restorativeLandsAPI/internal/logger"
)

// CatalogService seeds and loads the achievement and course catalogs.
type CatalogService struct {
	db *pgxpool.Pool
}

func NewCatalogService(db *pgxpool.Pool) *CatalogService {
	return &CatalogService{db: db}
}

// Seed fills each catalog table from the built-in definitions, but only
// when that table is empty. Existing rows are never touched.
func (s *CatalogService) Seed(ctx context.Context) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// serializes concurrent seeders starting at the same time
	if _, err := tx.Exec(ctx, `LOCK TABLE achievements, courses IN SHARE ROW EXCLUSIVE MODE`); err != nil {
		return fmt.Errorf("failed to lock catalog tables: %w", err)
	}

	seeded, err := seedAchievements(ctx, tx, achievement.DefaultCatalog())
	if err != nil {
		return err
	}
	if seeded > 0 {
		logger.Info("seeded achievements", "count", seeded)
	}

	seeded, err = seedCourses(ctx, tx, course.DefaultCatalog())
	if err != nil {
		return err
	}
	if seeded > 0 {
		logger.Info("seeded courses", "count", seeded)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit catalog seed: %w", err)
	}
	return nil
}

func tableEmpty(ctx context.Context, tx pgx.Tx, table string) (bool, error) {
	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM `+table+`)`).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to inspect %s: %w", table, err)
	}
	return !exists, nil
}

func seedAchievements(ctx context.Context, tx pgx.Tx, catalog []achievement.Achievement) (int, error) {
	empty, err := tableEmpty(ctx, tx, "achievements")
	if err != nil || !empty {
		return 0, err
	}

	for i, a := range catalog {
		req, err := achievement.MarshalRequirement(a.Requirement)
		if err != nil {
			return 0, fmt.Errorf("achievement %s: %w", a.Name, err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO achievements (id, name, description, icon, zen_coin_reward, requirement, is_repeatable, sort_order)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, uuid.New(), a.Name, a.Description, a.Icon, a.ZenCoinReward, req, a.Repeatable, i)
		if err != nil {
			return 0, fmt.Errorf("failed to seed achievement %s: %w", a.Name, err)
		}
	}
	return len(catalog), nil
}

func seedCourses(ctx context.Context, tx pgx.Tx, catalog []course.Course) (int, error) {
	empty, err := tableEmpty(ctx, tx, "courses")
	if err != nil || !empty {
		return 0, err
	}

	for i, c := range catalog {
		prerequisites := c.Prerequisites
		if prerequisites == nil {
			prerequisites = []string{}
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO courses (id, name, description, level, zen_coin_reward, duration_minutes, breathing_pattern, prerequisites, is_active, sort_order)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, uuid.New(), c.Name, c.Description, c.Level, c.ZenCoinReward, c.DurationMinutes, c.BreathingPattern, prerequisites, c.IsActive, i)
		if err != nil {
			return 0, fmt.Errorf("failed to seed course %s: %w", c.Name, err)
		}
	}
	return len(catalog), nil
}

// LoadAchievements reads the achievement catalog in display order.
func (s *CatalogService) LoadAchievements(ctx context.Context) ([]achievement.Achievement, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, description, icon, zen_coin_reward, requirement, is_repeatable, sort_order, created_at
		FROM achievements
		ORDER BY sort_order, created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query achievements: %w", err)
	}
	defer rows.Close()

	catalog := []achievement.Achievement{}
	for rows.Next() {
		var (
			a   achievement.Achievement
			raw []byte
		)
		if err := rows.Scan(&a.ID, &a.Name, &a.Description, &a.Icon, &a.ZenCoinReward, &raw, &a.Repeatable, &a.SortOrder, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan achievement: %w", err)
		}

		a.Requirement, err = achievement.UnmarshalRequirement(raw)
		if err != nil {
			return nil, fmt.Errorf("achievement %s: %w", a.Name, err)
		}
		catalog = append(catalog, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return catalog, nil
}

// LoadCourses reads the whole course catalog, inactive courses included.
func (s *CatalogService) LoadCourses(ctx context.Context) ([]course.Course, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, description, level, zen_coin_reward, duration_minutes, breathing_pattern, prerequisites, is_active, sort_order, created_at
		FROM courses
		ORDER BY sort_order, created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	catalog := []course.Course{}
	for rows.Next() {
		var c course.Course
		err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Level, &c.ZenCoinReward, &c.DurationMinutes, &c.BreathingPattern, &c.Prerequisites, &c.IsActive, &c.SortOrder, &c.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		catalog = append(catalog, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return catalog, nil
}
