package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"restorativeLandsAPI/internal/course"
	"restorativeLandsAPI/internal/ledger"
)

type CourseService struct {
	db           *pgxpool.Pool
	catalog      []course.Course
	achievements *AchievementService
}

// NewCourseService takes the course catalog as loaded at startup.
func NewCourseService(db *pgxpool.Pool, catalog []course.Course, achievements *AchievementService) *CourseService {
	return &CourseService{
		db:           db,
		catalog:      append([]course.Course(nil), catalog...),
		achievements: achievements,
	}
}

// GetCourses returns the active catalog.
func (s *CourseService) GetCourses() []course.Course {
	active := []course.Course{}
	for _, c := range s.catalog {
		if c.IsActive {
			active = append(active, c)
		}
	}
	return active
}

// GetAvailable returns the active courses whose prerequisites the user has
// completed. Completed courses stay in the list.
func (s *CourseService) GetAvailable(ctx context.Context, id string) ([]course.Course, error) {
	userID, err := parseUserID(id)
	if err != nil {
		return nil, err
	}

	if err := ensureUser(ctx, s.db, userID); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, `
		SELECT c.name
		FROM course_completions cc
		JOIN courses c ON c.id = cc.course_id
		WHERE cc.user_id = $1
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query completions: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan completion: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return course.Available(s.catalog, course.CompletedSlugs(names)), nil
}

func (s *CourseService) find(id string) (course.Course, bool) {
	courseID, err := uuid.Parse(id)
	if err != nil {
		return course.Course{}, false
	}
	for _, c := range s.catalog {
		if c.ID == courseID && c.IsActive {
			return c, true
		}
	}
	return course.Course{}, false
}

// CompleteCourse records the completion, pays the course reward and
// evaluates achievements. A second completion fails with ErrAlreadyCompleted
// and changes nothing.
func (s *CourseService) CompleteCourse(ctx context.Context, courseID, id string) (*course.CompletionResponse, error) {
	userID, err := parseUserID(id)
	if err != nil {
		return nil, err
	}

	c, ok := s.find(courseID)
	if !ok {
		return nil, ErrCourseNotFound
	}

	resp := &course.CompletionResponse{
		Completion: course.Completion{
			ID:             uuid.New(),
			UserID:         userID,
			CourseID:       c.ID,
			ZenCoinsEarned: c.ZenCoinReward,
			CompletedAt:    time.Now().UTC(),
		},
		CourseName: c.Name,
	}

	rtx, err := withRewardTx(ctx, s.db, func(rtx *rewardTx) error {
		var locked uuid.UUID
		if err := rtx.QueryRow(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&locked); err != nil {
			return userLookupError(err)
		}

		cc := resp.Completion
		tag, err := rtx.Exec(ctx, `
			INSERT INTO course_completions (id, user_id, course_id, zen_coins_earned, completed_at)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (user_id, course_id) DO NOTHING
		`, cc.ID, cc.UserID, cc.CourseID, cc.ZenCoinsEarned, cc.CompletedAt)
		if err != nil {
			return fmt.Errorf("failed to save completion: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrAlreadyCompleted
		}

		_, err = rtx.award(ctx, ledger.Award{
			UserID:      userID,
			Amount:      c.ZenCoinReward,
			Reason:      ledger.ReasonCourseCompletion,
			Description: "Course completed: " + c.Name,
			Metadata: map[string]any{
				"course_id":   c.ID.String(),
				"course_name": c.Name,
			},
		})
		if err != nil {
			return err
		}

		earned, err := s.achievements.evaluate(ctx, rtx, userID)
		if err != nil {
			return err
		}
		resp.AchievementsUnlocked = achievementNames(earned)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.achievements.publish(rtx)
	return resp, nil
}
