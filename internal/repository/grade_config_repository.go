package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/grunt24/grading-api/internal/models"
)

// GradeConfigRepository persists the component weights and the grade-point
// equivalents the calculator reads.
type GradeConfigRepository struct {
	db *sqlx.DB
}

// NewGradeConfigRepository creates a new repository instance.
func NewGradeConfigRepository(db *sqlx.DB) *GradeConfigRepository {
	return &GradeConfigRepository{db: db}
}

// GetPercentage returns the most recently updated weight row. It returns
// sql.ErrNoRows when nothing has been configured.
func (r *GradeConfigRepository) GetPercentage(ctx context.Context) (*models.GradePercentage, error) {
	const query = `SELECT id, quiz_weighted, class_standing_weighted, sep_weighted, project_weighted,
        midterm_weighted, finals_weighted, updated_at
        FROM grade_percentages ORDER BY updated_at DESC LIMIT 1`
	var pct models.GradePercentage
	if err := r.db.GetContext(ctx, &pct, query); err != nil {
		return nil, err
	}
	return &pct, nil
}

// UpsertPercentage stores the weight row, assigning an id when missing.
func (r *GradeConfigRepository) UpsertPercentage(ctx context.Context, pct *models.GradePercentage) error {
	if pct.ID == "" {
		pct.ID = uuid.NewString()
	}
	pct.UpdatedAt = time.Now().UTC()
	const query = `INSERT INTO grade_percentages (id, quiz_weighted, class_standing_weighted, sep_weighted,
        project_weighted, midterm_weighted, finals_weighted, updated_at)
        VALUES (:id, :quiz_weighted, :class_standing_weighted, :sep_weighted, :project_weighted,
        :midterm_weighted, :finals_weighted, :updated_at)
        ON CONFLICT (id) DO UPDATE SET quiz_weighted = EXCLUDED.quiz_weighted,
        class_standing_weighted = EXCLUDED.class_standing_weighted, sep_weighted = EXCLUDED.sep_weighted,
        project_weighted = EXCLUDED.project_weighted, midterm_weighted = EXCLUDED.midterm_weighted,
        finals_weighted = EXCLUDED.finals_weighted, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, pct); err != nil {
		return fmt.Errorf("upsert grade percentage: %w", err)
	}
	return nil
}

// ListEquivalents returns the grade bands in lookup order.
func (r *GradeConfigRepository) ListEquivalents(ctx context.Context) ([]models.GradeEquivalent, error) {
	const query = `SELECT id, min_percentage, max_percentage, grade_point, description, sort_order, created_at
        FROM grade_equivalents ORDER BY sort_order ASC, created_at ASC`
	var rows []models.GradeEquivalent
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list grade equivalents: %w", err)
	}
	return rows, nil
}

// ReplaceEquivalents rewrites the whole table in a transaction. Sort order
// follows the slice order.
func (r *GradeConfigRepository) ReplaceEquivalents(ctx context.Context, rows []models.GradeEquivalent) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin grade equivalents tx: %w", err)
	}
	if err := r.replaceEquivalentsTx(ctx, tx, rows); err != nil {
		tx.Rollback() //nolint:errcheck
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit grade equivalents: %w", err)
	}
	return nil
}

func (r *GradeConfigRepository) replaceEquivalentsTx(ctx context.Context, tx *sqlx.Tx, rows []models.GradeEquivalent) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM grade_equivalents"); err != nil {
		return fmt.Errorf("clear grade equivalents: %w", err)
	}
	const insert = `INSERT INTO grade_equivalents (id, min_percentage, max_percentage, grade_point, description, sort_order, created_at)
        VALUES (:id, :min_percentage, :max_percentage, :grade_point, :description, :sort_order, :created_at)`
	now := time.Now().UTC()
	for i := range rows {
		if rows[i].ID == "" {
			rows[i].ID = uuid.NewString()
		}
		rows[i].SortOrder = i + 1
		rows[i].CreatedAt = now
		if _, err := tx.NamedExecContext(ctx, insert, rows[i]); err != nil {
			return fmt.Errorf("insert grade equivalent: %w", err)
		}
	}
	return nil
}
