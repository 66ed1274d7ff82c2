package competition

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"clubswim/internal/meet/models"
	"clubswim/internal/meet/store/pgerr"
	id "clubswim/pkg/domain"
	"clubswim/pkg/platform/sentinel"
	txcontext "clubswim/pkg/platform/tx"
)

// PostgresStore persists competitions. The unique constraint on
// (gender, stroke, distance) surfaces as sentinel.ErrConflict.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const competitionColumns = `id, gender, stroke, distance, target_time`

func (s *PostgresStore) Create(ctx context.Context, c *models.Competition) error {
	query := `
		INSERT INTO competitions (id, gender, stroke, distance, target_time)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := txcontext.Pick(ctx, s.db).ExecContext(ctx, query,
		uuid.UUID(c.ID), string(c.Gender), string(c.Stroke), int64(c.Distance), int64(c.TargetTime),
	)
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return fmt.Errorf("create competition: %w", sentinel.ErrConflict)
		}
		return fmt.Errorf("create competition: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, competitionID id.CompetitionID) (*models.Competition, error) {
	query := `SELECT ` + competitionColumns + ` FROM competitions WHERE id = $1`
	c, err := scanCompetition(txcontext.Pick(ctx, s.db).QueryRowContext(ctx, query, uuid.UUID(competitionID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find competition: %w", err)
	}
	return c, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]models.Competition, error) {
	return s.list(ctx, `SELECT `+competitionColumns+` FROM competitions ORDER BY seq`)
}

func (s *PostgresStore) ListByGender(ctx context.Context, gender models.Gender) ([]models.Competition, error) {
	return s.list(ctx, `SELECT `+competitionColumns+` FROM competitions WHERE gender = $1 ORDER BY seq`, string(gender))
}

func (s *PostgresStore) list(ctx context.Context, query string, args ...any) ([]models.Competition, error) {
	rows, err := txcontext.Pick(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list competitions: %w", err)
	}
	defer rows.Close()

	out := make([]models.Competition, 0)
	for rows.Next() {
		c, err := scanCompetition(rows)
		if err != nil {
			return nil, fmt.Errorf("scan competition: %w", err)
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate competitions: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Delete(ctx context.Context, competitionID id.CompetitionID) error {
	res, err := txcontext.Pick(ctx, s.db).ExecContext(ctx, `DELETE FROM competitions WHERE id = $1`, uuid.UUID(competitionID))
	if err != nil {
		return fmt.Errorf("delete competition: %w", err)
	}
	return pgerr.RequireAffected(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCompetition(row rowScanner) (*models.Competition, error) {
	var (
		c                    models.Competition
		cid                  uuid.UUID
		gender, stroke       string
		distance, targetTime int64
	)
	if err := row.Scan(&cid, &gender, &stroke, &distance, &targetTime); err != nil {
		return nil, err
	}
	c.ID = id.CompetitionID(cid)
	c.Gender = models.Gender(gender)
	c.Stroke = models.Stroke(stroke)
	c.Distance = uint32(distance)
	c.TargetTime = uint32(targetTime)
	return &c, nil
}
