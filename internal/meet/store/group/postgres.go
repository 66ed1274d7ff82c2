package group

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

type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, g *models.Group) error {
	_, err := txcontext.Pick(ctx, s.db).ExecContext(ctx,
		`INSERT INTO groups (id, name) VALUES ($1, $2)`, uuid.UUID(g.ID), g.Name)
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return fmt.Errorf("create group: %w", sentinel.ErrConflict)
		}
		return fmt.Errorf("create group: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, groupID id.GroupID) (*models.Group, error) {
	var (
		g   models.Group
		gid uuid.UUID
	)
	err := txcontext.Pick(ctx, s.db).QueryRowContext(ctx,
		`SELECT id, name FROM groups WHERE id = $1`, uuid.UUID(groupID)).Scan(&gid, &g.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find group: %w", err)
	}
	g.ID = id.GroupID(gid)
	return &g, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]models.Group, error) {
	rows, err := txcontext.Pick(ctx, s.db).QueryContext(ctx, `SELECT id, name FROM groups ORDER BY name, id::text`)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer rows.Close()

	out := make([]models.Group, 0)
	for rows.Next() {
		var (
			g   models.Group
			gid uuid.UUID
		)
		if err := rows.Scan(&gid, &g.Name); err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		g.ID = id.GroupID(gid)
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate groups: %w", err)
	}
	return out, nil
}
