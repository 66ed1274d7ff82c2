package participant

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

// PostgresStore persists participants. short_id comes from a serial column.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const participantColumns = `id, short_id, first_name, last_name, gender, birthday, group_id`

func (s *PostgresStore) Create(ctx context.Context, p *models.Participant) error {
	query := `
		INSERT INTO participants (id, first_name, last_name, gender, birthday, group_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING short_id
	`
	err := txcontext.Pick(ctx, s.db).QueryRowContext(ctx, query,
		uuid.UUID(p.ID), p.FirstName, p.LastName, string(p.Gender), p.Birthday.Time, uuid.UUID(p.GroupID),
	).Scan(&p.ShortID)
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return fmt.Errorf("create participant: %w", sentinel.ErrConflict)
		}
		if pgerr.IsForeignKeyViolation(err) {
			return fmt.Errorf("create participant: group %s: %w", p.GroupID, sentinel.ErrNotFound)
		}
		return fmt.Errorf("create participant: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, participantID id.ParticipantID) (*models.Participant, error) {
	query := `SELECT ` + participantColumns + ` FROM participants WHERE id = $1`
	p, err := scanParticipant(txcontext.Pick(ctx, s.db).QueryRowContext(ctx, query, uuid.UUID(participantID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find participant: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]models.Participant, error) {
	query := `SELECT ` + participantColumns + ` FROM participants ORDER BY short_id`
	return s.list(ctx, query)
}

func (s *PostgresStore) ListByGroup(ctx context.Context, groupID id.GroupID) ([]models.Participant, error) {
	query := `SELECT ` + participantColumns + ` FROM participants WHERE group_id = $1 ORDER BY short_id`
	return s.list(ctx, query, uuid.UUID(groupID))
}

func (s *PostgresStore) list(ctx context.Context, query string, args ...any) ([]models.Participant, error) {
	rows, err := txcontext.Pick(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	defer rows.Close()

	out := make([]models.Participant, 0)
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate participants: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Delete(ctx context.Context, participantID id.ParticipantID) error {
	res, err := txcontext.Pick(ctx, s.db).ExecContext(ctx, `DELETE FROM participants WHERE id = $1`, uuid.UUID(participantID))
	if err != nil {
		return fmt.Errorf("delete participant: %w", err)
	}
	return pgerr.RequireAffected(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanParticipant(row rowScanner) (*models.Participant, error) {
	var (
		p        models.Participant
		pid, gid uuid.UUID
		gender   string
	)
	if err := row.Scan(&pid, &p.ShortID, &p.FirstName, &p.LastName, &gender, &p.Birthday.Time, &gid); err != nil {
		return nil, err
	}
	p.ID = id.ParticipantID(pid)
	p.GroupID = id.GroupID(gid)
	p.Gender = models.Gender(gender)
	return &p, nil
}
