package registration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"clubswim/internal/meet/models"
	"clubswim/internal/meet/store/pgerr"
	id "clubswim/pkg/domain"
	"clubswim/pkg/platform/sentinel"
	txcontext "clubswim/pkg/platform/tx"
)

// PostgresStore persists registrations and registration_results.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Create inserts the pair, falling back to the existing row's id when the pair
// is already registered.
func (s *PostgresStore) Create(ctx context.Context, participantID id.ParticipantID, competitionID id.CompetitionID) (id.RegistrationID, error) {
	exec := txcontext.Pick(ctx, s.db)
	insert := `
		INSERT INTO registrations (id, participant_id, competition_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (participant_id, competition_id) DO NOTHING
		RETURNING id
	`
	var rid uuid.UUID
	err := exec.QueryRowContext(ctx, insert,
		uuid.UUID(id.NewRegistrationID()), uuid.UUID(participantID), uuid.UUID(competitionID),
	).Scan(&rid)
	switch {
	case err == nil:
		return id.RegistrationID(rid), nil
	case pgerr.IsForeignKeyViolation(err):
		return id.RegistrationID{}, fmt.Errorf("create registration: %w", sentinel.ErrNotFound)
	case !errors.Is(err, sql.ErrNoRows):
		return id.RegistrationID{}, fmt.Errorf("create registration: %w", err)
	}

	existing := `SELECT id FROM registrations WHERE participant_id = $1 AND competition_id = $2`
	if err := exec.QueryRowContext(ctx, existing, uuid.UUID(participantID), uuid.UUID(competitionID)).Scan(&rid); err != nil {
		return id.RegistrationID{}, fmt.Errorf("find existing registration: %w", err)
	}
	return id.RegistrationID(rid), nil
}

func (s *PostgresStore) FindByID(ctx context.Context, registrationID id.RegistrationID) (*models.Registration, error) {
	query := `SELECT id, participant_id, competition_id FROM registrations WHERE id = $1`
	r, err := scanRegistration(txcontext.Pick(ctx, s.db).QueryRowContext(ctx, query, uuid.UUID(registrationID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find registration: %w", err)
	}
	return r, nil
}

func (s *PostgresStore) ListByParticipant(ctx context.Context, participantID id.ParticipantID) ([]models.Registration, error) {
	query := `SELECT id, participant_id, competition_id FROM registrations WHERE participant_id = $1 ORDER BY seq`
	return s.list(ctx, query, uuid.UUID(participantID))
}

func (s *PostgresStore) ListByCompetition(ctx context.Context, competitionID id.CompetitionID) ([]models.Registration, error) {
	query := `SELECT id, participant_id, competition_id FROM registrations WHERE competition_id = $1 ORDER BY seq`
	return s.list(ctx, query, uuid.UUID(competitionID))
}

func (s *PostgresStore) list(ctx context.Context, query string, args ...any) ([]models.Registration, error) {
	rows, err := txcontext.Pick(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()

	out := make([]models.Registration, 0)
	for rows.Next() {
		r, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		out = append(out, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate registrations: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Delete(ctx context.Context, registrationID id.RegistrationID) error {
	res, err := txcontext.Pick(ctx, s.db).ExecContext(ctx, `DELETE FROM registrations WHERE id = $1`, uuid.UUID(registrationID))
	if err != nil {
		if pgerr.IsForeignKeyViolation(err) {
			return fmt.Errorf("delete registration: %w", sentinel.ErrConflict)
		}
		return fmt.Errorf("delete registration: %w", err)
	}
	return pgerr.RequireAffected(res)
}

func (s *PostgresStore) CreateResult(ctx context.Context, registrationID id.RegistrationID, result models.RegistrationResult) error {
	query := `
		INSERT INTO registration_results (registration_id, disqualified, time_millis, fina_points)
		VALUES ($1, $2, $3, $4)
	`
	_, err := txcontext.Pick(ctx, s.db).ExecContext(ctx, query,
		uuid.UUID(registrationID), result.Disqualified, int64(result.TimeMillis), int64(result.FinaPoints),
	)
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return fmt.Errorf("create result: %w", sentinel.ErrConflict)
		}
		if pgerr.IsForeignKeyViolation(err) {
			return fmt.Errorf("create result: %w", sentinel.ErrNotFound)
		}
		return fmt.Errorf("create result: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindResult(ctx context.Context, registrationID id.RegistrationID) (*models.RegistrationResult, error) {
	query := `SELECT disqualified, time_millis, fina_points FROM registration_results WHERE registration_id = $1`
	var (
		result             models.RegistrationResult
		timeMillis, points int64
	)
	err := txcontext.Pick(ctx, s.db).QueryRowContext(ctx, query, uuid.UUID(registrationID)).
		Scan(&result.Disqualified, &timeMillis, &points)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find result: %w", err)
	}
	result.TimeMillis = uint32(timeMillis)
	result.FinaPoints = uint32(points)
	return &result, nil
}

// FindResults loads the results of many registrations in one round trip.
func (s *PostgresStore) FindResults(ctx context.Context, registrationIDs []id.RegistrationID) (map[id.RegistrationID]models.RegistrationResult, error) {
	out := make(map[id.RegistrationID]models.RegistrationResult, len(registrationIDs))
	if len(registrationIDs) == 0 {
		return out, nil
	}
	keys := make([]string, len(registrationIDs))
	for i, rid := range registrationIDs {
		keys[i] = rid.String()
	}

	query := `
		SELECT registration_id, disqualified, time_millis, fina_points
		FROM registration_results
		WHERE registration_id = ANY($1::uuid[])
	`
	rows, err := txcontext.Pick(ctx, s.db).QueryContext(ctx, query, pq.Array(keys))
	if err != nil {
		return nil, fmt.Errorf("find results: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			rid                uuid.UUID
			result             models.RegistrationResult
			timeMillis, points int64
		)
		if err := rows.Scan(&rid, &result.Disqualified, &timeMillis, &points); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		result.TimeMillis = uint32(timeMillis)
		result.FinaPoints = uint32(points)
		out[id.RegistrationID(rid)] = result
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) DeleteResult(ctx context.Context, registrationID id.RegistrationID) error {
	res, err := txcontext.Pick(ctx, s.db).ExecContext(ctx,
		`DELETE FROM registration_results WHERE registration_id = $1`, uuid.UUID(registrationID))
	if err != nil {
		return fmt.Errorf("delete result: %w", err)
	}
	return pgerr.RequireAffected(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRegistration(row rowScanner) (*models.Registration, error) {
	var rid, pid, cid uuid.UUID
	if err := row.Scan(&rid, &pid, &cid); err != nil {
		return nil, err
	}
	return &models.Registration{
		ID:            id.RegistrationID(rid),
		ParticipantID: id.ParticipantID(pid),
		CompetitionID: id.CompetitionID(cid),
	}, nil
}
