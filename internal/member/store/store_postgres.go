package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"memberlist/internal/member/models"
	"memberlist/pkg/platform/sentinel"
)

// uniqueViolation is the PostgreSQL error code raised when the partial unique
// index on active emails rejects an insert or update.
const uniqueViolation = "23505"

// Postgres persists members in PostgreSQL. The store is pure I/O; field
// validation and the duplicate-email policy live in the service, while the
// partial unique index remains the canonical duplicate guard under
// concurrent registrations.
type Postgres struct {
	db    *sql.DB
	clock Clock
}

// PostgresOption configures a Postgres store.
type PostgresOption func(*Postgres)

// WithPostgresClock sets the clock used for timestamp assignment.
func WithPostgresClock(clock Clock) PostgresOption {
	return func(s *Postgres) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// NewPostgres constructs a PostgreSQL-backed member store.
func NewPostgres(db *sql.DB, opts ...PostgresOption) *Postgres {
	s := &Postgres{
		db:    db,
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Postgres) Save(ctx context.Context, member *models.Member) error {
	now := s.clock()

	if !member.IsPersisted() {
		query := `
			INSERT INTO members (name, name_kana, email, position, location, profile_image_url, self_introduction, created_at, updated_at, is_deleted)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8, FALSE)
			RETURNING id
		`
		err := s.db.QueryRowContext(ctx, query,
			member.Name,
			member.NameKana,
			member.Email,
			member.Position,
			member.Location,
			member.ProfileImageURL,
			member.SelfIntroduction,
			now,
		).Scan(&member.ID)
		if err != nil {
			if isUniqueViolation(err) {
				return sentinel.ErrAlreadyUsed
			}
			return fmt.Errorf("insert member: %w", err)
		}
		member.CreatedAt = now
		member.UpdatedAt = now
		return nil
	}

	query := `
		UPDATE members
		SET name = $2, name_kana = $3, email = $4, position = $5, location = $6,
			profile_image_url = $7, self_introduction = $8, updated_at = $9, is_deleted = $10
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		member.ID,
		member.Name,
		member.NameKana,
		member.Email,
		member.Position,
		member.Location,
		member.ProfileImageURL,
		member.SelfIntroduction,
		now,
		member.IsDeleted,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("update member: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update member: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	member.UpdatedAt = now
	return nil
}

// FindByID returns a member regardless of its deletion state.
func (s *Postgres) FindByID(ctx context.Context, id int64) (*models.Member, error) {
	query := selectColumns + ` WHERE id = $1`
	member, err := scanMember(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find member by id: %w", err)
	}
	return member, nil
}

// FindByEmail returns the active member holding the given email.
func (s *Postgres) FindByEmail(ctx context.Context, email string) (*models.Member, error) {
	query := selectColumns + ` WHERE email = $1 AND NOT is_deleted`
	member, err := scanMember(s.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find member by email: %w", err)
	}
	return member, nil
}

// FindAllActive returns active members ordered by descending creation time.
func (s *Postgres) FindAllActive(ctx context.Context) ([]*models.Member, error) {
	query := selectColumns + ` WHERE NOT is_deleted ORDER BY created_at DESC, id DESC`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list active members: %w", err)
	}
	defer rows.Close()

	var members []*models.Member
	for rows.Next() {
		member, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list active members: %w", err)
	}
	return members, nil
}

// ExistsActiveByEmail reports whether an active member holds the email.
func (s *Postgres) ExistsActiveByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM members WHERE email = $1 AND NOT is_deleted)`,
		email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check member email: %w", err)
	}
	return exists, nil
}

// MarkDeleted flags the member as logically deleted and persists the change.
func (s *Postgres) MarkDeleted(ctx context.Context, member *models.Member) error {
	now := s.clock()
	res, err := s.db.ExecContext(ctx,
		`UPDATE members SET is_deleted = TRUE, updated_at = $2 WHERE id = $1`,
		member.ID, now,
	)
	if err != nil {
		return fmt.Errorf("mark member deleted: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark member deleted: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	member.Delete()
	member.UpdatedAt = now
	return nil
}

const selectColumns = `
	SELECT id, name, name_kana, email, position, location, profile_image_url, self_introduction, created_at, updated_at, is_deleted
	FROM members`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMember(row rowScanner) (*models.Member, error) {
	var m models.Member
	err := row.Scan(
		&m.ID,
		&m.Name,
		&m.NameKana,
		&m.Email,
		&m.Position,
		&m.Location,
		&m.ProfileImageURL,
		&m.SelfIntroduction,
		&m.CreatedAt,
		&m.UpdatedAt,
		&m.IsDeleted,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
