package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/JonMunkholm/droprows/internal/params"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// DBTX is the subset of pgx used by Postgres.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS droprows_steps (
	id         uuid PRIMARY KEY,
	version    integer NOT NULL,
	row_spec   text NOT NULL DEFAULT '',
	first_row  integer,
	last_row   integer,
	created_at timestamptz NOT NULL DEFAULT now(),
	updated_at timestamptz NOT NULL DEFAULT now()
)`

const selectColumns = `id, version, row_spec, first_row, last_row, created_at, updated_at`

// Postgres is a StepStore backed by PostgreSQL.
type Postgres struct {
	db DBTX
}

// NewPostgres returns a store using db. Call EnsureSchema once at startup.
func NewPostgres(db DBTX) *Postgres {
	return &Postgres{db: db}
}

// EnsureSchema creates the steps table if it does not exist.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create steps table: %w", err)
	}
	return nil
}

func (p *Postgres) Get(ctx context.Context, id uuid.UUID) (Step, error) {
	row := p.db.QueryRow(ctx,
		`SELECT `+selectColumns+` FROM droprows_steps WHERE id = $1`,
		toPgUUID(id),
	)
	step, err := scanStep(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Step{}, ErrStepNotFound
	}
	if err != nil {
		return Step{}, fmt.Errorf("get step %s: %w", id, err)
	}
	return step, nil
}

func (p *Postgres) Put(ctx context.Context, step Step) error {
	_, err := p.db.Exec(ctx, `
		INSERT INTO droprows_steps (id, version, row_spec, first_row, last_row, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, COALESCE($6, now()), COALESCE($7, now()))
		ON CONFLICT (id) DO UPDATE SET
			version    = EXCLUDED.version,
			row_spec   = EXCLUDED.row_spec,
			first_row  = EXCLUDED.first_row,
			last_row   = EXCLUDED.last_row,
			updated_at = EXCLUDED.updated_at`,
		toPgUUID(step.ID),
		step.Params.Version,
		step.Params.Rows,
		toPgInt4(step.Params.FirstRow),
		toPgInt4(step.Params.LastRow),
		toPgTimestamptz(step.CreatedAt),
		toPgTimestamptz(step.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put step %s: %w", step.ID, err)
	}
	return nil
}

func (p *Postgres) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := p.db.Exec(ctx, `DELETE FROM droprows_steps WHERE id = $1`, toPgUUID(id))
	if err != nil {
		return fmt.Errorf("delete step %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrStepNotFound
	}
	return nil
}

func (p *Postgres) List(ctx context.Context) ([]Step, error) {
	rows, err := p.db.Query(ctx,
		`SELECT `+selectColumns+` FROM droprows_steps ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list steps: %w", err)
	}
	defer rows.Close()

	var steps []Step
	for rows.Next() {
		step, err := scanStep(rows)
		if err != nil {
			return nil, fmt.Errorf("scan step: %w", err)
		}
		steps = append(steps, step)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list steps: %w", err)
	}
	return steps, nil
}

func scanStep(row pgx.Row) (Step, error) {
	var (
		id                pgtype.UUID
		version           int32
		rowSpec           string
		firstRow, lastRow pgtype.Int4
		created, updated  pgtype.Timestamptz
	)
	if err := row.Scan(&id, &version, &rowSpec, &firstRow, &lastRow, &created, &updated); err != nil {
		return Step{}, err
	}

	return Step{
		ID: uuid.UUID(id.Bytes),
		Params: params.Stored{
			Version:  int(version),
			Rows:     rowSpec,
			FirstRow: fromPgInt4(firstRow),
			LastRow:  fromPgInt4(lastRow),
		},
		CreatedAt: created.Time,
		UpdatedAt: updated.Time,
	}, nil
}
