package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brightrock/efficiency-platform/internal/domain"
	apperrors "github.com/brightrock/efficiency-platform/pkg/util/errorutil"
)

type trainingRepository struct {
	pool *pgxpool.Pool
}

// NewTrainingRepository instantiates repository.
func NewTrainingRepository(pool *pgxpool.Pool) TrainingRepository {
	return &trainingRepository{pool: pool}
}

const trainingColumns = `id, title, description, starts_at, ends_at, status, attendees, capacity,
        is_mandatory, is_virtual, location, facilitator_name, category, type, level`

func (r *trainingRepository) Create(ctx context.Context, t *domain.Training) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	const query = `
        INSERT INTO trainings (` + trainingColumns + `)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`
	_, err := r.pool.Exec(ctx, query,
		t.ID, t.Title, t.Description, t.Date, t.EndDate, t.Status, t.Attendees, t.Capacity,
		t.IsMandatory, t.IsVirtual, t.Location, t.FacilitatorName, t.Category, t.Type, t.Level,
	)
	return err
}

func (r *trainingRepository) Update(ctx context.Context, t *domain.Training) error {
	const query = `
        UPDATE trainings SET title=$1, description=$2, starts_at=$3, ends_at=$4, status=$5, attendees=$6,
            capacity=$7, is_mandatory=$8, is_virtual=$9, location=$10, facilitator_name=$11, category=$12,
            type=$13, level=$14, updated_at=NOW()
        WHERE id=$15`
	cmd, err := r.pool.Exec(ctx, query,
		t.Title, t.Description, t.Date, t.EndDate, t.Status, t.Attendees, t.Capacity,
		t.IsMandatory, t.IsVirtual, t.Location, t.FacilitatorName, t.Category, t.Type, t.Level,
		t.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *trainingRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM trainings WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *trainingRepository) GetByID(ctx context.Context, id string) (*domain.Training, error) {
	t, err := scanTraining(r.pool.QueryRow(ctx, `SELECT `+trainingColumns+` FROM trainings WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	return t, err
}

func (r *trainingRepository) List(ctx context.Context) ([]domain.Training, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+trainingColumns+` FROM trainings ORDER BY starts_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trainings []domain.Training
	for rows.Next() {
		t, err := scanTraining(rows)
		if err != nil {
			return nil, err
		}
		trainings = append(trainings, *t)
	}
	return trainings, rows.Err()
}

func scanTraining(row pgx.Row) (*domain.Training, error) {
	var t domain.Training
	if err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.Date,
		&t.EndDate,
		&t.Status,
		&t.Attendees,
		&t.Capacity,
		&t.IsMandatory,
		&t.IsVirtual,
		&t.Location,
		&t.FacilitatorName,
		&t.Category,
		&t.Type,
		&t.Level,
	); err != nil {
		return nil, err
	}
	return &t, nil
}
