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

type attendanceRepository struct {
	pool *pgxpool.Pool
}

// NewAttendanceRepository returns a Postgres-backed implementation. The
// training snapshot is stored as JSONB.
func NewAttendanceRepository(pool *pgxpool.Pool) AttendanceRepository {
	return &attendanceRepository{pool: pool}
}

const attendanceColumns = `id, user_id, training_id, training_title, attended_on, status, duration, location,
        certified, score, feedback, rating, training, recorded_at`

func (r *attendanceRepository) Save(ctx context.Context, rec *domain.AttendanceRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	const query = `
        INSERT INTO attendance_records (` + attendanceColumns + `)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
        ON CONFLICT (id) DO UPDATE SET
            status=EXCLUDED.status, duration=EXCLUDED.duration, location=EXCLUDED.location,
            certified=EXCLUDED.certified, score=EXCLUDED.score, feedback=EXCLUDED.feedback,
            rating=EXCLUDED.rating, training=EXCLUDED.training, recorded_at=EXCLUDED.recorded_at`
	_, err := r.pool.Exec(ctx, query,
		rec.ID, rec.UserID, rec.TrainingID, rec.TrainingTitle, rec.Date, rec.Status, rec.Duration, rec.Location,
		rec.Certified, rec.Score, rec.Feedback, rec.Rating, rec.Training, rec.RecordedAt,
	)
	return err
}

func (r *attendanceRepository) List(ctx context.Context) ([]domain.AttendanceRecord, error) {
	return r.query(ctx, `SELECT `+attendanceColumns+` FROM attendance_records ORDER BY attended_on DESC`)
}

func (r *attendanceRepository) ListByUser(ctx context.Context, userID string) ([]domain.AttendanceRecord, error) {
	return r.query(ctx, `SELECT `+attendanceColumns+` FROM attendance_records WHERE user_id=$1 ORDER BY attended_on DESC`, userID)
}

func (r *attendanceRepository) GetByID(ctx context.Context, id string) (*domain.AttendanceRecord, error) {
	return r.single(ctx, `SELECT `+attendanceColumns+` FROM attendance_records WHERE id=$1`, id)
}

func (r *attendanceRepository) GetByUserAndTraining(ctx context.Context, userID, trainingID string) (*domain.AttendanceRecord, error) {
	return r.single(ctx, `SELECT `+attendanceColumns+` FROM attendance_records WHERE user_id=$1 AND training_id=$2`, userID, trainingID)
}

func (r *attendanceRepository) single(ctx context.Context, query string, args ...any) (*domain.AttendanceRecord, error) {
	rec, err := scanAttendance(r.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	return rec, err
}

func (r *attendanceRepository) query(ctx context.Context, query string, args ...any) ([]domain.AttendanceRecord, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.AttendanceRecord
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

func scanAttendance(row pgx.Row) (*domain.AttendanceRecord, error) {
	var rec domain.AttendanceRecord
	if err := row.Scan(
		&rec.ID,
		&rec.UserID,
		&rec.TrainingID,
		&rec.TrainingTitle,
		&rec.Date,
		&rec.Status,
		&rec.Duration,
		&rec.Location,
		&rec.Certified,
		&rec.Score,
		&rec.Feedback,
		&rec.Rating,
		&rec.Training,
		&rec.RecordedAt,
	); err != nil {
		return nil, err
	}
	return &rec, nil
}
