package sqlxrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/edutrack/backend/core/attendance"
)

// uniqueViolation is the pq error code raised by duplicate key inserts.
const uniqueViolation = "23505"

type attendanceRepository struct {
	db *sqlx.DB
}

func NewAttendanceRepository(db *sqlx.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

type attendanceRow struct {
	ID        string    `db:"id"`
	StudentID string    `db:"student_id"`
	ClassID   string    `db:"class_id"`
	Date      time.Time `db:"date"`
	Present   bool      `db:"present"`
	MarkedAt  time.Time `db:"marked_at"`
}

func (r attendanceRow) toAttendance() attendance.Attendance {
	return attendance.Attendance{
		ID:        r.ID,
		StudentID: r.StudentID,
		ClassID:   r.ClassID,
		Date:      attendance.Day(r.Date),
		Present:   r.Present,
		MarkedAt:  r.MarkedAt,
	}
}

// CreateAttendance relies on the unique (student_id, class_id, date) index to
// reject duplicate marks, so concurrent inserts cannot both succeed.
func (repo *attendanceRepository) CreateAttendance(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	att.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO attendance (id, student_id, class_id, date, present, marked_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		att.ID, att.StudentID, att.ClassID, att.Date, att.Present, att.MarkedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
			return attendance.Attendance{}, attendance.ErrAlreadyMarked
		}
		return attendance.Attendance{}, err
	}
	return att, nil
}

func (repo *attendanceRepository) QueryAttendanceByStudent(ctx context.Context, studentID string) ([]attendance.Attendance, error) {
	var rows []attendanceRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT * FROM attendance WHERE student_id = $1 ORDER BY marked_at`, studentID)
	if err != nil {
		return nil, err
	}
	records := make([]attendance.Attendance, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.toAttendance())
	}
	return records, nil
}
