package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/edutrack/backend/core/schedule"
)

type scheduleRepository struct {
	db *sqlx.DB
}

func NewScheduleRepository(db *sqlx.DB) schedule.Repository {
	return &scheduleRepository{db: db}
}

// classRow stores times as HH:MM text.
type classRow struct {
	ID        string `db:"id"`
	SubjectID string `db:"subject_id"`
	TeacherID string `db:"teacher_id"`
	DayOfWeek int    `db:"day_of_week"`
	StartTime string `db:"start_time"`
	EndTime   string `db:"end_time"`
	Room      string `db:"room"`
	Building  string `db:"building"`
}

func (r classRow) toClass() (schedule.Class, error) {
	start, err := schedule.ParseTimeOfDay(r.StartTime)
	if err != nil {
		return schedule.Class{}, err
	}
	end, err := schedule.ParseTimeOfDay(r.EndTime)
	if err != nil {
		return schedule.Class{}, err
	}
	return schedule.Class{
		ID:        r.ID,
		SubjectID: r.SubjectID,
		TeacherID: r.TeacherID,
		DayOfWeek: r.DayOfWeek,
		StartTime: start,
		EndTime:   end,
		Room:      r.Room,
		Building:  r.Building,
	}, nil
}

func (repo *scheduleRepository) CreateClass(ctx context.Context, cls schedule.Class) (schedule.Class, error) {
	cls.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO class (id, subject_id, teacher_id, day_of_week, start_time, end_time, room, building)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		cls.ID, cls.SubjectID, cls.TeacherID, cls.DayOfWeek, cls.StartTime.String(), cls.EndTime.String(), cls.Room, cls.Building,
	)
	if err != nil {
		return schedule.Class{}, err
	}
	return cls, nil
}

func (repo *scheduleRepository) GetClassByID(ctx context.Context, id string) (schedule.Class, error) {
	var row classRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM class WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return schedule.Class{}, schedule.ErrClassNotFound
		}
		return schedule.Class{}, err
	}
	return row.toClass()
}

func (repo *scheduleRepository) QueryClassesByDay(ctx context.Context, dayOfWeek int) ([]schedule.Class, error) {
	return repo.query(ctx, `SELECT * FROM class WHERE day_of_week = $1`, dayOfWeek)
}

func (repo *scheduleRepository) QueryClassesByTeacher(ctx context.Context, teacherID string) ([]schedule.Class, error) {
	return repo.query(ctx, `SELECT * FROM class WHERE teacher_id = $1`, teacherID)
}

func (repo *scheduleRepository) QueryAllClasses(ctx context.Context) ([]schedule.Class, error) {
	return repo.query(ctx, `SELECT * FROM class`)
}

func (repo *scheduleRepository) DeleteClass(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM class WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return schedule.ErrClassNotFound
	}
	return nil
}

func (repo *scheduleRepository) query(ctx context.Context, query string, args ...interface{}) ([]schedule.Class, error) {
	var rows []classRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	classes := make([]schedule.Class, 0, len(rows))
	for _, row := range rows {
		cls, err := row.toClass()
		if err != nil {
			return nil, err
		}
		classes = append(classes, cls)
	}
	return classes, nil
}
