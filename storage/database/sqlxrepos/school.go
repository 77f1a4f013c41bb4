package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/edutrack/backend/core/school"
)

type schoolRepository struct {
	db *sqlx.DB
}

func NewSchoolRepository(db *sqlx.DB) school.Repository {
	return &schoolRepository{db: db}
}

type studentRow struct {
	ID        string `db:"id"`
	UserID    string `db:"user_id"`
	StudentID string `db:"student_id"`
	Program   string `db:"program"`
	Year      int    `db:"year"`
	Semester  int    `db:"semester"`
	QRCode    string `db:"qr_code"`
}

func (r studentRow) toStudent() school.Student {
	return school.Student{
		ID:        r.ID,
		UserID:    r.UserID,
		StudentID: r.StudentID,
		Program:   r.Program,
		Year:      r.Year,
		Semester:  r.Semester,
		QRCode:    r.QRCode,
	}
}

type teacherRow struct {
	ID         string         `db:"id"`
	UserID     string         `db:"user_id"`
	TeacherID  string         `db:"teacher_id"`
	Department string         `db:"department"`
	Subjects   pq.StringArray `db:"subjects"`
}

func (r teacherRow) toTeacher() school.Teacher {
	return school.Teacher{
		ID:         r.ID,
		UserID:     r.UserID,
		TeacherID:  r.TeacherID,
		Department: r.Department,
		Subjects:   r.Subjects,
	}
}

// Students

func (repo *schoolRepository) CreateStudent(ctx context.Context, st school.Student) (school.Student, error) {
	st.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO student (id, user_id, student_id, program, year, semester, qr_code)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		st.ID, st.UserID, st.StudentID, st.Program, st.Year, st.Semester, st.QRCode,
	)
	if err != nil {
		return school.Student{}, err
	}
	return st, nil
}

func (repo *schoolRepository) GetStudentByID(ctx context.Context, id string) (school.Student, error) {
	return repo.getStudent(ctx, `SELECT * FROM student WHERE id = $1`, id)
}

func (repo *schoolRepository) GetStudentByUserID(ctx context.Context, userID string) (school.Student, error) {
	return repo.getStudent(ctx, `SELECT * FROM student WHERE user_id = $1`, userID)
}

func (repo *schoolRepository) GetStudentByStudentID(ctx context.Context, studentID string) (school.Student, error) {
	return repo.getStudent(ctx, `SELECT * FROM student WHERE student_id = $1`, studentID)
}

func (repo *schoolRepository) GetStudentByQRToken(ctx context.Context, token string) (school.Student, error) {
	return repo.getStudent(ctx, `SELECT * FROM student WHERE qr_code = $1`, token)
}

func (repo *schoolRepository) getStudent(ctx context.Context, query string, args ...interface{}) (school.Student, error) {
	var row studentRow
	if err := repo.db.GetContext(ctx, &row, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return school.Student{}, school.ErrStudentNotFound
		}
		return school.Student{}, err
	}
	return row.toStudent(), nil
}

// Teachers

func (repo *schoolRepository) CreateTeacher(ctx context.Context, t school.Teacher) (school.Teacher, error) {
	t.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO teacher (id, user_id, teacher_id, department, subjects)
		 VALUES ($1, $2, $3, $4, $5)`,
		t.ID, t.UserID, t.TeacherID, t.Department, pq.StringArray(t.Subjects),
	)
	if err != nil {
		return school.Teacher{}, err
	}
	return t, nil
}

func (repo *schoolRepository) GetTeacherByID(ctx context.Context, id string) (school.Teacher, error) {
	return repo.getTeacher(ctx, `SELECT * FROM teacher WHERE id = $1`, id)
}

func (repo *schoolRepository) GetTeacherByUserID(ctx context.Context, userID string) (school.Teacher, error) {
	return repo.getTeacher(ctx, `SELECT * FROM teacher WHERE user_id = $1`, userID)
}

func (repo *schoolRepository) getTeacher(ctx context.Context, query string, args ...interface{}) (school.Teacher, error) {
	var row teacherRow
	if err := repo.db.GetContext(ctx, &row, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return school.Teacher{}, school.ErrTeacherNotFound
		}
		return school.Teacher{}, err
	}
	return row.toTeacher(), nil
}

// Subjects

func (repo *schoolRepository) CreateSubject(ctx context.Context, sub school.Subject) (school.Subject, error) {
	sub.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO subject (id, name, code, credits, department)
		 VALUES ($1, $2, $3, $4, $5)`,
		sub.ID, sub.Name, sub.Code, sub.Credits, sub.Department,
	)
	if err != nil {
		return school.Subject{}, err
	}
	return sub, nil
}

func (repo *schoolRepository) GetSubjectByID(ctx context.Context, id string) (school.Subject, error) {
	return repo.getSubject(ctx, `SELECT * FROM subject WHERE id = $1`, id)
}

func (repo *schoolRepository) GetSubjectByCode(ctx context.Context, code string) (school.Subject, error) {
	return repo.getSubject(ctx, `SELECT * FROM subject WHERE code = $1`, code)
}

func (repo *schoolRepository) QueryAllSubjects(ctx context.Context) ([]school.Subject, error) {
	subjects := make([]school.Subject, 0)
	if err := repo.db.SelectContext(ctx, &subjects, `SELECT * FROM subject ORDER BY code`); err != nil {
		return nil, err
	}
	return subjects, nil
}

func (repo *schoolRepository) getSubject(ctx context.Context, query string, args ...interface{}) (school.Subject, error) {
	var sub school.Subject
	if err := repo.db.GetContext(ctx, &sub, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return school.Subject{}, school.ErrSubjectNotFound
		}
		return school.Subject{}, err
	}
	return sub, nil
}
