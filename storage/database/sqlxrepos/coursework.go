package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/edutrack/backend/core/coursework"
)

type courseworkRepository struct {
	db *sqlx.DB
}

func NewCourseworkRepository(db *sqlx.DB) coursework.Repository {
	return &courseworkRepository{db: db}
}

type assignmentRow struct {
	ID          string         `db:"id"`
	Title       string         `db:"title"`
	Description string         `db:"description"`
	SubjectID   string         `db:"subject_id"`
	TeacherID   string         `db:"teacher_id"`
	DueDate     time.Time      `db:"due_date"`
	MaxMarks    sql.NullInt64  `db:"max_marks"`
	Attachments pq.StringArray `db:"attachments"`
	CreatedAt   time.Time      `db:"created_at"`
}

func (r assignmentRow) toAssignment() coursework.Assignment {
	return coursework.Assignment{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		SubjectID:   r.SubjectID,
		TeacherID:   r.TeacherID,
		DueDate:     r.DueDate,
		MaxMarks:    fromNullInt(r.MaxMarks),
		Attachments: r.Attachments,
		CreatedAt:   r.CreatedAt,
	}
}

type submissionRow struct {
	ID           string         `db:"id"`
	AssignmentID string         `db:"assignment_id"`
	StudentID    string         `db:"student_id"`
	Content      string         `db:"content"`
	Attachments  pq.StringArray `db:"attachments"`
	SubmittedAt  time.Time      `db:"submitted_at"`
	Marks        sql.NullInt64  `db:"marks"`
	Feedback     string         `db:"feedback"`
}

func (r submissionRow) toSubmission() coursework.Submission {
	return coursework.Submission{
		ID:           r.ID,
		AssignmentID: r.AssignmentID,
		StudentID:    r.StudentID,
		Content:      r.Content,
		Attachments:  r.Attachments,
		SubmittedAt:  r.SubmittedAt,
		Marks:        fromNullInt(r.Marks),
		Feedback:     r.Feedback,
	}
}

func fromNullInt(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

func toNullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

// Assignments

func (repo *courseworkRepository) CreateAssignment(ctx context.Context, a coursework.Assignment) (coursework.Assignment, error) {
	a.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO assignment (id, title, description, subject_id, teacher_id, due_date, max_marks, attachments, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		a.ID, a.Title, a.Description, a.SubjectID, a.TeacherID, a.DueDate, toNullInt(a.MaxMarks), pq.StringArray(a.Attachments), a.CreatedAt,
	)
	if err != nil {
		return coursework.Assignment{}, err
	}
	return a, nil
}

func (repo *courseworkRepository) GetAssignmentByID(ctx context.Context, id string) (coursework.Assignment, error) {
	var row assignmentRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM assignment WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return coursework.Assignment{}, coursework.ErrAssignmentNotFound
		}
		return coursework.Assignment{}, err
	}
	return row.toAssignment(), nil
}

func (repo *courseworkRepository) QueryAssignmentsBySubject(ctx context.Context, subjectID string) ([]coursework.Assignment, error) {
	return repo.queryAssignments(ctx, `SELECT * FROM assignment WHERE subject_id = $1 ORDER BY created_at`, subjectID)
}

func (repo *courseworkRepository) QueryAssignmentsByTeacher(ctx context.Context, teacherID string) ([]coursework.Assignment, error) {
	return repo.queryAssignments(ctx, `SELECT * FROM assignment WHERE teacher_id = $1 ORDER BY created_at`, teacherID)
}

func (repo *courseworkRepository) queryAssignments(ctx context.Context, query string, args ...interface{}) ([]coursework.Assignment, error) {
	var rows []assignmentRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	assignments := make([]coursework.Assignment, 0, len(rows))
	for _, row := range rows {
		assignments = append(assignments, row.toAssignment())
	}
	return assignments, nil
}

// Submissions

func (repo *courseworkRepository) CreateSubmission(ctx context.Context, s coursework.Submission) (coursework.Submission, error) {
	s.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO submission (id, assignment_id, student_id, content, attachments, submitted_at, marks, feedback)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		s.ID, s.AssignmentID, s.StudentID, s.Content, pq.StringArray(s.Attachments), s.SubmittedAt, toNullInt(s.Marks), s.Feedback,
	)
	if err != nil {
		return coursework.Submission{}, err
	}
	return s, nil
}

func (repo *courseworkRepository) GetSubmissionByID(ctx context.Context, id string) (coursework.Submission, error) {
	var row submissionRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM submission WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return coursework.Submission{}, coursework.ErrSubmissionNotFound
		}
		return coursework.Submission{}, err
	}
	return row.toSubmission(), nil
}

func (repo *courseworkRepository) QuerySubmissionsByAssignment(ctx context.Context, assignmentID string) ([]coursework.Submission, error) {
	return repo.querySubmissions(ctx, `SELECT * FROM submission WHERE assignment_id = $1 ORDER BY submitted_at`, assignmentID)
}

func (repo *courseworkRepository) QuerySubmissionsByStudent(ctx context.Context, studentID string) ([]coursework.Submission, error) {
	return repo.querySubmissions(ctx, `SELECT * FROM submission WHERE student_id = $1 ORDER BY submitted_at`, studentID)
}

func (repo *courseworkRepository) querySubmissions(ctx context.Context, query string, args ...interface{}) ([]coursework.Submission, error) {
	var rows []submissionRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	submissions := make([]coursework.Submission, 0, len(rows))
	for _, row := range rows {
		submissions = append(submissions, row.toSubmission())
	}
	return submissions, nil
}

func (repo *courseworkRepository) UpdateSubmission(ctx context.Context, s coursework.Submission) (coursework.Submission, error) {
	res, err := repo.db.ExecContext(ctx,
		`UPDATE submission SET content = $2, attachments = $3, marks = $4, feedback = $5 WHERE id = $1`,
		s.ID, s.Content, pq.StringArray(s.Attachments), toNullInt(s.Marks), s.Feedback,
	)
	if err != nil {
		return coursework.Submission{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return coursework.Submission{}, coursework.ErrSubmissionNotFound
	}
	return s, nil
}
