package sqlxrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/edutrack/backend/core/feedback"
)

type feedbackRepository struct {
	db *sqlx.DB
}

func NewFeedbackRepository(db *sqlx.DB) feedback.Repository {
	return &feedbackRepository{db: db}
}

type feedbackRow struct {
	ID        string    `db:"id"`
	StudentID string    `db:"student_id"`
	SubjectID string    `db:"subject_id"`
	TeacherID string    `db:"teacher_id"`
	Type      string    `db:"type"`
	Rating    int       `db:"rating"`
	Comments  string    `db:"comments"`
	Anonymous bool      `db:"anonymous"`
	CreatedAt time.Time `db:"created_at"`
}

func (r feedbackRow) toFeedback() feedback.Feedback {
	return feedback.Feedback{
		ID:        r.ID,
		StudentID: r.StudentID,
		SubjectID: r.SubjectID,
		TeacherID: r.TeacherID,
		Type:      r.Type,
		Rating:    r.Rating,
		Comments:  r.Comments,
		Anonymous: r.Anonymous,
		CreatedAt: r.CreatedAt,
	}
}

func (repo *feedbackRepository) CreateFeedback(ctx context.Context, fb feedback.Feedback) (feedback.Feedback, error) {
	fb.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO feedback (id, student_id, subject_id, teacher_id, type, rating, comments, anonymous, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		fb.ID, fb.StudentID, fb.SubjectID, fb.TeacherID, fb.Type, fb.Rating, fb.Comments, fb.Anonymous, fb.CreatedAt,
	)
	if err != nil {
		return feedback.Feedback{}, err
	}
	return fb, nil
}

func (repo *feedbackRepository) QueryFeedbackBySubject(ctx context.Context, subjectID string) ([]feedback.Feedback, error) {
	var rows []feedbackRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT * FROM feedback WHERE subject_id = $1 ORDER BY created_at`, subjectID)
	if err != nil {
		return nil, err
	}
	records := make([]feedback.Feedback, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.toFeedback())
	}
	return records, nil
}
