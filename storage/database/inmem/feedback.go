package inmemdb

import (
	"context"

	"github.com/google/uuid"

	"github.com/edutrack/backend/core/feedback"
)

type feedbackRepository struct {
	db *feedbackTable
}

func NewFeedbackRepository(db *DB) feedback.Repository {
	return &feedbackRepository{db: db.feedback}
}

func (repo *feedbackRepository) CreateFeedback(_ context.Context, fb feedback.Feedback) (feedback.Feedback, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	fb.ID = uuid.New().String()
	repo.db.table[fb.ID] = &fb
	return fb, nil
}

func (repo *feedbackRepository) QueryFeedbackBySubject(_ context.Context, subjectID string) ([]feedback.Feedback, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	records := make([]feedback.Feedback, 0)
	for _, fb := range repo.db.table {
		if fb.SubjectID == subjectID {
			records = append(records, *fb)
		}
	}
	return records, nil
}
