package feedback

import (
	"context"
	"time"
)

type (
	Repository interface {
		CreateFeedback(ctx context.Context, fb Feedback) (Feedback, error)
		QueryFeedbackBySubject(ctx context.Context, subjectID string) ([]Feedback, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create records feedback from studentID, regardless of any student supplied
// in the request. Anonymous defaults to true when omitted.
func (svc *Service) Create(ctx context.Context, studentID string, nf NewFeedback) (Feedback, error) {
	anonymous := true
	if nf.Anonymous != nil {
		anonymous = *nf.Anonymous
	}
	fb := Feedback{
		StudentID: studentID,
		SubjectID: nf.SubjectID,
		TeacherID: nf.TeacherID,
		Type:      nf.Type,
		Rating:    nf.Rating,
		Comments:  nf.Comments,
		Anonymous: anonymous,
		CreatedAt: time.Now().UTC(),
	}
	return svc.repo.CreateFeedback(ctx, fb)
}

func (svc *Service) BySubject(ctx context.Context, subjectID string) ([]Feedback, error) {
	return svc.repo.QueryFeedbackBySubject(ctx, subjectID)
}
