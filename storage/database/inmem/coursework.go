package inmemdb

import (
	"context"

	"github.com/google/uuid"

	"github.com/edutrack/backend/core/coursework"
)

type courseworkRepository struct {
	assignments *assignmentTable
	submissions *submissionTable
}

func NewCourseworkRepository(db *DB) coursework.Repository {
	return &courseworkRepository{assignments: db.assignment, submissions: db.submission}
}

// Assignments

func (repo *courseworkRepository) CreateAssignment(_ context.Context, a coursework.Assignment) (coursework.Assignment, error) {
	repo.assignments.Lock()
	defer repo.assignments.Unlock()

	a.ID = uuid.New().String()
	repo.assignments.table[a.ID] = &a
	return a, nil
}

func (repo *courseworkRepository) GetAssignmentByID(_ context.Context, id string) (coursework.Assignment, error) {
	repo.assignments.RLock()
	defer repo.assignments.RUnlock()

	if a, ok := repo.assignments.table[id]; ok {
		return *a, nil
	}
	return coursework.Assignment{}, coursework.ErrAssignmentNotFound
}

func (repo *courseworkRepository) QueryAssignmentsBySubject(_ context.Context, subjectID string) ([]coursework.Assignment, error) {
	repo.assignments.RLock()
	defer repo.assignments.RUnlock()

	assignments := make([]coursework.Assignment, 0)
	for _, a := range repo.assignments.table {
		if a.SubjectID == subjectID {
			assignments = append(assignments, *a)
		}
	}
	return assignments, nil
}

func (repo *courseworkRepository) QueryAssignmentsByTeacher(_ context.Context, teacherID string) ([]coursework.Assignment, error) {
	repo.assignments.RLock()
	defer repo.assignments.RUnlock()

	assignments := make([]coursework.Assignment, 0)
	for _, a := range repo.assignments.table {
		if a.TeacherID == teacherID {
			assignments = append(assignments, *a)
		}
	}
	return assignments, nil
}

// Submissions

func (repo *courseworkRepository) CreateSubmission(_ context.Context, s coursework.Submission) (coursework.Submission, error) {
	repo.submissions.Lock()
	defer repo.submissions.Unlock()

	s.ID = uuid.New().String()
	repo.submissions.table[s.ID] = &s
	return s, nil
}

func (repo *courseworkRepository) GetSubmissionByID(_ context.Context, id string) (coursework.Submission, error) {
	repo.submissions.RLock()
	defer repo.submissions.RUnlock()

	if s, ok := repo.submissions.table[id]; ok {
		return *s, nil
	}
	return coursework.Submission{}, coursework.ErrSubmissionNotFound
}

func (repo *courseworkRepository) QuerySubmissionsByAssignment(_ context.Context, assignmentID string) ([]coursework.Submission, error) {
	repo.submissions.RLock()
	defer repo.submissions.RUnlock()

	submissions := make([]coursework.Submission, 0)
	for _, s := range repo.submissions.table {
		if s.AssignmentID == assignmentID {
			submissions = append(submissions, *s)
		}
	}
	return submissions, nil
}

func (repo *courseworkRepository) QuerySubmissionsByStudent(_ context.Context, studentID string) ([]coursework.Submission, error) {
	repo.submissions.RLock()
	defer repo.submissions.RUnlock()

	submissions := make([]coursework.Submission, 0)
	for _, s := range repo.submissions.table {
		if s.StudentID == studentID {
			submissions = append(submissions, *s)
		}
	}
	return submissions, nil
}

func (repo *courseworkRepository) UpdateSubmission(_ context.Context, s coursework.Submission) (coursework.Submission, error) {
	repo.submissions.Lock()
	defer repo.submissions.Unlock()

	if _, ok := repo.submissions.table[s.ID]; !ok {
		return coursework.Submission{}, coursework.ErrSubmissionNotFound
	}
	repo.submissions.table[s.ID] = &s
	return s, nil
}
