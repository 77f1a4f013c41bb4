package inmemdb

import (
	"context"

	"github.com/google/uuid"

	"github.com/edutrack/backend/core/school"
)

type schoolRepository struct {
	students *studentTable
	teachers *teacherTable
	subjects *subjectTable
}

func NewSchoolRepository(db *DB) school.Repository {
	return &schoolRepository{students: db.student, teachers: db.teacher, subjects: db.subject}
}

// Students

func (repo *schoolRepository) CreateStudent(_ context.Context, st school.Student) (school.Student, error) {
	repo.students.Lock()
	defer repo.students.Unlock()

	st.ID = uuid.New().String()
	repo.students.table[st.ID] = &st
	return st, nil
}

func (repo *schoolRepository) GetStudentByID(_ context.Context, id string) (school.Student, error) {
	repo.students.RLock()
	defer repo.students.RUnlock()

	if st, ok := repo.students.table[id]; ok {
		return *st, nil
	}
	return school.Student{}, school.ErrStudentNotFound
}

func (repo *schoolRepository) GetStudentByUserID(_ context.Context, userID string) (school.Student, error) {
	repo.students.RLock()
	defer repo.students.RUnlock()

	for _, st := range repo.students.table {
		if st.UserID == userID {
			return *st, nil
		}
	}
	return school.Student{}, school.ErrStudentNotFound
}

func (repo *schoolRepository) GetStudentByStudentID(_ context.Context, studentID string) (school.Student, error) {
	repo.students.RLock()
	defer repo.students.RUnlock()

	for _, st := range repo.students.table {
		if st.StudentID == studentID {
			return *st, nil
		}
	}
	return school.Student{}, school.ErrStudentNotFound
}

func (repo *schoolRepository) GetStudentByQRToken(_ context.Context, token string) (school.Student, error) {
	repo.students.RLock()
	defer repo.students.RUnlock()

	for _, st := range repo.students.table {
		if st.QRCode == token {
			return *st, nil
		}
	}
	return school.Student{}, school.ErrStudentNotFound
}

// Teachers

func (repo *schoolRepository) CreateTeacher(_ context.Context, t school.Teacher) (school.Teacher, error) {
	repo.teachers.Lock()
	defer repo.teachers.Unlock()

	t.ID = uuid.New().String()
	repo.teachers.table[t.ID] = &t
	return t, nil
}

func (repo *schoolRepository) GetTeacherByID(_ context.Context, id string) (school.Teacher, error) {
	repo.teachers.RLock()
	defer repo.teachers.RUnlock()

	if t, ok := repo.teachers.table[id]; ok {
		return *t, nil
	}
	return school.Teacher{}, school.ErrTeacherNotFound
}

func (repo *schoolRepository) GetTeacherByUserID(_ context.Context, userID string) (school.Teacher, error) {
	repo.teachers.RLock()
	defer repo.teachers.RUnlock()

	for _, t := range repo.teachers.table {
		if t.UserID == userID {
			return *t, nil
		}
	}
	return school.Teacher{}, school.ErrTeacherNotFound
}

// Subjects

func (repo *schoolRepository) CreateSubject(_ context.Context, sub school.Subject) (school.Subject, error) {
	repo.subjects.Lock()
	defer repo.subjects.Unlock()

	sub.ID = uuid.New().String()
	repo.subjects.table[sub.ID] = &sub
	return sub, nil
}

func (repo *schoolRepository) GetSubjectByID(_ context.Context, id string) (school.Subject, error) {
	repo.subjects.RLock()
	defer repo.subjects.RUnlock()

	if sub, ok := repo.subjects.table[id]; ok {
		return *sub, nil
	}
	return school.Subject{}, school.ErrSubjectNotFound
}

func (repo *schoolRepository) GetSubjectByCode(_ context.Context, code string) (school.Subject, error) {
	repo.subjects.RLock()
	defer repo.subjects.RUnlock()

	for _, sub := range repo.subjects.table {
		if sub.Code == code {
			return *sub, nil
		}
	}
	return school.Subject{}, school.ErrSubjectNotFound
}

func (repo *schoolRepository) QueryAllSubjects(_ context.Context) ([]school.Subject, error) {
	repo.subjects.RLock()
	defer repo.subjects.RUnlock()

	subjects := make([]school.Subject, 0, len(repo.subjects.table))
	for _, sub := range repo.subjects.table {
		subjects = append(subjects, *sub)
	}
	return subjects, nil
}
