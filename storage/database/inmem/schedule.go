package inmemdb

import (
	"context"

	"github.com/google/uuid"

	"github.com/edutrack/backend/core/schedule"
)

type scheduleRepository struct {
	db *classTable
}

func NewScheduleRepository(db *DB) schedule.Repository {
	return &scheduleRepository{db: db.class}
}

func (repo *scheduleRepository) CreateClass(_ context.Context, cls schedule.Class) (schedule.Class, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	cls.ID = uuid.New().String()
	repo.db.table[cls.ID] = &cls
	return cls, nil
}

func (repo *scheduleRepository) GetClassByID(_ context.Context, id string) (schedule.Class, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if cls, ok := repo.db.table[id]; ok {
		return *cls, nil
	}
	return schedule.Class{}, schedule.ErrClassNotFound
}

func (repo *scheduleRepository) QueryClassesByDay(_ context.Context, dayOfWeek int) ([]schedule.Class, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	classes := make([]schedule.Class, 0)
	for _, cls := range repo.db.table {
		if cls.DayOfWeek == dayOfWeek {
			classes = append(classes, *cls)
		}
	}
	return classes, nil
}

func (repo *scheduleRepository) QueryClassesByTeacher(_ context.Context, teacherID string) ([]schedule.Class, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	classes := make([]schedule.Class, 0)
	for _, cls := range repo.db.table {
		if cls.TeacherID == teacherID {
			classes = append(classes, *cls)
		}
	}
	return classes, nil
}

func (repo *scheduleRepository) QueryAllClasses(_ context.Context) ([]schedule.Class, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	classes := make([]schedule.Class, 0, len(repo.db.table))
	for _, cls := range repo.db.table {
		classes = append(classes, *cls)
	}
	return classes, nil
}

func (repo *scheduleRepository) DeleteClass(_ context.Context, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return schedule.ErrClassNotFound
	}
	delete(repo.db.table, id)
	return nil
}
