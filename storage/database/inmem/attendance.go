package inmemdb

import (
	"context"

	"github.com/google/uuid"

	"github.com/edutrack/backend/core/attendance"
)

type attendanceRepository struct {
	db *attendanceTable
}

func NewAttendanceRepository(db *DB) attendance.Repository {
	return &attendanceRepository{db: db.attendance}
}

func dayKey(att attendance.Attendance) string {
	return att.StudentID + "|" + att.ClassID + "|" + att.Date.UTC().Format("2006-01-02")
}

// CreateAttendance inserts the record and its (student, class, day) index
// entry under a single write lock, so concurrent marks cannot both pass the
// duplicate check.
func (repo *attendanceRepository) CreateAttendance(_ context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	key := dayKey(att)
	if _, ok := repo.db.byDay[key]; ok {
		return attendance.Attendance{}, attendance.ErrAlreadyMarked
	}

	att.ID = uuid.New().String()
	repo.db.table[att.ID] = &att
	repo.db.byDay[key] = att.ID
	return att, nil
}

func (repo *attendanceRepository) QueryAttendanceByStudent(_ context.Context, studentID string) ([]attendance.Attendance, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	records := make([]attendance.Attendance, 0)
	for _, att := range repo.db.table {
		if att.StudentID == studentID {
			records = append(records, *att)
		}
	}
	return records, nil
}
