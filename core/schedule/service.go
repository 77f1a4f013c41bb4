package schedule

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/edutrack/backend/core/school"
	"github.com/edutrack/backend/core/user"
)

var (
	NowFunc = time.Now // mockable

	// errors
	ErrClassNotFound = errors.New("class not found")
)

type (
	Repository interface {
		CreateClass(ctx context.Context, cls Class) (Class, error)
		GetClassByID(ctx context.Context, id string) (Class, error)
		QueryClassesByDay(ctx context.Context, dayOfWeek int) ([]Class, error)
		QueryClassesByTeacher(ctx context.Context, teacherID string) ([]Class, error)
		QueryAllClasses(ctx context.Context) ([]Class, error)
		DeleteClass(ctx context.Context, id string) error
	}

	// SchoolDirectory resolves subject and teacher references for enrichment.
	SchoolDirectory interface {
		GetSubjectByID(ctx context.Context, id string) (school.Subject, error)
		GetTeacherByID(ctx context.Context, id string) (school.Teacher, error)
	}

	UserDirectory interface {
		GetByID(ctx context.Context, id string) (user.User, error)
	}

	Service struct {
		repo   Repository
		school SchoolDirectory
		users  UserDirectory
	}
)

func NewService(repo Repository, schoolDir SchoolDirectory, users UserDirectory) *Service {
	return &Service{repo: repo, school: schoolDir, users: users}
}

// TeacherInfo is the synthesized teacher descriptor embedded in timetable
// entries: display name from the teacher's bound User plus the human-readable
// teacher ID.
type TeacherInfo struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// TimetableEntry is a Class enriched for the timetable view.
// Unresolvable references embed as null rather than failing the lookup.
type TimetableEntry struct {
	Class
	Subject *school.Subject `json:"subject"`
	Teacher *TeacherInfo    `json:"teacher"`
}

// ManagedClass is a Class enriched for the admin/teacher management view.
type ManagedClass struct {
	Class
	Subject *school.Subject `json:"subject"`
}

// TodayClasses returns the current weekday's classes, earliest start first.
func (svc *Service) TodayClasses(ctx context.Context) ([]TimetableEntry, error) {
	today := int(NowFunc().Weekday())
	classes, err := svc.repo.QueryClassesByDay(ctx, today)
	if err != nil {
		return nil, err
	}
	sortByStart(classes)

	entries := make([]TimetableEntry, 0, len(classes))
	for _, cls := range classes {
		entries = append(entries, svc.enrich(ctx, cls))
	}
	return entries, nil
}

// NextClass returns the chronologically earliest class of today whose start
// time is strictly after now. ok is false when no class remains today; that
// is a success case, not a failure.
func (svc *Service) NextClass(ctx context.Context) (TimetableEntry, bool, error) {
	now := NowFunc()
	nowTod := TimeOfDayFrom(now)

	classes, err := svc.repo.QueryClassesByDay(ctx, int(now.Weekday()))
	if err != nil {
		return TimetableEntry{}, false, err
	}
	sortByStart(classes)

	for _, cls := range classes {
		if cls.StartTime.After(nowTod) {
			return svc.enrich(ctx, cls), true, nil
		}
	}
	return TimetableEntry{}, false, nil
}

// ClassesForTeacher returns the classes owned by the given teacher.
func (svc *Service) ClassesForTeacher(ctx context.Context, teacherID string) ([]ManagedClass, error) {
	classes, err := svc.repo.QueryClassesByTeacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	return svc.manage(ctx, classes), nil
}

// AllClasses returns every class across all seven weekdays.
func (svc *Service) AllClasses(ctx context.Context) ([]ManagedClass, error) {
	classes, err := svc.repo.QueryAllClasses(ctx)
	if err != nil {
		return nil, err
	}
	return svc.manage(ctx, classes), nil
}

func (svc *Service) Create(ctx context.Context, nc NewClass) (Class, error) {
	start, err := ParseTimeOfDay(nc.StartTime)
	if err != nil {
		return Class{}, err
	}
	end, err := ParseTimeOfDay(nc.EndTime)
	if err != nil {
		return Class{}, err
	}
	cls := Class{
		SubjectID: nc.SubjectID,
		TeacherID: nc.TeacherID,
		DayOfWeek: *nc.DayOfWeek,
		StartTime: start,
		EndTime:   end,
		Room:      nc.Room,
		Building:  nc.Building,
	}
	return svc.repo.CreateClass(ctx, cls)
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteClass(ctx, id)
}

func (svc *Service) enrich(ctx context.Context, cls Class) TimetableEntry {
	entry := TimetableEntry{Class: cls}
	if sub, err := svc.school.GetSubjectByID(ctx, cls.SubjectID); err == nil {
		entry.Subject = &sub
	}
	if t, err := svc.school.GetTeacherByID(ctx, cls.TeacherID); err == nil {
		if usr, err := svc.users.GetByID(ctx, t.UserID); err == nil {
			entry.Teacher = &TeacherInfo{Name: usr.FullName(), ID: t.TeacherID}
		}
	}
	return entry
}

func (svc *Service) manage(ctx context.Context, classes []Class) []ManagedClass {
	sortByStart(classes)
	managed := make([]ManagedClass, 0, len(classes))
	for _, cls := range classes {
		mc := ManagedClass{Class: cls}
		if sub, err := svc.school.GetSubjectByID(ctx, cls.SubjectID); err == nil {
			mc.Subject = &sub
		}
		managed = append(managed, mc)
	}
	return managed
}

func sortByStart(classes []Class) {
	sort.SliceStable(classes, func(i, j int) bool {
		if classes[i].DayOfWeek != classes[j].DayOfWeek {
			return classes[i].DayOfWeek < classes[j].DayOfWeek
		}
		return classes[i].StartTime < classes[j].StartTime
	})
}
