package main

import (
	"context"
	"time"

	"github.com/edutrack/backend/core/coursework"
	"github.com/edutrack/backend/core/notice"
	"github.com/edutrack/backend/core/schedule"
	"github.com/edutrack/backend/core/school"
	"github.com/edutrack/backend/core/user"
)

// loadFixtures seeds a demo school into an empty store and returns the seeded
// subject's id. A store that already has users is left untouched.
func loadFixtures(ctx context.Context, repos *repositories, schoolSvc *school.Service) (string, error) {
	existing, err := repos.users.QueryAllUsers(ctx)
	if err != nil {
		return "", err
	}
	if len(existing) > 0 {
		return "", nil
	}

	admin, err := seedUser(ctx, repos, user.User{
		Username:  "admin",
		Role:      user.RoleAdmin,
		FirstName: "Admin",
		LastName:  "User",
		Email:     "admin@edutrack.com",
	}, "admin123")
	if err != nil {
		return "", err
	}

	teacherUsr, err := seedUser(ctx, repos, user.User{
		Username:  "sarah.johnson",
		Role:      user.RoleTeacher,
		FirstName: "Sarah",
		LastName:  "Johnson",
		Email:     "sarah.johnson@edutrack.com",
	}, "teacher123")
	if err != nil {
		return "", err
	}
	teacher, err := schoolSvc.CreateTeacher(ctx, school.NewTeacher{
		UserID:     teacherUsr.ID,
		TeacherID:  "T001",
		Department: "Computer Science",
		Subjects:   []string{"Data Structures", "Algorithms"},
	})
	if err != nil {
		return "", err
	}

	studentUsr, err := seedUser(ctx, repos, user.User{
		Username:  "rahul.sharma",
		Role:      user.RoleStudent,
		FirstName: "Rahul",
		LastName:  "Sharma",
		Email:     "rahul.sharma@student.edutrack.com",
	}, "student123")
	if err != nil {
		return "", err
	}
	if _, err = schoolSvc.CreateStudent(ctx, school.NewStudent{
		UserID:    studentUsr.ID,
		StudentID: "CS2021001",
		Program:   "B.Tech Computer Science",
		Year:      3,
		Semester:  6,
	}); err != nil {
		return "", err
	}

	subject, err := schoolSvc.CreateSubject(ctx, school.NewSubject{
		Name:       "Data Structures & Algorithms",
		Code:       "CS301",
		Credits:    4,
		Department: "Computer Science",
	})
	if err != nil {
		return "", err
	}

	start, _ := schedule.ParseTimeOfDay("10:30")
	end, _ := schedule.ParseTimeOfDay("12:00")
	if _, err = repos.schedule.CreateClass(ctx, schedule.Class{
		SubjectID: subject.ID,
		TeacherID: teacher.ID,
		DayOfWeek: 1, // Monday
		StartTime: start,
		EndTime:   end,
		Room:      "204",
		Building:  "Science Block",
	}); err != nil {
		return "", err
	}

	now := time.Now().UTC()
	maxMarks := 100
	if _, err = repos.coursework.CreateAssignment(ctx, coursework.Assignment{
		Title:       "Binary Tree Implementation",
		Description: "Implement a binary search tree with insert, delete, and search operations",
		SubjectID:   subject.ID,
		TeacherID:   teacher.ID,
		DueDate:     now.Add(24 * time.Hour),
		MaxMarks:    &maxMarks,
		Attachments: []string{},
		CreatedAt:   now,
	}); err != nil {
		return "", err
	}

	expiresAt := now.Add(7 * 24 * time.Hour)
	if _, err = repos.notices.CreateNotice(ctx, notice.Notice{
		Title:          "Mid-term Exams Schedule",
		Content:        "Exams starting from March 25th. Check detailed schedule on portal.",
		Type:           notice.TypeExam,
		Priority:       notice.PriorityHigh,
		TargetAudience: []string{notice.AudienceStudents},
		CreatedBy:      admin.ID,
		CreatedAt:      now.Add(-2 * time.Hour),
		ExpiresAt:      &expiresAt,
	}); err != nil {
		return "", err
	}

	return subject.ID, nil
}

func seedUser(ctx context.Context, repos *repositories, usr user.User, pwd string) (user.User, error) {
	if err := usr.SetPassword(pwd); err != nil {
		return user.User{}, err
	}
	usr.CreatedAt = time.Now().UTC()
	return repos.users.CreateUser(ctx, usr)
}
