package user

import "testing"

func TestUserPassword(t *testing.T) {
	var usr User
	if err := usr.SetPassword("s3cr3t!"); err != nil {
		t.Fatalf("SetPassword(): %v", err)
	}
	if len(usr.PasswordHash) == 0 {
		t.Fatal("SetPassword() left an empty hash")
	}
	if err := usr.CheckPassword("s3cr3t!"); err != nil {
		t.Errorf("CheckPassword() with the right password: %v", err)
	}
	if err := usr.CheckPassword("wrong"); err == nil {
		t.Error("CheckPassword() accepted a wrong password")
	}
}

func TestUserRoles(t *testing.T) {
	tests := []struct {
		role    string
		student bool
		teacher bool
		admin   bool
	}{
		{role: RoleStudent, student: true},
		{role: RoleTeacher, teacher: true},
		{role: RoleAdmin, admin: true},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			usr := User{Role: tt.role}
			if usr.IsStudent() != tt.student || usr.IsTeacher() != tt.teacher || usr.IsAdmin() != tt.admin {
				t.Errorf("role checks for %q = %v/%v/%v; want %v/%v/%v",
					tt.role, usr.IsStudent(), usr.IsTeacher(), usr.IsAdmin(), tt.student, tt.teacher, tt.admin)
			}
		})
	}
}

func TestUserFullName(t *testing.T) {
	usr := User{FirstName: "Sarah", LastName: "Johnson"}
	if got := usr.FullName(); got != "Sarah Johnson" {
		t.Errorf("FullName() = %q; want %q", got, "Sarah Johnson")
	}
}
