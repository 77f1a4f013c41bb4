package notice

import (
	"context"
	"errors"
	"time"

	"github.com/edutrack/backend/core/user"
)

var (
	// errors
	ErrNotFound = errors.New("notice not found")
	ErrNotOwner = errors.New("notice belongs to another user")
)

type (
	Repository interface {
		CreateNotice(ctx context.Context, n Notice) (Notice, error)
		GetNoticeByID(ctx context.Context, id string) (Notice, error)
		// QueryAllNotices returns every notice, newest-created first.
		QueryAllNotices(ctx context.Context) ([]Notice, error)
		// QueryNoticesByAudience returns notices targeting the given audience
		// or "all", newest-created first.
		QueryNoticesByAudience(ctx context.Context, audience string) ([]Notice, error)
		DeleteNotice(ctx context.Context, id string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// AudienceForRole maps a role to the audience tag that targets it.
func AudienceForRole(role string) string {
	switch role {
	case user.RoleStudent:
		return AudienceStudents
	case user.RoleTeacher:
		return AudienceTeachers
	}
	return ""
}

// ForRole returns the notices a role may see, newest-created first.
// Admins see everything; other roles see their audience plus "all".
func (svc *Service) ForRole(ctx context.Context, role string) ([]Notice, error) {
	if role == user.RoleAdmin {
		return svc.repo.QueryAllNotices(ctx)
	}
	return svc.repo.QueryNoticesByAudience(ctx, AudienceForRole(role))
}

// Create publishes a notice authored by createdBy, regardless of any creator
// supplied in the request.
func (svc *Service) Create(ctx context.Context, createdBy string, nn NewNotice) (Notice, error) {
	n := Notice{
		Title:          nn.Title,
		Content:        nn.Content,
		Type:           nn.Type,
		Priority:       nn.Priority,
		TargetAudience: nn.TargetAudience,
		CreatedBy:      createdBy,
		CreatedAt:      time.Now().UTC(),
		ExpiresAt:      nn.ExpiresAt,
	}
	return svc.repo.CreateNotice(ctx, n)
}

// Delete removes a notice; allowed for admins and the notice's creator.
func (svc *Service) Delete(ctx context.Context, id, callerUserID string, isAdmin bool) error {
	n, err := svc.repo.GetNoticeByID(ctx, id)
	if err != nil {
		return err
	}
	if !isAdmin && n.CreatedBy != callerUserID {
		return ErrNotOwner
	}
	return svc.repo.DeleteNotice(ctx, id)
}
