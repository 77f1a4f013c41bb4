package inmemdb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/edutrack/backend/core/notice"
)

type noticeRepository struct {
	db *noticeTable
}

func NewNoticeRepository(db *DB) notice.Repository {
	return &noticeRepository{db: db.notice}
}

func (repo *noticeRepository) CreateNotice(_ context.Context, n notice.Notice) (notice.Notice, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	n.ID = uuid.New().String()
	repo.db.table[n.ID] = &n
	return n, nil
}

func (repo *noticeRepository) GetNoticeByID(_ context.Context, id string) (notice.Notice, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if n, ok := repo.db.table[id]; ok {
		return *n, nil
	}
	return notice.Notice{}, notice.ErrNotFound
}

func (repo *noticeRepository) QueryAllNotices(_ context.Context) ([]notice.Notice, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	notices := make([]notice.Notice, 0, len(repo.db.table))
	for _, n := range repo.db.table {
		notices = append(notices, *n)
	}
	sortNewestFirst(notices)
	return notices, nil
}

func (repo *noticeRepository) QueryNoticesByAudience(_ context.Context, audience string) ([]notice.Notice, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	notices := make([]notice.Notice, 0)
	for _, n := range repo.db.table {
		if targets(n.TargetAudience, audience) {
			notices = append(notices, *n)
		}
	}
	sortNewestFirst(notices)
	return notices, nil
}

func (repo *noticeRepository) DeleteNotice(_ context.Context, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return notice.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}

func targets(audiences []string, audience string) bool {
	for _, a := range audiences {
		if a == audience || a == notice.AudienceAll {
			return true
		}
	}
	return false
}

func sortNewestFirst(notices []notice.Notice) {
	sort.SliceStable(notices, func(i, j int) bool {
		return notices[i].CreatedAt.After(notices[j].CreatedAt)
	})
}
