package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/edutrack/backend/core/notice"
)

type noticeRepository struct {
	db *sqlx.DB
}

func NewNoticeRepository(db *sqlx.DB) notice.Repository {
	return &noticeRepository{db: db}
}

type noticeRow struct {
	ID             string         `db:"id"`
	Title          string         `db:"title"`
	Content        string         `db:"content"`
	Type           string         `db:"type"`
	Priority       string         `db:"priority"`
	TargetAudience pq.StringArray `db:"target_audience"`
	CreatedBy      string         `db:"created_by"`
	CreatedAt      time.Time      `db:"created_at"`
	ExpiresAt      *time.Time     `db:"expires_at"`
}

func (r noticeRow) toNotice() notice.Notice {
	return notice.Notice{
		ID:             r.ID,
		Title:          r.Title,
		Content:        r.Content,
		Type:           r.Type,
		Priority:       r.Priority,
		TargetAudience: r.TargetAudience,
		CreatedBy:      r.CreatedBy,
		CreatedAt:      r.CreatedAt,
		ExpiresAt:      r.ExpiresAt,
	}
}

func (repo *noticeRepository) CreateNotice(ctx context.Context, n notice.Notice) (notice.Notice, error) {
	n.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO notice (id, title, content, type, priority, target_audience, created_by, created_at, expires_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		n.ID, n.Title, n.Content, n.Type, n.Priority, pq.StringArray(n.TargetAudience), n.CreatedBy, n.CreatedAt, n.ExpiresAt,
	)
	if err != nil {
		return notice.Notice{}, err
	}
	return n, nil
}

func (repo *noticeRepository) GetNoticeByID(ctx context.Context, id string) (notice.Notice, error) {
	var row noticeRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM notice WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return notice.Notice{}, notice.ErrNotFound
		}
		return notice.Notice{}, err
	}
	return row.toNotice(), nil
}

func (repo *noticeRepository) QueryAllNotices(ctx context.Context) ([]notice.Notice, error) {
	return repo.query(ctx, `SELECT * FROM notice ORDER BY created_at DESC`)
}

func (repo *noticeRepository) QueryNoticesByAudience(ctx context.Context, audience string) ([]notice.Notice, error) {
	return repo.query(ctx,
		`SELECT * FROM notice WHERE target_audience && $1 ORDER BY created_at DESC`,
		pq.StringArray{audience, notice.AudienceAll})
}

func (repo *noticeRepository) DeleteNotice(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM notice WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return notice.ErrNotFound
	}
	return nil
}

func (repo *noticeRepository) query(ctx context.Context, query string, args ...interface{}) ([]notice.Notice, error) {
	var rows []noticeRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	notices := make([]notice.Notice, 0, len(rows))
	for _, row := range rows {
		notices = append(notices, row.toNotice())
	}
	return notices, nil
}
