package service

import (
	"context"
	"time"

	"github.com/noah-isme/academy-admin-api/internal/models"
	"github.com/noah-isme/academy-admin-api/internal/store"
)

// NoticeSchema maps notices to their form draft. Author and views are set on
// creation and never edited through the form.
func NoticeSchema() Schema[models.Notice, models.NoticeDraft] {
	return Schema[models.Notice, models.NoticeDraft]{
		Resource: "notice",
		Defaults: func(time.Time) models.NoticeDraft {
			return models.NoticeDraft{
				Priority: models.NoticePriorityNormal,
				IsActive: true,
			}
		},
		Draft: models.Notice.Draft,
		Apply: func(rec models.Notice, draft models.NoticeDraft) models.Notice {
			return draft.Apply(rec)
		},
		Build: func(draft models.NoticeDraft, createdAt string) models.Notice {
			return draft.Apply(models.Notice{
				Author:    models.DefaultNoticeAuthor,
				CreatedAt: createdAt,
			})
		},
	}
}

// NoticeService manages homepage notices.
type NoticeService struct {
	*RecordManager[models.Notice, models.NoticeDraft]
}

// NewNoticeService constructs a NoticeService over st.
func NewNoticeService(st *store.Store[models.Notice], params RecordManagerParams) *NoticeService {
	return &NoticeService{RecordManager: NewRecordManager(st, NoticeSchema(), params)}
}

// List returns notices accepted by filter, newest first.
func (s *NoticeService) List(_ context.Context, filter models.NoticeFilter) []models.Notice {
	return s.store.List(filter.Match)
}

// Stats counts all and published notices.
func (s *NoticeService) Stats(_ context.Context) models.NoticeStats {
	return models.NoticeStats{
		Total:  s.store.Len(),
		Active: s.store.Count(func(n models.Notice) bool { return n.IsActive }),
	}
}

// Published returns the notices visible on the homepage.
func (s *NoticeService) Published(_ context.Context) []models.Notice {
	return s.store.List(func(n models.Notice) bool { return n.IsActive })
}

// Read returns a published notice and counts the view.
func (s *NoticeService) Read(_ context.Context, id int) (models.Notice, error) {
	active := false
	read, ok := s.store.Update(id, func(n models.Notice) models.Notice {
		if active = n.IsActive; active {
			n.Views++
		}
		return n
	})
	if !ok || !active {
		return models.Notice{}, s.notFound()
	}
	return read, nil
}
