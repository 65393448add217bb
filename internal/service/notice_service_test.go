package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/academy-admin-api/internal/fixtures"
	"github.com/noah-isme/academy-admin-api/internal/models"
	appErrors "github.com/noah-isme/academy-admin-api/pkg/errors"
)

func newSeededNoticeService(now time.Time) *NoticeService {
	return NewNoticeService(fixtures.NewStores(true).Notices, testParams(now))
}

func TestNoticeServiceCreateStampsAuthor(t *testing.T) {
	now := time.Date(2025, 1, 20, 9, 0, 0, 0, seoul)
	svc := newSeededNoticeService(now)

	opened := svc.OpenCreate("s")
	assert.Equal(t, models.NoticePriorityNormal, opened.Draft.Priority)
	assert.True(t, opened.Draft.IsActive)

	created, err := svc.Create(context.Background(), models.NoticeDraft{
		Title:    "설 연휴 휴원 안내",
		Content:  "설 연휴 기간 동안 휴원합니다.",
		Priority: models.NoticePriorityUrgent,
		IsActive: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, created.ID)
	assert.Equal(t, models.DefaultNoticeAuthor, created.Author)
	assert.Zero(t, created.Views)
	assert.Equal(t, "2025-01-20", created.CreatedAt)
}

func TestNoticeServiceUpdateKeepsViews(t *testing.T) {
	svc := newSeededNoticeService(time.Now())
	ctx := context.Background()

	updated, err := svc.Update(ctx, 1, models.NoticeDraft{
		Title:    "2025년 봄 학기 등록 안내 (수정)",
		Content:  "등록 기간이 연장되었습니다.",
		Priority: models.NoticePriorityImportant,
		IsActive: false,
	})
	require.NoError(t, err)
	assert.Equal(t, 156, updated.Views)
	assert.Equal(t, "2025-01-15", updated.CreatedAt)
	assert.Equal(t, models.DefaultNoticeAuthor, updated.Author)
	assert.False(t, updated.IsActive)
}

func TestNoticeServiceFilters(t *testing.T) {
	svc := newSeededNoticeService(time.Now())
	ctx := context.Background()
	active := true

	assert.Len(t, svc.List(ctx, models.NoticeFilter{Priority: "urgent"}), 1)
	assert.Len(t, svc.List(ctx, models.NoticeFilter{Active: &active}), 2)
	assert.Len(t, svc.List(ctx, models.NoticeFilter{Search: "특강"}), 1)
	assert.Equal(t, models.NoticeStats{Total: 3, Active: 2}, svc.Stats(ctx))
}

func TestNoticeServiceReadCountsViews(t *testing.T) {
	svc := newSeededNoticeService(time.Now())
	ctx := context.Background()

	read, err := svc.Read(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 90, read.Views)

	_, err = svc.Read(ctx, 3)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
	stored, err := svc.Get(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 234, stored.Views)

	assert.Len(t, svc.Published(ctx), 2)
}

func TestNoticeServiceReadCountsConcurrentViews(t *testing.T) {
	svc := newSeededNoticeService(time.Now())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Read(ctx, 2)
		}()
	}
	wg.Wait()

	stored, err := svc.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 139, stored.Views)

	draft := stored.Draft()
	draft.IsActive = false
	_, err = svc.Update(ctx, 2, draft)
	require.NoError(t, err)

	_, err = svc.Read(ctx, 2)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
	stored, err = svc.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 139, stored.Views)
}
