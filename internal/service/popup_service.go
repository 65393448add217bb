package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/noah-isme/academy-admin-api/internal/models"
	"github.com/noah-isme/academy-admin-api/internal/store"
)

// Popup defaults for a new creating form.
const (
	DefaultPopupWindowDays = 30
	DefaultPopupWidth      = 400
	DefaultPopupHeight     = 300
	DefaultPopupPriority   = 1
)

var errPopupWindow = errors.New("end date must not be before start date")

// PopupSchema maps popups to their form draft. A new popup runs from today
// for thirty days.
func PopupSchema() Schema[models.Popup, models.PopupDraft] {
	return Schema[models.Popup, models.PopupDraft]{
		Resource: "popup",
		Defaults: func(today time.Time) models.PopupDraft {
			return models.PopupDraft{
				StartDate: today.Format(models.DateLayout),
				EndDate:   today.AddDate(0, 0, DefaultPopupWindowDays).Format(models.DateLayout),
				Position:  models.PopupPositionCenter,
				IsActive:  true,
				Width:     DefaultPopupWidth,
				Height:    DefaultPopupHeight,
				Priority:  DefaultPopupPriority,
			}
		},
		Draft: models.Popup.Draft,
		Apply: func(rec models.Popup, draft models.PopupDraft) models.Popup {
			return draft.Apply(rec)
		},
		Build: func(draft models.PopupDraft, createdAt string) models.Popup {
			return draft.Apply(models.Popup{CreatedAt: createdAt})
		},
		Check: func(draft models.PopupDraft) error {
			start, err := models.ParseDate(draft.StartDate, time.UTC)
			if err != nil {
				return err
			}
			end, err := models.ParseDate(draft.EndDate, time.UTC)
			if err != nil {
				return err
			}
			if end.Before(start) {
				return errPopupWindow
			}
			return nil
		},
	}
}

// PopupService manages homepage popups. States are derived from the clock on
// every call.
type PopupService struct {
	*RecordManager[models.Popup, models.PopupDraft]
}

// NewPopupService constructs a PopupService over st.
func NewPopupService(st *store.Store[models.Popup], params RecordManagerParams) *PopupService {
	return &PopupService{RecordManager: NewRecordManager(st, PopupSchema(), params)}
}

// List returns popups accepted by filter with their current state.
func (s *PopupService) List(_ context.Context, filter models.PopupFilter) []models.PopupView {
	now := s.Now()
	popups := s.store.List(func(p models.Popup) bool {
		return filter.Match(p, now, s.loc)
	})
	return s.views(popups, now)
}

// View returns one popup with its current state.
func (s *PopupService) View(ctx context.Context, id int) (models.PopupView, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return models.PopupView{}, err
	}
	return p.View(s.Now(), s.loc), nil
}

// Stats counts all, running and scheduled popups at the current instant.
func (s *PopupService) Stats(_ context.Context) models.PopupStats {
	now := s.Now()
	stats := models.PopupStats{}
	for _, p := range s.store.List(nil) {
		stats.Total++
		switch p.StateAt(now, s.loc) {
		case models.PopupStateActive:
			stats.Active++
		case models.PopupStateScheduled:
			stats.Scheduled++
		}
	}
	return stats
}

// Toggle flips the activation flag of popup id.
func (s *PopupService) Toggle(ctx context.Context, id int) (models.PopupView, error) {
	p, err := s.Modify(ctx, id, OperationToggle, func(p models.Popup) models.Popup {
		p.IsActive = !p.IsActive
		return p
	})
	if err != nil {
		return models.PopupView{}, err
	}
	return p.View(s.Now(), s.loc), nil
}

// Showing returns the popups currently on display, lowest priority number
// first. Ties keep store order.
func (s *PopupService) Showing(_ context.Context) []models.PopupView {
	now := s.Now()
	popups := s.store.List(func(p models.Popup) bool {
		return p.StateAt(now, s.loc) == models.PopupStateActive
	})
	sort.SliceStable(popups, func(i, j int) bool {
		return popups[i].Priority < popups[j].Priority
	})
	return s.views(popups, now)
}

func (s *PopupService) views(popups []models.Popup, now time.Time) []models.PopupView {
	out := make([]models.PopupView, 0, len(popups))
	for _, p := range popups {
		out = append(out, p.View(now, s.loc))
	}
	return out
}
