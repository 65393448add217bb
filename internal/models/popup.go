package models

import "time"

// PopupPosition is where the popup is anchored on the homepage.
type PopupPosition string

const (
	PopupPositionCenter      PopupPosition = "center"
	PopupPositionTopLeft     PopupPosition = "top-left"
	PopupPositionTopRight    PopupPosition = "top-right"
	PopupPositionBottomLeft  PopupPosition = "bottom-left"
	PopupPositionBottomRight PopupPosition = "bottom-right"
)

// Label returns the Korean display label. Unknown values read as center.
func (p PopupPosition) Label() string {
	switch p {
	case PopupPositionTopLeft:
		return "좌상단"
	case PopupPositionTopRight:
		return "우상단"
	case PopupPositionBottomLeft:
		return "좌하단"
	case PopupPositionBottomRight:
		return "우하단"
	default:
		return "중앙"
	}
}

// PopupState is the display state derived from the flag and the date window.
type PopupState string

const (
	PopupStateActive    PopupState = "active"
	PopupStateScheduled PopupState = "scheduled"
	PopupStateInactive  PopupState = "inactive"
)

// Label returns the Korean display label.
func (s PopupState) Label() string {
	switch s {
	case PopupStateActive:
		return "진행중"
	case PopupStateScheduled:
		return "예약"
	default:
		return "중지됨"
	}
}

// Popup is a homepage overlay shown during its date window.
type Popup struct {
	ID        int           `json:"id"`
	Title     string        `json:"title"`
	Content   string        `json:"content"`
	ImageURL  string        `json:"image_url,omitempty"`
	LinkURL   string        `json:"link_url,omitempty"`
	StartDate string        `json:"start_date"`
	EndDate   string        `json:"end_date"`
	Position  PopupPosition `json:"position"`
	IsActive  bool          `json:"is_active"`
	ShowOnce  bool          `json:"show_once"`
	Width     int           `json:"width"`
	Height    int           `json:"height"`
	Priority  int           `json:"priority"`
	CreatedAt string        `json:"created_at"`
}

func (p Popup) RecordID() int { return p.ID }

func (p Popup) WithID(id int) Popup {
	p.ID = id
	return p
}

func (p Popup) Clone() Popup { return p }

// Window returns the inclusive display window: from the first instant of the
// start day to the last instant of the end day in loc.
func (p Popup) Window(loc *time.Location) (time.Time, time.Time, error) {
	start, err := ParseDate(p.StartDate, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := ParseDate(p.EndDate, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
}

// StateAt classifies the popup at instant now. The result depends on the
// wall clock and must not be cached.
func (p Popup) StateAt(now time.Time, loc *time.Location) PopupState {
	if !p.IsActive {
		return PopupStateInactive
	}
	start, end, err := p.Window(loc)
	if err != nil {
		return PopupStateInactive
	}
	switch {
	case now.Before(start):
		return PopupStateScheduled
	case now.After(end):
		return PopupStateInactive
	default:
		return PopupStateActive
	}
}

// View attaches the derived state for API responses.
func (p Popup) View(now time.Time, loc *time.Location) PopupView {
	state := p.StateAt(now, loc)
	return PopupView{
		Popup:         p,
		State:         state,
		StateLabel:    state.Label(),
		PositionLabel: p.Position.Label(),
	}
}

// PopupView is a popup with its derived display state.
type PopupView struct {
	Popup
	State         PopupState `json:"state"`
	StateLabel    string     `json:"state_label"`
	PositionLabel string     `json:"position_label"`
}

// Draft copies the form-editable fields of the popup.
func (p Popup) Draft() PopupDraft {
	return PopupDraft{
		Title:     p.Title,
		Content:   p.Content,
		ImageURL:  p.ImageURL,
		LinkURL:   p.LinkURL,
		StartDate: p.StartDate,
		EndDate:   p.EndDate,
		Position:  p.Position,
		IsActive:  p.IsActive,
		ShowOnce:  p.ShowOnce,
		Width:     p.Width,
		Height:    p.Height,
		Priority:  p.Priority,
	}
}

// PopupDraft holds the fields editable through the popup form.
type PopupDraft struct {
	Title     string        `json:"title" validate:"required"`
	Content   string        `json:"content" validate:"required"`
	ImageURL  string        `json:"image_url" validate:"omitempty,url"`
	LinkURL   string        `json:"link_url"`
	StartDate string        `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string        `json:"end_date" validate:"required,datetime=2006-01-02"`
	Position  PopupPosition `json:"position" validate:"required,oneof=center top-left top-right bottom-left bottom-right"`
	IsActive  bool          `json:"is_active"`
	ShowOnce  bool          `json:"show_once"`
	Width     int           `json:"width" validate:"gte=200,lte=800"`
	Height    int           `json:"height" validate:"gte=150,lte=600"`
	Priority  int           `json:"priority" validate:"gte=1,lte=10"`
}

// Apply replaces the draft-tracked fields of p.
func (d PopupDraft) Apply(p Popup) Popup {
	p.Title = d.Title
	p.Content = d.Content
	p.ImageURL = d.ImageURL
	p.LinkURL = d.LinkURL
	p.StartDate = d.StartDate
	p.EndDate = d.EndDate
	p.Position = d.Position
	p.IsActive = d.IsActive
	p.ShowOnce = d.ShowOnce
	p.Width = d.Width
	p.Height = d.Height
	p.Priority = d.Priority
	return p
}

// PopupFilter narrows the popup list. State filters on the derived state.
type PopupFilter struct {
	Search string
	State  string
}

// Match reports whether p passes the filter at instant now.
func (f PopupFilter) Match(p Popup, now time.Time, loc *time.Location) bool {
	if !containsFold(f.Search, p.Title, p.Content) {
		return false
	}
	return isWildcard(f.State) || string(p.StateAt(now, loc)) == f.State
}

// PopupStats summarises the popup store at a given instant.
type PopupStats struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Scheduled int `json:"scheduled"`
}
