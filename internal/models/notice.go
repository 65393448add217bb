package models

// NoticePriority orders notices for display.
type NoticePriority string

const (
	NoticePriorityNormal    NoticePriority = "normal"
	NoticePriorityImportant NoticePriority = "important"
	NoticePriorityUrgent    NoticePriority = "urgent"
)

// Label returns the Korean display label. Unknown values read as normal.
func (p NoticePriority) Label() string {
	switch p {
	case NoticePriorityUrgent:
		return "긴급"
	case NoticePriorityImportant:
		return "중요"
	default:
		return "일반"
	}
}

// DefaultNoticeAuthor is stamped on notices created from the admin form.
const DefaultNoticeAuthor = "관리자"

// Notice is an announcement published on the academy homepage.
type Notice struct {
	ID        int            `json:"id"`
	Title     string         `json:"title"`
	Content   string         `json:"content"`
	Author    string         `json:"author"`
	CreatedAt string         `json:"created_at"`
	Priority  NoticePriority `json:"priority"`
	IsActive  bool           `json:"is_active"`
	Views     int            `json:"views"`
}

func (n Notice) RecordID() int { return n.ID }

func (n Notice) WithID(id int) Notice {
	n.ID = id
	return n
}

func (n Notice) Clone() Notice { return n }

// Draft copies the form-editable fields of the notice.
func (n Notice) Draft() NoticeDraft {
	return NoticeDraft{
		Title:    n.Title,
		Content:  n.Content,
		Priority: n.Priority,
		IsActive: n.IsActive,
	}
}

// NoticeDraft holds the fields editable through the notice form.
type NoticeDraft struct {
	Title    string         `json:"title" validate:"required"`
	Content  string         `json:"content" validate:"required"`
	Priority NoticePriority `json:"priority" validate:"required,oneof=normal important urgent"`
	IsActive bool           `json:"is_active"`
}

// Apply replaces the draft-tracked fields; author, views and createdAt stay.
func (d NoticeDraft) Apply(n Notice) Notice {
	n.Title = d.Title
	n.Content = d.Content
	n.Priority = d.Priority
	n.IsActive = d.IsActive
	return n
}

// NoticeFilter narrows the notice list.
type NoticeFilter struct {
	Search   string
	Priority string
	Active   *bool
}

// Match reports whether n passes the filter.
func (f NoticeFilter) Match(n Notice) bool {
	if !containsFold(f.Search, n.Title, n.Content) {
		return false
	}
	if !isWildcard(f.Priority) && string(n.Priority) != f.Priority {
		return false
	}
	return f.Active == nil || *f.Active == n.IsActive
}

// NoticeStats summarises the notice store.
type NoticeStats struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}
