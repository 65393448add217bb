// Package form tracks the per-session create/edit drafts of the admin forms.
package form

import "sync"

// Mode is the lifecycle state of a form.
type Mode string

const (
	ModeClosed   Mode = "closed"
	ModeCreating Mode = "creating"
	ModeEditing  Mode = "editing"
)

// Form is a draft being edited. TargetID is only set while editing.
type Form[D any] struct {
	Mode     Mode `json:"mode"`
	TargetID int  `json:"target_id,omitempty"`
	Draft    *D   `json:"draft,omitempty"`
}

// Open reports whether the form is creating or editing.
func (f Form[D]) Open() bool {
	return f.Mode == ModeCreating || f.Mode == ModeEditing
}

// Creating returns a form opened for a new record.
func Creating[D any](draft D) Form[D] {
	return Form[D]{Mode: ModeCreating, Draft: &draft}
}

// Editing returns a form opened for the record with the given id.
func Editing[D any](id int, draft D) Form[D] {
	return Form[D]{Mode: ModeEditing, TargetID: id, Draft: &draft}
}

// Closed returns the idle form.
func Closed[D any]() Form[D] {
	return Form[D]{Mode: ModeClosed}
}

// Registry keeps one form per owner, usually a session id.
type Registry[D any] struct {
	mu    sync.Mutex
	forms map[string]Form[D]
}

// NewRegistry returns an empty registry.
func NewRegistry[D any]() *Registry[D] {
	return &Registry[D]{forms: make(map[string]Form[D])}
}

// Get returns the owner's form, closed when none is open.
func (r *Registry[D]) Get(owner string) Form[D] {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.forms[owner]
	if !ok {
		return Closed[D]()
	}
	return f
}

// Put replaces the owner's form. Putting a closed form drops the entry.
func (r *Registry[D]) Put(owner string, f Form[D]) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !f.Open() {
		delete(r.forms, owner)
		return
	}
	r.forms[owner] = f
}

// Modify applies fn to the owner's open draft. It returns false without
// calling fn when no form is open.
func (r *Registry[D]) Modify(owner string, fn func(*D)) (Form[D], bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.forms[owner]
	if !ok || !f.Open() {
		return Closed[D](), false
	}
	draft := *f.Draft
	fn(&draft)
	f.Draft = &draft
	r.forms[owner] = f
	return f, true
}

// Take removes and returns the owner's form.
func (r *Registry[D]) Take(owner string) Form[D] {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.forms[owner]
	if !ok {
		return Closed[D]()
	}
	delete(r.forms, owner)
	return f
}

// Close discards the owner's form.
func (r *Registry[D]) Close(owner string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.forms, owner)
}

// Toggle flips membership of value in a multi-select field. Existing order is
// kept and new values are appended.
func Toggle(values []string, value string) []string {
	out := make([]string, 0, len(values)+1)
	found := false
	for _, v := range values {
		if v == value {
			found = true
			continue
		}
		out = append(out, v)
	}
	if !found {
		out = append(out, value)
	}
	return out
}
