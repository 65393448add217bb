package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/academy-admin-api/internal/form"
	"github.com/noah-isme/academy-admin-api/internal/models"
	"github.com/noah-isme/academy-admin-api/internal/store"
	appErrors "github.com/noah-isme/academy-admin-api/pkg/errors"
)

// Clock returns the current instant. Services take one so tests can pin "today".
type Clock func() time.Time

// Mutation operations reported to the mutation recorder.
const (
	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"
	OperationToggle = "toggle"
)

type mutationRecorder interface {
	RecordMutation(resource, operation string)
}

// Schema describes how one resource maps between its record and its draft.
type Schema[T store.Record[T], D any] struct {
	// Resource is the singular name used in messages and metrics.
	Resource string
	// Defaults builds the draft of a fresh creating form. today is formatted
	// in the configured location.
	Defaults func(today time.Time) D
	// Draft copies the editable fields of an existing record.
	Draft func(rec T) D
	// Apply replaces the draft-tracked fields of an existing record.
	Apply func(rec T, draft D) T
	// Build creates a new record from a draft, stamping derived fields.
	Build func(draft D, createdAt string) T
	// Check runs cross-field rules the struct tags cannot express.
	Check func(draft D) error
	// Toggles exposes the multi-select fields of the draft by name.
	Toggles map[string]func(draft *D) *[]string
}

// RecordManager runs the shared CRUD and form lifecycle of one resource.
type RecordManager[T store.Record[T], D any] struct {
	store     *store.Store[T]
	forms     *form.Registry[D]
	schema    Schema[T, D]
	validator *validator.Validate
	logger    *zap.Logger
	metrics   mutationRecorder
	clock     Clock
	loc       *time.Location
}

// RecordManagerParams groups constructor dependencies.
type RecordManagerParams struct {
	Validator *validator.Validate
	Logger    *zap.Logger
	Metrics   mutationRecorder
	Clock     Clock
	Location  *time.Location
}

// NewRecordManager constructs a RecordManager over st.
func NewRecordManager[T store.Record[T], D any](st *store.Store[T], schema Schema[T, D], params RecordManagerParams) *RecordManager[T, D] {
	if params.Validator == nil {
		params.Validator = validator.New()
	}
	if params.Logger == nil {
		params.Logger = zap.NewNop()
	}
	if params.Clock == nil {
		params.Clock = time.Now
	}
	if params.Location == nil {
		params.Location = time.UTC
	}
	if st == nil {
		st = store.New[T]()
	}
	return &RecordManager[T, D]{
		store:     st,
		forms:     form.NewRegistry[D](),
		schema:    schema,
		validator: params.Validator,
		logger:    params.Logger,
		metrics:   params.Metrics,
		clock:     params.Clock,
		loc:       params.Location,
	}
}

// Now returns the current instant in the configured location.
func (m *RecordManager[T, D]) Now() time.Time {
	return m.clock().In(m.loc)
}

// Location returns the configured location.
func (m *RecordManager[T, D]) Location() *time.Location {
	return m.loc
}

// Store exposes the underlying record store.
func (m *RecordManager[T, D]) Store() *store.Store[T] {
	return m.store
}

// Get returns the record with the given id.
func (m *RecordManager[T, D]) Get(_ context.Context, id int) (T, error) {
	rec, ok := m.store.Get(id)
	if !ok {
		return rec, m.notFound()
	}
	return rec, nil
}

// Create validates draft and stores a new record.
func (m *RecordManager[T, D]) Create(_ context.Context, draft D) (T, error) {
	if err := m.validate(draft); err != nil {
		var zero T
		return zero, err
	}
	created := m.store.Create(m.schema.Build(draft, models.FormatDate(m.clock(), m.loc)))
	m.recordMutation(OperationCreate)
	m.logger.Info(m.schema.Resource+" created", zap.Int("id", created.RecordID()))
	return created, nil
}

// Update validates draft and replaces the draft-tracked fields of record id.
// The store is left untouched when id does not exist.
func (m *RecordManager[T, D]) Update(_ context.Context, id int, draft D) (T, error) {
	if err := m.validate(draft); err != nil {
		var zero T
		return zero, err
	}
	updated, ok := m.store.Update(id, func(rec T) T {
		return m.schema.Apply(rec, draft)
	})
	if !ok {
		return updated, m.notFound()
	}
	m.recordMutation(OperationUpdate)
	m.logger.Info(m.schema.Resource+" updated", zap.Int("id", id))
	return updated, nil
}

// Modify applies fn to record id without going through the form draft.
func (m *RecordManager[T, D]) Modify(_ context.Context, id int, operation string, fn func(T) T) (T, error) {
	updated, ok := m.store.Update(id, fn)
	if !ok {
		return updated, m.notFound()
	}
	m.recordMutation(operation)
	return updated, nil
}

// Delete removes record id once confirmed. Deleting an absent id is a no-op.
func (m *RecordManager[T, D]) Delete(_ context.Context, id int, confirmed bool) error {
	if !confirmed {
		return appErrors.Clone(appErrors.ErrConfirmationRequired, fmt.Sprintf("deleting a %s requires confirmation", m.schema.Resource))
	}
	if m.store.Delete(id) {
		m.recordMutation(OperationDelete)
		m.logger.Info(m.schema.Resource+" deleted", zap.Int("id", id))
	}
	return nil
}

// OpenCreate opens a creating form with default values for owner, replacing
// any form already open.
func (m *RecordManager[T, D]) OpenCreate(owner string) form.Form[D] {
	f := form.Creating(m.schema.Defaults(m.Now()))
	m.forms.Put(owner, f)
	return f
}

// OpenEdit opens an editing form for record id prefilled with its fields.
func (m *RecordManager[T, D]) OpenEdit(owner string, id int) (form.Form[D], error) {
	rec, ok := m.store.Get(id)
	if !ok {
		return form.Closed[D](), m.notFound()
	}
	f := form.Editing(id, m.schema.Draft(rec))
	m.forms.Put(owner, f)
	return f, nil
}

// Form returns owner's current form.
func (m *RecordManager[T, D]) Form(owner string) form.Form[D] {
	return m.forms.Get(owner)
}

// EditDraft replaces the draft of owner's open form.
func (m *RecordManager[T, D]) EditDraft(owner string, draft D) (form.Form[D], error) {
	f, ok := m.forms.Modify(owner, func(d *D) { *d = draft })
	if !ok {
		return f, m.formClosed()
	}
	return f, nil
}

// ToggleOption flips value in the multi-select field named field.
func (m *RecordManager[T, D]) ToggleOption(owner, field, value string) (form.Form[D], error) {
	accessor, ok := m.schema.Toggles[field]
	if !ok {
		return form.Closed[D](), appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s form has no multi-select field %q", m.schema.Resource, field))
	}
	if value == "" {
		return form.Closed[D](), appErrors.Clone(appErrors.ErrValidation, "toggle value is required")
	}
	f, ok := m.forms.Modify(owner, func(d *D) {
		values := accessor(d)
		*values = form.Toggle(*values, value)
	})
	if !ok {
		return f, m.formClosed()
	}
	return f, nil
}

// Submit validates owner's draft, then creates or updates accordingly and
// closes the form. A draft failing validation leaves the form open. The form
// is taken out of the registry first so concurrent submits persist it once.
func (m *RecordManager[T, D]) Submit(ctx context.Context, owner string) (T, error) {
	var zero T
	f := m.forms.Take(owner)
	if !f.Open() {
		return zero, m.formClosed()
	}
	if err := m.validate(*f.Draft); err != nil {
		m.forms.Put(owner, f)
		return zero, err
	}

	var (
		rec T
		err error
	)
	switch f.Mode {
	case form.ModeEditing:
		rec, err = m.Update(ctx, f.TargetID, *f.Draft)
	default:
		rec, err = m.Create(ctx, *f.Draft)
	}
	return rec, err
}

// Cancel discards owner's form.
func (m *RecordManager[T, D]) Cancel(owner string) {
	m.forms.Close(owner)
}

func (m *RecordManager[T, D]) validate(draft D) error {
	if err := m.validator.Struct(draft); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, fmt.Sprintf("invalid %s payload", m.schema.Resource))
	}
	if m.schema.Check != nil {
		if err := m.schema.Check(draft); err != nil {
			return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
		}
	}
	return nil
}

func (m *RecordManager[T, D]) recordMutation(operation string) {
	if m.metrics != nil {
		m.metrics.RecordMutation(m.schema.Resource, operation)
	}
}

func (m *RecordManager[T, D]) notFound() error {
	return appErrors.Clone(appErrors.ErrNotFound, m.schema.Resource+" not found")
}

func (m *RecordManager[T, D]) formClosed() error {
	return appErrors.Clone(appErrors.ErrFormClosed, fmt.Sprintf("no %s form is open", m.schema.Resource))
}
