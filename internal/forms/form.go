// Package forms models the modal create/edit dialogs: open/closed state,
// the values being edited, and field-level validation errors. A form only
// closes on successful submission, so a failed attempt never loses input.
package forms

import (
	"context"
	"errors"
	"sync"

	"github.com/go-playground/validator/v10"

	"pannel_backoffice/internal/common"
	"pannel_backoffice/internal/global"
)

// State is a consistent read of a form.
type State[P any] struct {
	Open        bool
	EditingID   string // empty when creating
	Values      P
	FieldErrors map[string]string
}

// Form drives one modal dialog for payload type P.
type Form[P any] struct {
	mu        sync.Mutex
	open      bool
	editingID string
	values    P
	fieldErrs map[string]string
}

// New returns a closed form.
func New[P any]() *Form[P] {
	return &Form[P]{}
}

// OpenCreate opens the form in creation mode with initial values.
func (f *Form[P]) OpenCreate(initial P) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.open = true
	f.editingID = ""
	f.values = initial
	f.fieldErrs = nil
}

// OpenEdit opens the form pre-filled with the record being edited.
func (f *Form[P]) OpenEdit(id string, values P) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.open = true
	f.editingID = id
	f.values = values
	f.fieldErrs = nil
}

// Close discards the form state.
func (f *Form[P]) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.open = false
	f.editingID = ""
	var zero P
	f.values = zero
	f.fieldErrs = nil
}

// SetValues replaces the edited values, keeping the form open.
func (f *Form[P]) SetValues(values P) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = values
}

// State returns a copy of the current state.
func (f *Form[P]) State() State[P] {
	f.mu.Lock()
	defer f.mu.Unlock()
	errs := make(map[string]string, len(f.fieldErrs))
	for k, v := range f.fieldErrs {
		errs[k] = v
	}
	return State[P]{Open: f.open, EditingID: f.editingID, Values: f.values, FieldErrors: errs}
}

// Submit validates the current values and hands them to do. The form
// closes only when do succeeds; on any failure it stays open with its
// input intact and, for validation failures, per-field errors set.
func (f *Form[P]) Submit(ctx context.Context, do func(ctx context.Context, id string, values P) error) error {
	f.mu.Lock()
	if !f.open {
		f.mu.Unlock()
		return common.NewError(common.ErrCodeInternal, common.MsgOperationFailed, common.StatusBadRequest, nil)
	}
	id := f.editingID
	values := f.values
	f.mu.Unlock()

	if err := global.Validate.Struct(values); err != nil {
		f.mu.Lock()
		f.fieldErrs = fieldErrors(err)
		f.mu.Unlock()
		e := common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, nil)
		e.Detail = common.MsgValidationError
		return e
	}

	if err := do(ctx, id, values); err != nil {
		return err
	}
	f.Close()
	return nil
}

// fieldErrors flattens validator output into a field -> message map.
func fieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"": common.MsgValidationError}
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = messageFor(fe)
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "Ce champ est obligatoire"
	case "email":
		return "Adresse email invalide"
	case "min":
		if fe.Kind().String() == "slice" {
			return "Sélectionnez au moins un panneau"
		}
		return "Valeur trop courte"
	case "date_iso":
		return "Date invalide (format AAAA-MM-JJ)"
	case "indication":
		return "Indicatif invalide (ex: +229)"
	case "gtefield":
		return "La date de fin doit être postérieure à la date de début"
	case "oneof":
		return "Valeur non autorisée"
	case "excluded_if":
		return "Champ réservé aux entreprises"
	default:
		return common.MsgValidationError
	}
}
