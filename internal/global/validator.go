// Package global holds process-wide singletons shared across layers: the
// struct validator used by the form controllers.
package global

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"

	"pannel_backoffice/internal/models"
)

// Validate is the shared validator instance. Call InitValidator before use.
var Validate *validator.Validate

// InitValidator creates the validator and registers the custom rules the
// form payloads rely on.
func InitValidator() {
	Validate = validator.New()

	_ = Validate.RegisterValidation("date_iso", validateDateISO)
	_ = Validate.RegisterValidation("indication", validateIndication)
	Validate.RegisterStructValidation(validateCampaignDates, models.CampaignPayload{})
}

// validateCampaignDates rejects campaigns that end before they start. Both
// fields are already known to be well-formed dates when this runs.
func validateCampaignDates(sl validator.StructLevel) {
	payload := sl.Current().Interface().(models.CampaignPayload)
	start, errStart := time.Parse("2006-01-02", payload.StartDate)
	end, errEnd := time.Parse("2006-01-02", payload.EndDate)
	if errStart != nil || errEnd != nil {
		return
	}
	if end.Before(start) {
		sl.ReportError(payload.EndDate, "EndDate", "end_date", "gtefield", "StartDate")
	}
}

// validateDateISO accepts dates in the backend wire format (YYYY-MM-DD).
func validateDateISO(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // emptiness is the concern of `required`
	}
	_, err := time.Parse("2006-01-02", value)
	return err == nil
}

var indicationRe = regexp.MustCompile(`^\+\d{1,4}$`)

// validateIndication accepts phone country codes like "+229".
func validateIndication(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return indicationRe.MatchString(value)
}
