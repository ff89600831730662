package models

// Payloads are the request bodies the backend accepts for mutations.
// Validation tags run through the global validator before any request
// leaves the process, so a backend round trip is never spent on input
// the form already knows is bad.

// LoginPayload authenticates an operator.
type LoginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// PanelPayload creates or patches a panel.
type PanelPayload struct {
	TypePannelID  string `json:"type_pannel_id" validate:"required"`
	GroupPannelID string `json:"group_pannel_id" validate:"required"`
	Surface       string `json:"surface" validate:"required"`
	CityID        string `json:"city_id" validate:"required"`
	Quantity      int    `json:"quantity" validate:"required,min=1"`
	FaceNumber    int    `json:"face_number" validate:"required,min=1"`
	Sense         string `json:"sense" validate:"required"`
	Description   string `json:"description,omitempty"`
}

// CustomerPayload creates or updates a customer. The tagged union on Type
// drives the conditional field: entreprise_name is required for companies
// and must be absent for individuals.
type CustomerPayload struct {
	Fullname       string `json:"fullname" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Indication     string `json:"indication" validate:"required,indication"`
	Phone          string `json:"phone" validate:"required"`
	CityID         string `json:"city_id" validate:"required"`
	Type           string `json:"type" validate:"required,oneof=particulier entreprise"`
	EntrepriseName string `json:"entreprise_name,omitempty" validate:"required_if=Type entreprise,excluded_if=Type particulier"`
}

// CampaignPanelPayload is one panel line of a campaign submission.
type CampaignPanelPayload struct {
	Panel    string `json:"panel" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

// CampaignPayload creates or updates a campaign.
type CampaignPayload struct {
	CustomerID string                 `json:"customer_id" validate:"required"`
	StartDate  string                 `json:"start_date" validate:"required,date_iso"`
	EndDate    string                 `json:"end_date" validate:"required,date_iso"`
	Panel      []CampaignPanelPayload `json:"panel" validate:"required,min=1,dive"`
}

// CityPayload creates or updates a city.
type CityPayload struct {
	Name      string `json:"name" validate:"required"`
	CommuneID string `json:"commune_id" validate:"required"`
}

// CommunePayload creates or updates a commune.
type CommunePayload struct {
	Name      string `json:"name" validate:"required"`
	CountryID string `json:"country_id" validate:"required"`
}

// CountryPayload creates or updates a country.
type CountryPayload struct {
	Name string `json:"name" validate:"required"`
}

// PanelTypePayload creates or updates a panel type.
type PanelTypePayload struct {
	Type string `json:"type" validate:"required"`
}

// PanelGroupPayload creates or updates a panel group.
type PanelGroupPayload struct {
	Name string `json:"name" validate:"required"`
}

// AlertPayload creates or updates an alert recipient.
type AlertPayload struct {
	Email      string `json:"email" validate:"required,email"`
	Indication string `json:"indication" validate:"required,indication"`
	Phone      string `json:"phone" validate:"required"`
}

// RegisterPayload creates a back-office account.
type RegisterPayload struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Phone     string `json:"phone" validate:"required"`
	PhoneIndi string `json:"phone_indi" validate:"required,indication"`
	Role      string `json:"role" validate:"required,oneof=report create admin"`
	Password  string `json:"password" validate:"required,min=8"`
}

// UpdateUserPayload edits an account. The target id comes from the route,
// not the form, and the password is optional on update.
type UpdateUserPayload struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Phone     string `json:"phone" validate:"required"`
	PhoneIndi string `json:"phone_indi" validate:"required,indication"`
	Role      string `json:"role" validate:"required,oneof=report create admin"`
	Password  string `json:"password,omitempty" validate:"omitempty,min=8"`
}

// DeleteUserPayload removes an account. The backend re-checks the caller's
// password before honoring the delete.
type DeleteUserPayload struct {
	UserID   string `json:"user_id" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AlertThresholds are the alarm lead times of the settings page, in days.
type AlertThresholds struct {
	OneMonth int `json:"one_month" validate:"min=1"`
	TwoWeeks int `json:"two_weeks" validate:"min=1"`
}

// SettingsPayload is the settings page form. Settings live in the session
// only and are not persisted anywhere.
type SettingsPayload struct {
	EmailAlertRecipients []string        `json:"email_alert_recipients" validate:"dive,email"`
	AlertThresholds      AlertThresholds `json:"alert_thresholds"`
	Language             string          `json:"language" validate:"required,oneof=fr en"`
}

// DefaultSettings returns the values the settings page opens with.
func DefaultSettings() SettingsPayload {
	return SettingsPayload{
		EmailAlertRecipients: []string{},
		AlertThresholds:      AlertThresholds{OneMonth: 30, TwoWeeks: 14},
		Language:             "fr",
	}
}
