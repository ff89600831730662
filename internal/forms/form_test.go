package forms

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pannel_backoffice/internal/common"
	"pannel_backoffice/internal/global"
	"pannel_backoffice/internal/models"
)

func TestMain(m *testing.M) {
	global.InitValidator()
	m.Run()
}

func noop(ctx context.Context, id string, values models.CityPayload) error { return nil }

func TestSubmitValidPayloadClosesForm(t *testing.T) {
	f := New[models.CityPayload]()
	f.OpenCreate(models.CityPayload{Name: "Kandi", CommuneID: "c1"})

	require.NoError(t, f.Submit(context.Background(), noop))
	assert.False(t, f.State().Open)
}

func TestSubmitInvalidPayloadStaysOpenWithFieldErrors(t *testing.T) {
	f := New[models.CityPayload]()
	f.OpenCreate(models.CityPayload{Name: "Kandi"})

	err := f.Submit(context.Background(), noop)
	require.Error(t, err)

	state := f.State()
	assert.True(t, state.Open, "a failed submit must keep the dialog open")
	assert.Equal(t, "Kandi", state.Values.Name, "input must survive the failure")
	assert.Contains(t, state.FieldErrors, "CommuneID")
	assert.Equal(t, "Ce champ est obligatoire", state.FieldErrors["CommuneID"])
}

func TestSubmitBackendFailureKeepsInput(t *testing.T) {
	f := New[models.CityPayload]()
	f.OpenEdit("city-7", models.CityPayload{Name: "Parakou", CommuneID: "c2"})

	backendErr := common.NewError(common.ErrCodeBackend, common.MsgOperationFailed, common.StatusConflict, nil)
	var gotID string
	err := f.Submit(context.Background(), func(ctx context.Context, id string, v models.CityPayload) error {
		gotID = id
		return backendErr
	})
	require.ErrorIs(t, err, backendErr)
	assert.Equal(t, "city-7", gotID)

	state := f.State()
	assert.True(t, state.Open)
	assert.Equal(t, "Parakou", state.Values.Name)
	assert.Empty(t, state.FieldErrors, "backend failures are not field errors")
}

func TestCustomerEntrepriseRequiresCompanyName(t *testing.T) {
	f := New[models.CustomerPayload]()
	f.OpenCreate(models.CustomerPayload{
		Fullname:   "Awa Dossou",
		Email:      "awa@exemple.bj",
		Indication: "+229",
		Phone:      "97000000",
		CityID:     "c1",
		Type:       models.CustomerEntreprise,
	})

	err := f.Submit(context.Background(), func(ctx context.Context, id string, v models.CustomerPayload) error { return nil })
	require.Error(t, err)
	assert.Contains(t, f.State().FieldErrors, "EntrepriseName")
}

func TestCustomerParticulierRejectsCompanyName(t *testing.T) {
	f := New[models.CustomerPayload]()
	f.OpenCreate(models.CustomerPayload{
		Fullname:       "Awa Dossou",
		Email:          "awa@exemple.bj",
		Indication:     "+229",
		Phone:          "97000000",
		CityID:         "c1",
		Type:           models.CustomerParticulier,
		EntrepriseName: "SARL Quelconque",
	})

	err := f.Submit(context.Background(), func(ctx context.Context, id string, v models.CustomerPayload) error { return nil })
	require.Error(t, err)
	assert.Contains(t, f.State().FieldErrors, "EntrepriseName")
}

func TestCampaignEndBeforeStartRejected(t *testing.T) {
	f := New[models.CampaignPayload]()
	f.OpenCreate(models.CampaignPayload{
		CustomerID: "cust-1",
		StartDate:  "2026-09-10",
		EndDate:    "2026-09-01",
		Panel:      []models.CampaignPanelPayload{{Panel: "p1", Quantity: 2}},
	})

	err := f.Submit(context.Background(), func(ctx context.Context, id string, v models.CampaignPayload) error { return nil })
	require.Error(t, err)
	assert.Equal(t,
		"La date de fin doit être postérieure à la date de début",
		f.State().FieldErrors["EndDate"])
}

func TestCampaignNeedsAtLeastOnePanel(t *testing.T) {
	f := New[models.CampaignPayload]()
	f.OpenCreate(models.CampaignPayload{
		CustomerID: "cust-1",
		StartDate:  "2026-09-01",
		EndDate:    "2026-09-10",
	})

	err := f.Submit(context.Background(), func(ctx context.Context, id string, v models.CampaignPayload) error { return nil })
	require.Error(t, err)
	assert.Contains(t, f.State().FieldErrors, "Panel")
}

func TestSubmitOnClosedFormFails(t *testing.T) {
	f := New[models.CityPayload]()
	require.Error(t, f.Submit(context.Background(), noop))
}
