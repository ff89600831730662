package export

import (
	"fmt"

	"pannel_backoffice/internal/models"
)

// Per-entity table layouts. Column order matches the on-screen listings.

func PanelsSpec() TableSpec[models.Panel] {
	return TableSpec[models.Panel]{
		Title:    "Liste des panneaux",
		Filename: "liste_panneaux.pdf",
		Columns: []Column[models.Panel]{
			{Header: "Type", Value: func(p models.Panel) string { return p.TypePannel.Type }},
			{Header: "Groupe", Value: func(p models.Panel) string { return p.GroupPannel.Name }},
			{Header: "Surface", Width: 18, Value: func(p models.Panel) string { return p.Surface }},
			{Header: "Ville", Value: func(p models.Panel) string { return p.City.Name }},
			{Header: "Commune", Value: func(p models.Panel) string { return p.City.Commune.Name }},
			{Header: "Pays", Value: func(p models.Panel) string { return p.City.Commune.Country.Name }},
			{Header: "Faces", Width: 14, Value: func(p models.Panel) string { return fmt.Sprintf("%d", p.FaceNumber) }},
			{Header: "Sens", Width: 22, Value: func(p models.Panel) string { return p.Sense }},
		},
	}
}

func CitiesSpec() TableSpec[models.City] {
	return TableSpec[models.City]{
		Title:    "Liste des villes",
		Filename: "liste_villes.pdf",
		Columns: []Column[models.City]{
			{Header: "Nom", Value: func(c models.City) string { return c.Name }},
			{Header: "Commune", Value: func(c models.City) string { return c.Commune.Name }},
			{Header: "Pays", Value: func(c models.City) string { return c.Commune.Country.Name }},
		},
	}
}

func CommunesSpec() TableSpec[models.Commune] {
	return TableSpec[models.Commune]{
		Title:    "Liste des communes",
		Filename: "liste_communes.pdf",
		Columns: []Column[models.Commune]{
			{Header: "Nom", Value: func(c models.Commune) string { return c.Name }},
			{Header: "Pays", Value: func(c models.Commune) string { return c.Country.Name }},
		},
	}
}

func CountriesSpec() TableSpec[models.Country] {
	return TableSpec[models.Country]{
		Title:    "Liste des pays",
		Filename: "liste_pays.pdf",
		Columns: []Column[models.Country]{
			{Header: "Nom", Value: func(c models.Country) string { return c.Name }},
		},
	}
}

func PanelTypesSpec() TableSpec[models.PanelType] {
	return TableSpec[models.PanelType]{
		Title:    "Liste des types de panneaux",
		Filename: "liste_types.pdf",
		Columns: []Column[models.PanelType]{
			{Header: "Type", Value: func(t models.PanelType) string { return t.Type }},
		},
	}
}

func GroupsSpec() TableSpec[models.PanelGroup] {
	return TableSpec[models.PanelGroup]{
		Title:    "Liste des groupes",
		Filename: "liste_groupes.pdf",
		Columns: []Column[models.PanelGroup]{
			{Header: "Nom", Value: func(g models.PanelGroup) string { return g.Name }},
			{Header: "Date de création", Value: func(g models.PanelGroup) string { return g.CreatedAt }},
		},
	}
}

func UsersSpec() TableSpec[models.User] {
	return TableSpec[models.User]{
		Title:    "Liste des utilisateurs",
		Filename: "liste_utilisateurs.pdf",
		Columns: []Column[models.User]{
			{Header: "Email", Value: func(u models.User) string { return u.Email }},
			{Header: "Nom", Value: func(u models.User) string { return u.LastName }},
			{Header: "Prénom", Value: func(u models.User) string { return u.FirstName }},
			{Header: "Rôle", Width: 25, Value: func(u models.User) string { return u.Role }},
			{Header: "Statut", Width: 25, Value: func(u models.User) string { return u.Status }},
		},
	}
}
