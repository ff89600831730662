package web

import "github.com/gofiber/fiber/v3"

// Dashboard widgets carry illustrative series until the reporting backend
// ships real aggregates.

type statCard struct {
	Title  string  `json:"title"`
	Value  string  `json:"value"`
	Change float64 `json:"change"` // percent versus last month
}

type monthPoint struct {
	Month     string `json:"month"`
	Campaigns int    `json:"campagnes"`
}

type occupancyPoint struct {
	Type string `json:"type"`
	Rate int    `json:"taux"` // percent
}

type alertItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Time        string `json:"time"`
}

// HandleDashboard serves the landing page figures.
func HandleDashboard(c fiber.Ctx) error {
	return HandleResponse(c, fiber.Map{
		"stats": []statCard{
			{Title: "Total Panneaux", Value: "254", Change: 5.2},
			{Title: "Campagnes Actives", Value: "37", Change: -2.1},
			{Title: "Nouveaux Clients", Value: "18", Change: 12.5},
			{Title: "Rapports Générés", Value: "126", Change: 8.3},
		},
		"campaigns": []monthPoint{
			{Month: "Jan", Campaigns: 12},
			{Month: "Fev", Campaigns: 19},
			{Month: "Mar", Campaigns: 15},
			{Month: "Avr", Campaigns: 22},
			{Month: "Mai", Campaigns: 18},
			{Month: "Juin", Campaigns: 25},
		},
		"occupancy": []occupancyPoint{
			{Type: "12m²", Rate: 65},
			{Type: "Big Size", Rate: 45},
			{Type: "Petits", Rate: 75},
			{Type: "Bornes", Rate: 55},
		},
		"alerts": []alertItem{
			{Title: "Campagne Imminent", Description: `La campagne "Total Guinée" se termine dans 2 semaines`, Time: "2 heures"},
			{Title: "Panneau Disponible", Description: "3 nouveaux panneaux 12m² libres à Conakry", Time: "5 heures"},
			{Title: "Nouveau Client", Description: "Orange Guinée a rejoint notre plateforme", Time: "1 jour"},
		},
	}, nil)
}
