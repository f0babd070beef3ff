package models

// Fixed placement fee. One product, one price: a single confirmed
// placement bills 450000 minor units ($4,500.00) in USD. Intentionally
// not configurable per invoice.
const (
	PlacementFeeCents    int64 = 450000
	PlacementFeeCurrency       = "usd"
)

var AllowedParishes = []string{
	"East Baton Rouge",
	"West Baton Rouge",
	"Ascension",
	"Livingston",
	"Iberville",
	"Pointe Coupee",
}

var RoleCategories = []string{
	"Medical Virtual Assistant",
	"Patient Intake Coordinator",
	"Medical Billing",
	"Medical Coding",
	"Prior Authorization Specialist",
	"Insurance Verification",
	"Scheduling Coordinator",
	"Front Desk (remote)",
	"Care Coordinator (administrative)",
}
