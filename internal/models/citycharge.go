package models

// CityChargeSettings holds the per-city billing toggles read by payment
// gating. A city with no row reads as all-false. The free-trial override
// in app settings suppresses all of these regardless of row contents.
type CityChargeSettings struct {
	City               string `json:"city" gorm:"primaryKey;size:100"`
	CustomerLeadCharge bool   `json:"customerLeadCharge" gorm:"not null;default:false"`
	OwnerLeadCharge    bool   `json:"ownerLeadCharge" gorm:"not null;default:false"`
	Subscription       bool   `json:"subscription" gorm:"not null;default:false"`
}

// TableName overrides the table name for CityChargeSettings
func (CityChargeSettings) TableName() string {
	return "city_charge_settings"
}
