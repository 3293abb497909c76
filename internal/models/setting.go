package models

// SettingFreeTrialMode is the key of the global payment override. When its
// value is "true", every checkout is waived regardless of city charges.
const SettingFreeTrialMode = "free_trial_mode"

// AppSetting is a process-wide key/value flag with defined read/write
// entry points in the settings service.
type AppSetting struct {
	Key       string `json:"key" gorm:"primaryKey;size:64"`
	Value     string `json:"value" gorm:"size:255;not null"`
	UpdatedAt int64  `json:"updatedAt" gorm:"autoUpdateTime:nano"`
}

// TableName overrides the table name for AppSetting
func (AppSetting) TableName() string {
	return "app_settings"
}
