package app

import (
	"github.com/servimart/servimart/internal/domain"
	"github.com/spf13/cast"
)

func (a *Application) settingValue(category, key string) string {
	var cfgRow domain.SysConfig
	err := a.gormDB.Where("type = ? and name = ?", category, key).First(&cfgRow).Error
	if err != nil {
		return ""
	}
	return cfgRow.Value
}

// GetSettingsStringValue retrieves a string configuration value
func (a *Application) GetSettingsStringValue(category, key string) string {
	return a.settingValue(category, key)
}

// GetSettingsInt64Value retrieves an int64 configuration value
func (a *Application) GetSettingsInt64Value(category, key string) int64 {
	return cast.ToInt64(a.settingValue(category, key))
}

// GetSettingsBoolValue retrieves a boolean configuration value
func (a *Application) GetSettingsBoolValue(category, key string) bool {
	return cast.ToBool(a.settingValue(category, key))
}
