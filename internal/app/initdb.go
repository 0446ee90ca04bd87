package app

import (
	"errors"
	"strings"
	"time"

	"github.com/servimart/servimart/internal/accounts"
	"github.com/servimart/servimart/internal/domain"
	"github.com/servimart/servimart/pkg/common"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (a *Application) checkSuper() {
	const superUsername = "admin"
	const defaultPassword = "servimart"

	hasher := accounts.NewBcryptHasher()

	var admin domain.User
	err := a.gormDB.Where("username = ?", superUsername).First(&admin).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		hashed, herr := hasher.Hash(defaultPassword)
		if herr != nil {
			zap.L().Error("failed to hash default admin password", zap.Error(herr))
			return
		}
		if err := a.gormDB.Create(&domain.User{
			ID:        common.UUIDint64(),
			Username:  superUsername,
			Password:  hashed,
			Role:      domain.RoleAdmin,
			FullName:  "administrator",
			Email:     "N/A",
			Active:    true,
			Available: true,
			LastLogin: time.Now(),
		}).Error; err != nil {
			zap.L().Error("failed to create default admin", zap.Error(err))
		} else {
			zap.L().Info("initialized default admin account", zap.String("username", superUsername))
		}
		return
	case err != nil:
		zap.L().Error("failed to query default admin", zap.Error(err))
		return
	}

	resetRole := !strings.EqualFold(admin.Role, domain.RoleAdmin)
	resetActive := !admin.Active

	if !resetRole && !resetActive {
		return
	}

	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if resetRole {
		updates["role"] = domain.RoleAdmin
	}
	if resetActive {
		updates["active"] = true
	}

	if err := a.gormDB.Model(&domain.User{}).Where("id = ?", admin.ID).Updates(updates).Error; err != nil {
		zap.L().Error("failed to repair default admin account", zap.Error(err))
		return
	}

	zap.L().Warn("repaired default admin account",
		zap.String("username", superUsername),
		zap.Bool("roleReset", resetRole),
		zap.Bool("activeReset", resetActive))
}

// defaultSettings seeds the sys_config table with missing entries.
var defaultSettings = []domain.SysConfig{
	{Type: "orders", Name: "summary_interval_hours", Value: "24", Remark: "Interval of the order summary housekeeping log"},
	{Type: "orders", Name: "oprlog_retention_days", Value: "365", Remark: "Days to keep operation log entries"},
	{Type: "catalog", Name: "cache_ttl_seconds", Value: "60", Remark: "Catalog display cache TTL"},
}

func (a *Application) checkSettings() {
	for sortid, setting := range defaultSettings {
		var count int64
		a.gormDB.Model(&domain.SysConfig{}).
			Where("type = ? and name = ?", setting.Type, setting.Name).
			Count(&count)

		if count == 0 {
			setting.ID = common.UUIDint64()
			setting.Sort = sortid
			a.gormDB.Create(&setting)
			zap.L().Info("initialized config",
				zap.String("key", setting.Type+"."+setting.Name),
				zap.String("default", setting.Value))
		}
	}
}

// checkProducts initializes demo catalog rows
func (a *Application) checkProducts() {
	intp := func(v int) *int { return &v }
	defaultProducts := []domain.Product{
		{Name: "demo-widget-basic", Price: 9.99, Kind: domain.KindProduct, Category: "electronics", Stock: intp(100)},
		{Name: "demo-widget-pro", Price: 24.5, Kind: domain.KindProduct, Category: "electronics", Stock: intp(50)},
		{Name: "demo-cleaning-visit", Price: 199.0, Kind: domain.KindService, Category: "home-services"},
		{Name: "demo-addon-support", Price: 49.95, Kind: domain.KindService, Category: "support"},
	}

	for _, p := range defaultProducts {
		var count int64
		a.gormDB.Model(&domain.Product{}).Where("name = ?", p.Name).Count(&count)
		if count == 0 {
			p.ID = common.UUIDint64()
			p.Status = common.ENABLED
			p.CreatedAt = time.Now()
			p.UpdatedAt = time.Now()
			if err := a.gormDB.Create(&p).Error; err != nil {
				zap.L().Error("failed to create default product", zap.String("name", p.Name), zap.Error(err))
			} else {
				zap.L().Info("initialized default product", zap.String("name", p.Name))
			}
		}
	}
}
