package app

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/servimart/servimart/internal/domain"
	"go.uber.org/zap"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// initJob registers housekeeping tasks. None of them touch live order state
// beyond reads; the order path itself carries no background work.
func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	var err error
	_, err = a.sched.AddFunc("@daily", func() {
		retention := a.GetSettingsInt64Value("orders", "oprlog_retention_days")
		if retention <= 0 {
			retention = 365
		}
		a.gormDB.
			Where("opt_time < ?", time.Now().Add(-time.Hour*24*time.Duration(retention))).
			Delete(domain.SysOprLog{})
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	_, err = a.sched.AddFunc("@hourly", a.logOrderSummary)
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}
}

// logOrderSummary emits per-status order counts, a cheap health signal for
// operators watching the logs.
func (a *Application) logOrderSummary() {
	type statusCount struct {
		Status string
		Count  int64
	}
	var rows []statusCount
	if err := a.gormDB.Model(&domain.Order{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		zap.L().Error("order summary query failed", zap.Error(err))
		return
	}

	fields := make([]zap.Field, 0, len(rows))
	for _, row := range rows {
		fields = append(fields, zap.Int64(row.Status, row.Count))
	}
	zap.L().Info("order summary", fields...)
}
