package database

import (
	"time"

	"github.com/rjnat/cursorpos-admin/prometheus"
	"gorm.io/gorm"
)

const startTimeKey = "metrics:start_time"

// instrumentCallbacks hooks the operation-duration histogram into every
// GORM operation, so repository queries are timed without per-call-site
// plumbing.
func instrumentCallbacks(db *gorm.DB) error {
	markStart := func(db *gorm.DB) {
		db.InstanceSet(startTimeKey, time.Now())
	}
	observe := func(operation string) func(*gorm.DB) {
		track := prometheus.TrackDBOperation(operation)
		return func(db *gorm.DB) {
			if v, ok := db.InstanceGet(startTimeKey); ok {
				if start, ok := v.(time.Time); ok {
					track(start)
				}
			}
		}
	}

	if err := db.Callback().Create().Before("gorm:create").Register("metrics:before_create", markStart); err != nil {
		return err
	}
	if err := db.Callback().Create().After("gorm:create").Register("metrics:after_create", observe("create")); err != nil {
		return err
	}
	if err := db.Callback().Query().Before("gorm:query").Register("metrics:before_query", markStart); err != nil {
		return err
	}
	if err := db.Callback().Query().After("gorm:query").Register("metrics:after_query", observe("query")); err != nil {
		return err
	}
	if err := db.Callback().Update().Before("gorm:update").Register("metrics:before_update", markStart); err != nil {
		return err
	}
	if err := db.Callback().Update().After("gorm:update").Register("metrics:after_update", observe("update")); err != nil {
		return err
	}
	if err := db.Callback().Delete().Before("gorm:delete").Register("metrics:before_delete", markStart); err != nil {
		return err
	}
	if err := db.Callback().Delete().After("gorm:delete").Register("metrics:after_delete", observe("delete")); err != nil {
		return err
	}
	if err := db.Callback().Row().Before("gorm:row").Register("metrics:before_row", markStart); err != nil {
		return err
	}
	if err := db.Callback().Row().After("gorm:row").Register("metrics:after_row", observe("row")); err != nil {
		return err
	}
	if err := db.Callback().Raw().Before("gorm:raw").Register("metrics:before_raw", markStart); err != nil {
		return err
	}
	return db.Callback().Raw().After("gorm:raw").Register("metrics:after_raw", observe("raw"))
}
