// Package db opens the MySQL connection shared by all repositories.
package db

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// NewMySQL opens a GORM handle on the fruitseason schema. The DSN must carry
// parseTime=True; order and cart timestamps are read back as time.Time.
func NewMySQL(dsn string) (*gorm.DB, error) {
	gormDB, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open mysql connection: %w", err)
	}
	return gormDB, nil
}
