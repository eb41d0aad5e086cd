package pkg

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/SIS-2025/academic-records-service/internal/config"
)

// Databases bundles the three logical database connections.
type Databases struct {
	Users    *gorm.DB
	Profiles *gorm.DB
	Academic *gorm.DB
}

func InitDatabases(cfg *config.Config) (*Databases, error) {
	var logLevel logger.LogLevel
	if cfg.Environment == "production" {
		logLevel = logger.Info
	} else {
		logLevel = logger.Error
	}

	open := func(name, url string) (*gorm.DB, error) {
		db, err := gorm.Open(postgres.Open(url), &gorm.Config{
			Logger: logger.Default.LogMode(logLevel),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to %s database: %w", name, err)
		}
		return db, nil
	}

	usersDB, err := open("users", cfg.UsersDatabaseURL)
	if err != nil {
		return nil, err
	}

	profilesDB, err := open("profiles", cfg.ProfilesDatabaseURL)
	if err != nil {
		return nil, err
	}

	academicDB, err := open("academic", cfg.AcademicDatabaseURL)
	if err != nil {
		return nil, err
	}

	return &Databases{
		Users:    usersDB,
		Profiles: profilesDB,
		Academic: academicDB,
	}, nil
}

// Close closes the underlying sql connections of all three databases.
func (d *Databases) Close() {
	for _, db := range []*gorm.DB{d.Users, d.Profiles, d.Academic} {
		if db == nil {
			continue
		}
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}
}
