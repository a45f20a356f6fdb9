// Package db opens the shared Postgres schema through gorm with the pool
// limits and startup retry behaviour every service relies on.
package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	connectAttempts = 5
	connectDelay    = 2 * time.Second

	maxOpenConns = 10
	maxIdleConns = 5
)

// Open dials the database, retrying a fixed number of times so services can
// start before the database is ready. The pool is capped at 10 connections;
// requests beyond that wait for a free one.
func Open(dsn string) (*gorm.DB, error) {
	var lastErr error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			sqldb, derr := gdb.DB()
			if derr != nil {
				return nil, derr
			}
			sqldb.SetMaxOpenConns(maxOpenConns)
			sqldb.SetMaxIdleConns(maxIdleConns)
			sqldb.SetConnMaxLifetime(30 * time.Minute)

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			err = sqldb.PingContext(ctx)
			cancel()
			if err == nil {
				return gdb, nil
			}
			_ = sqldb.Close()
		}
		lastErr = err
		log.Printf("db connect attempt %d/%d failed: %v", attempt, connectAttempts, err)
		if attempt < connectAttempts {
			time.Sleep(connectDelay)
		}
	}
	return nil, fmt.Errorf("database unreachable after %d attempts: %w", connectAttempts, lastErr)
}

// Ping reports whether the pool can still reach the database. Health
// endpoints answer 503 when it fails.
func Ping(ctx context.Context, gdb *gorm.DB) error {
	sqldb, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqldb.PingContext(ctx)
}
