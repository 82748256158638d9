package gormdb

import (
	"context"
	"time"

	"github.com/oggyb/qr-message-service/internal/db"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GormDB struct {
	conn *gorm.DB
}

func New(dsn string) (*GormDB, error) {
	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, err
	}

	// Bound pool growth; a degraded database should fail fast, not queue forever.
	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return &GormDB{conn: conn}, nil
}

func (g *GormDB) Conn() any {
	return g.conn
}

// Ping checks database reachability through the underlying *sql.DB.
func (g *GormDB) Ping(ctx context.Context) error {
	sqlDB, err := g.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// verify it satisfies db.DB
var _ db.DB = (*GormDB)(nil)
