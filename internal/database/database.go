package database

import (
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// OpenDB creates and configures the MySQL connection pool for the given DSN.
// The DSN must carry parseTime=true so DATE/DATETIME columns scan into time.Time.
func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}
