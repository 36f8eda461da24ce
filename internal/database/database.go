package database

import (
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/viper"
)

func Connect() (*sqlx.DB, error) {
	dsn := viper.GetString("DB_DSN")
	return sqlx.Connect("pgx", dsn)
}

// Migrate applies the schema. Idempotent; meant for dev and test databases,
// production schemas are managed externally.
func Migrate(db *sqlx.DB) error {
	_, err := db.Exec(schema)
	return err
}
