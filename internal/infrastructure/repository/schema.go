package repository

import (
	"context"
	"embed"
	"fmt"

	"gorm.io/gorm"
)

//go:embed schema.sql
var schemaFS embed.FS

// ApplySchema creates every table the service uses. It is safe to run on
// every start.
func ApplySchema(ctx context.Context, db *gorm.DB) error {
	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("read schema.sql: %w", err)
	}
	if err := db.WithContext(ctx).Exec(string(schemaSQL)).Error; err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
