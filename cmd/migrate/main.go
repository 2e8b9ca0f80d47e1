// migrate creates or updates the database schema.
//
// Usage:
//
//	DB_DRIVER=sqlite DB_PATH=hms.db go run ./cmd/migrate
package main

import (
	"fmt"
	"os"

	"bitbucket.org/medfocus/hms_backend/config"
	"bitbucket.org/medfocus/hms_backend/models"
)

func main() {
	if err := config.ConnectDatabase(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect database: %v\n", err)
		os.Exit(1)
	}
	defer config.CloseDatabase()

	models.MigrateTable()
	fmt.Println("migration complete")
}
