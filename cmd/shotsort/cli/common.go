package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/felixgeelhaar/shotsort/internal/store"
)

func getStore() *store.SQLiteStore {
	home, _ := os.UserHomeDir()
	shotsortDir := filepath.Join(home, ".shotsort")
	s, err := store.NewSQLiteStore(filepath.Join(shotsortDir, "shotsort.db"))
	if err != nil {
		fmt.Printf("Failed to init store: %v\n", err)
		os.Exit(1)
	}
	return s
}
