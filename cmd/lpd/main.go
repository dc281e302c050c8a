package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/nikbrunner/lp/internal/server"
)

func main() {
	_ = godotenv.Load() // ignore error if .env not found

	addr := flag.String("addr", envOr("LPD_ADDR", ":8080"), "listen address")
	dbPath := flag.String("db", envOr("LPD_DB", ""), "sqlite database path (default ~/.local/share/lp/lp.db)")
	flag.Parse()

	path := *dbPath
	if path == "" {
		var err error
		path, err = defaultDBPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error resolving database path: %v\n", err)
			os.Exit(1)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating data directory: %v\n", err)
		os.Exit(1)
	}

	store, err := server.NewStore(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	logger := log.New(os.Stderr, "lpd ", log.LstdFlags)
	srv := server.NewServer(store, logger)

	logger.Printf("serving on %s (db %s)", *addr, path)
	if err := http.ListenAndServe(*addr, srv.Routes()); err != nil {
		logger.Fatal(err)
	}
}

// defaultDBPath returns ~/.local/share/lp/lp.db.
func defaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "lp", "lp.db"), nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
