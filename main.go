package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"bulletin/app/moderation"
	"bulletin/app/storage"
	"bulletin/config"
	"bulletin/routes"

	"github.com/dgraph-io/badger/v4"
)

const cliVersion = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("bulletin version %s\n", cliVersion)
	case "serve":
		serve()
	case "seed":
		seed()
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	helpText := `Usage: bulletin <command> [options]
Commands:
  help       Display this help message.
  version    Show version information.
  serve      Run the board API server (configured via environment variables).
  seed       Fill a running server with generated users, posts, and comments.
`
	fmt.Println(helpText)
}

// serve opens the Badger DB and starts the HTTP server with the full
// middleware and routing stack.
func serve() {
	cfg := config.Load()

	opts := badger.DefaultOptions(cfg.DBPath)
	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open Badger DB: %v", err)
	}
	defer db.Close()

	scorer := moderation.NewHTTPGateway(cfg.ModerationURL)

	blobs, err := storage.New(storage.Config{
		Endpoint:  cfg.MinioEndpoint,
		AccessKey: cfg.MinioAccessKey,
		SecretKey: cfg.MinioSecretKey,
		UseSSL:    cfg.MinioUseSSL,
		Bucket:    cfg.MinioBucket,
		PublicURL: cfg.MinioPublicURL,
	})
	if err != nil {
		log.Fatalf("Failed to connect to object storage: %v", err)
	}
	if err := blobs.EnsureBucket(context.Background()); err != nil {
		log.Fatalf("Failed to prepare image bucket: %v", err)
	}

	router := routes.Setup(db, scorer, blobs, cfg.StaticDir, cfg.CORSOrigin)

	addr := ":" + cfg.Port
	log.Printf("Starting board server on %s (db: %s)", addr, cfg.DBPath)
	if err := routes.StartServer(addr, router); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
