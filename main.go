package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"soapbox/app/config"
	"soapbox/app/moderation"
	"soapbox/app/repositories"
	"soapbox/app/repositories/gormstore"
	"soapbox/app/routes"

	"github.com/dgraph-io/badger/v4"
	"github.com/sirupsen/logrus"
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
		fmt.Printf("soapbox version %s\n", cliVersion)
	case "serve":
		serve()
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	helpText := `Usage: soapbox <command>
Commands:
  help      Display this help message.
  version   Show version information.
  serve     Run the blog API server.
`
	fmt.Println(helpText)
}

// serve loads configuration, opens the configured store, builds the
// classification client and runs the HTTP server until interrupted.
func serve() {
	cfg := config.Load()

	postRepo, commentRepo, cleanup, err := openStore(cfg)
	if err != nil {
		logrus.Fatalf("Failed to open storage: %v", err)
	}
	defer cleanup()

	classifier := moderation.NewClient(moderation.Config{
		APIKey:   cfg.ModerationAPIKey,
		Endpoint: cfg.ModerationURL,
	})
	if cfg.ModerationAPIKey == "" {
		logrus.Warn("GEMINI_API_KEY not set, comment moderation disabled")
	}

	router := routes.Setup(postRepo, commentRepo, classifier)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logrus.Infof("soapbox listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("Shutdown error: %v", err)
	}
}

// openStore opens the repository pair for the configured storage driver.
func openStore(cfg config.Config) (repositories.PostRepository, repositories.CommentRepository, func(), error) {
	switch cfg.StorageDriver {
	case "badger":
		db, err := badger.Open(badger.DefaultOptions(cfg.BadgerPath).WithLogger(nil))
		if err != nil {
			return nil, nil, nil, err
		}
		return repositories.NewBadgerPostRepository(db),
			repositories.NewBadgerCommentRepository(db),
			func() { db.Close() },
			nil
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, nil, nil, fmt.Errorf("DATABASE_URL is required for the postgres driver")
		}
		db, err := gormstore.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		return gormstore.NewPostStore(db), gormstore.NewCommentStore(db), func() {}, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
