package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/lmittmann/tint"

	"github.com/videoteca/backend/internal/auth"
	"github.com/videoteca/backend/internal/blob"
	"github.com/videoteca/backend/internal/catalog"
	"github.com/videoteca/backend/internal/config"
	"github.com/videoteca/backend/internal/db"
	"github.com/videoteca/backend/internal/ingest"
	"github.com/videoteca/backend/internal/media"
	"github.com/videoteca/backend/internal/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	logLevel := slog.LevelDebug
	if err = logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		fmt.Println("(warn) Invalid value for LOG_LEVEL environment variable")
	}

	logHandler := tint.NewHandler(os.Stderr, &tint.Options{
		Level: logLevel,
	})

	slog.SetDefault(slog.New(logHandler))

	if err = db.InitDB(cfg.DatabaseURL); err != nil {
		panic(err)
	}
	defer db.CloseDB()
	slog.Info("Database connection initialized")

	if err = db.Migrate(context.Background()); err != nil {
		panic(err)
	}

	if err = auth.InitJWT(cfg.JWTSecret); err != nil {
		panic(err)
	}

	var blobs blob.Store
	if cfg.Blob.Bucket != "" {
		blobs, err = blob.NewS3Store(context.Background(), blob.S3Config{
			Bucket:          cfg.Blob.Bucket,
			Region:          cfg.Blob.Region,
			AccessKeyID:     cfg.Blob.AccessKeyID,
			SecretAccessKey: cfg.Blob.SecretAccessKey,
		})
		if err != nil {
			panic(err)
		}
		slog.Info("Storing thumbnails in S3", slog.String("bucket", cfg.Blob.Bucket))
	} else {
		blobs = blob.NewFilesystemStore(cfg.Blob.Dir)
		slog.Info("Storing thumbnails on the filesystem", slog.String("dir", cfg.Blob.Dir))
	}

	var resolver media.Resolver
	if cfg.YouTubeAPIKey != "" {
		resolver = media.NewYoutubeAPI(cfg.YouTubeAPIKey)
	} else {
		slog.Warn("YOUTUBE_API_KEY not set, YouTube metadata resolution disabled")
	}

	store := catalog.NewPostgresStore(db.DB)
	pipeline := ingest.NewPipeline(store, blobs, resolver)
	router := routes.CreateMainRouter(&routes.Env{Store: store, Pipeline: pipeline})

	if cfg.HTTPSCertFile != "" && cfg.HTTPSKeyFile != "" {
		slog.Info("Starting HTTPS server", slog.String("addr", cfg.Addr), slog.String("cert", cfg.HTTPSCertFile), slog.String("key", cfg.HTTPSKeyFile))
		err = http.ListenAndServeTLS(cfg.Addr, cfg.HTTPSCertFile, cfg.HTTPSKeyFile, router)
	} else {
		slog.Info("Starting HTTP server", slog.String("addr", cfg.Addr))
		err = http.ListenAndServe(cfg.Addr, router)
	}

	if err != nil {
		panic(err)
	}
}
