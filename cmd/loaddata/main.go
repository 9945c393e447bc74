package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mikiasgoitom/yamdb/internal/infrastructure/config"
	"github.com/mikiasgoitom/yamdb/internal/infrastructure/csvimport"
	database "github.com/mikiasgoitom/yamdb/internal/infrastructure/database"
	"github.com/mikiasgoitom/yamdb/internal/infrastructure/logger"
	"github.com/mikiasgoitom/yamdb/internal/infrastructure/repository/mongodb"
	"github.com/mikiasgoitom/yamdb/internal/infrastructure/uuidgen"
)

func main() {
	dir := flag.String("dir", "static/data", "Directory holding the fixture CSV files")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [-dir path]\n\n", os.Args[0])
		fmt.Fprintln(os.Stderr, "Imports users, categories, genres, titles, reviews and comments from CSV fixtures.")
		flag.PrintDefaults()
	}
	flag.Parse()

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	appLogger := logger.NewStdLogger(appConfig.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, err := database.NewMongoDBClient(ctx, appConfig.MongoURI)
	if err != nil {
		appLogger.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() { _ = mongoClient.Disconnect() }()
	db := mongoClient.Client.Database(appConfig.MongoDBName)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		appLogger.Fatalf("Failed to create indexes: %v", err)
	}

	importer := csvimport.NewImporter(
		mongodb.NewMongoUserRepository(db.Collection(database.UsersCollection)),
		mongodb.NewTaxonomyRepository(db),
		mongodb.NewTitleRepository(db),
		mongodb.NewReviewRepository(db),
		mongodb.NewCommentRepository(db),
		uuidgen.NewGenerator(),
		appLogger,
	)
	stats, err := importer.Import(ctx, os.DirFS(*dir))
	if err != nil {
		appLogger.Errorf("import stopped: %v", err)
	}
	appLogger.Infof("imported %d users, %d categories, %d genres, %d titles, %d reviews, %d comments",
		stats.Users, stats.Categories, stats.Genres, stats.Titles, stats.Reviews, stats.Comments)
	if err != nil {
		os.Exit(1)
	}
}
