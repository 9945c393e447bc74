package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mikiasgoitom/yamdb/internal/domain/entity"
	"github.com/mikiasgoitom/yamdb/internal/infrastructure/config"
	database "github.com/mikiasgoitom/yamdb/internal/infrastructure/database"
	"github.com/mikiasgoitom/yamdb/internal/infrastructure/logger"
	"github.com/mikiasgoitom/yamdb/internal/infrastructure/repository/mongodb"
	"github.com/mikiasgoitom/yamdb/internal/infrastructure/uuidgen"
	"github.com/mikiasgoitom/yamdb/internal/infrastructure/validator"
	"github.com/mikiasgoitom/yamdb/internal/usecase"
	usecasecontract "github.com/mikiasgoitom/yamdb/internal/usecase/contract"
)

func main() {
	username := flag.String("username", "", "Username of the admin (required)")
	email := flag.String("email", "", "Email of the admin; required when the user does not exist yet")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s -username name [-email address]\n\n", os.Args[0])
		fmt.Fprintln(os.Stderr, "Creates an active admin, or promotes an existing user to admin.")
		flag.PrintDefaults()
	}
	flag.Parse()
	if *username == "" {
		flag.Usage()
		os.Exit(2)
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	appLogger := logger.NewStdLogger(appConfig.LogLevel)
	ctx := context.Background()

	mongoClient, err := database.NewMongoDBClient(ctx, appConfig.MongoURI)
	if err != nil {
		appLogger.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() { _ = mongoClient.Disconnect() }()
	db := mongoClient.Client.Database(appConfig.MongoDBName)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		appLogger.Fatalf("Failed to create indexes: %v", err)
	}

	userUsecase := usecase.NewUserUsecase(
		mongodb.NewMongoUserRepository(db.Collection(database.UsersCollection)),
		mongodb.NewReviewRepository(db),
		mongodb.NewCommentRepository(db),
		validator.NewValidator(),
		uuidgen.NewGenerator(),
		appLogger,
		appConfig,
	)

	admin := entity.UserRoleAdmin
	user, err := userUsecase.GetUserByUsername(ctx, *username)
	switch {
	case err == nil:
		user, err = userUsecase.UpdateUser(ctx, user.Username, usecasecontract.UserInput{Role: &admin})
	case errors.Is(err, entity.ErrNotFound) && *email != "":
		user, err = userUsecase.CreateUser(ctx, usecasecontract.UserInput{Username: username, Email: email, Role: &admin})
	case errors.Is(err, entity.ErrNotFound):
		err = fmt.Errorf("user %q does not exist; pass -email to create it", *username)
	}
	if err != nil {
		appLogger.Errorf("createadmin: %v", err)
		os.Exit(1)
	}
	appLogger.Infof("%s <%s> is now an admin; sign up with the same pair to receive a confirmation code", user.Username, user.Email)
}
