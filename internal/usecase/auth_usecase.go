package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mikiasgoitom/yamdb/internal/domain/contract"
	"github.com/mikiasgoitom/yamdb/internal/domain/entity"
	"github.com/mikiasgoitom/yamdb/internal/infrastructure/metrics"
	usecasecontract "github.com/mikiasgoitom/yamdb/internal/usecase/contract"
)

const (
	confirmationEmailSubject = "Confirmation code to complete registration"
	confirmationEmailBody    = "Hello %s,\n\nyour code for obtaining an API token is: %s\n\nExchange it at %s/api/v1/auth/token/ together with your username."
	errOccupiedCredentials   = "email or username is already taken"
)

// AuthUsecase implements signup and confirmation-code exchange.
type AuthUsecase struct {
	userRepo      contract.IUserRepository
	codeGenerator contract.IConfirmationCodeGenerator
	mailService   contract.IEmailService
	jwtService    JWTService
	validator     usecasecontract.IValidator
	uuidGenerator contract.IUUIDGenerator
	logger        usecasecontract.IAppLogger
	config        usecasecontract.IConfigProvider
}

// NewAuthUsecase creates a new AuthUsecase instance.
func NewAuthUsecase(
	userRepo contract.IUserRepository,
	codeGenerator contract.IConfirmationCodeGenerator,
	mailService contract.IEmailService,
	jwtService JWTService,
	validator usecasecontract.IValidator,
	uuidGenerator contract.IUUIDGenerator,
	logger usecasecontract.IAppLogger,
	cfg usecasecontract.IConfigProvider,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:      userRepo,
		codeGenerator: codeGenerator,
		mailService:   mailService,
		jwtService:    jwtService,
		validator:     validator,
		uuidGenerator: uuidGenerator,
		logger:        logger,
		config:        cfg,
	}
}

var _ usecasecontract.IAuthUseCase = (*AuthUsecase)(nil)

// SignUp creates an inactive user for a new (email, username) pair, or reuses
// the user already bound to exactly that pair, and mails a confirmation code.
func (uc *AuthUsecase) SignUp(ctx context.Context, email, username string) (*entity.User, error) {
	if err := uc.validator.ValidateUsername(username); err != nil {
		return nil, entity.NewFieldError("username", err.Error())
	}
	if err := uc.validator.ValidateEmail(email); err != nil {
		return nil, entity.NewFieldError("email", "enter a valid email address")
	}

	user, err := uc.userRepo.GetUserByEmailAndUsername(ctx, email, username)
	switch {
	case err == nil:
		uc.logger.Infof("signup repeated for existing user %s", user.ID)
	case errors.Is(err, entity.ErrNotFound):
		now := time.Now().UTC()
		user = &entity.User{
			ID:        uc.uuidGenerator.NewUUID(),
			Username:  username,
			Email:     email,
			Role:      entity.DefaultRole(),
			IsActive:  false,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := uc.userRepo.CreateUser(ctx, user); err != nil {
			if errors.Is(err, entity.ErrConflict) {
				return nil, entity.Detail(entity.ErrConflict, errOccupiedCredentials)
			}
			uc.logger.Errorf("failed to create user on signup: %v", err)
			return nil, fmt.Errorf("create user: %w", err)
		}
	default:
		uc.logger.Errorf("failed to look up signup pair: %v", err)
		return nil, fmt.Errorf("look up user: %w", err)
	}

	if err := uc.sendConfirmationCode(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *AuthUsecase) sendConfirmationCode(ctx context.Context, user *entity.User) error {
	code, err := uc.codeGenerator.MakeCode(user)
	if err != nil {
		uc.logger.Errorf("failed to make confirmation code for user %s: %v", user.ID, err)
		return fmt.Errorf("make confirmation code: %w", err)
	}
	body := fmt.Sprintf(confirmationEmailBody, user.Username, code, uc.config.GetAppBaseURL())
	if err := uc.mailService.SendEmail(ctx, user.Email, confirmationEmailSubject, body); err != nil {
		uc.logger.Errorf("failed to send confirmation code to %s: %v", user.Email, err)
		return fmt.Errorf("send confirmation code: %w", err)
	}
	metrics.ConfirmationCodesSent.Inc()
	return nil
}

// ObtainToken activates the user and issues an access token when the code
// matches the user's current state.
func (uc *AuthUsecase) ObtainToken(ctx context.Context, username, confirmationCode string) (string, error) {
	user, err := uc.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return "", entity.ErrUserNotFound
		}
		uc.logger.Errorf("failed to retrieve user for token exchange: %v", err)
		return "", fmt.Errorf("look up user: %w", err)
	}

	if !uc.codeGenerator.CheckCode(user, confirmationCode) {
		uc.logger.Warnf("confirmation code mismatch for user %s", user.ID)
		return "", entity.ErrInvalidConfirmationCode
	}

	now := time.Now().UTC()
	user.IsActive = true
	user.LastLogin = &now
	if _, err := uc.userRepo.UpdateUser(ctx, user); err != nil {
		uc.logger.Errorf("failed to activate user %s: %v", user.ID, err)
		return "", fmt.Errorf("activate user: %w", err)
	}

	token, err := uc.jwtService.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		uc.logger.Errorf("failed to generate access token: %v", err)
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return token, nil
}

// Authenticate handles user authentication using access tokens.
func (uc *AuthUsecase) Authenticate(ctx context.Context, accessToken string) (*entity.User, error) {
	claims, err := uc.jwtService.ParseAccessToken(accessToken)
	if err != nil {
		return nil, fmt.Errorf("invalid access token: %w", err)
	}

	user, err := uc.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, entity.ErrUserNotFound
		}
		uc.logger.Errorf("failed to retrieve user during authentication: %v", err)
		return nil, fmt.Errorf("look up user: %w", err)
	}
	if !user.IsActive {
		return nil, entity.ErrInactiveUser
	}
	return user, nil
}
