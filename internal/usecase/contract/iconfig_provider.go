package usecasecontract

import "time"

// IConfigProvider exposes the configuration values usecases need.
type IConfigProvider interface {
	GetAppBaseURL() string
	GetAccessTokenTTL() time.Duration
	GetConfirmationCodeTTL() time.Duration
	GetPageSize() int
	GetEmailFrom() string
}
