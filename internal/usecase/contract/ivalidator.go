package usecasecontract

type IValidator interface {
	ValidateEmail(email string) error
	ValidateUsername(username string) error
	ValidateSlug(slug string) error
}
