// Package validator wraps go-playground/validator with the application's
// custom rules and English translations.
package validator

// Validator validates tagged structs.
type Validator interface {
	Validate(data any) error
}
