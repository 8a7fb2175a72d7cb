package validate

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shop-assistant-api/internal/domain"
	"github.com/shopspring/decimal"
)

// v is the package-level singleton validator used for format checks
// (email, base64, ...). It is safe for concurrent use.
var v = validator.New()

// Rule checks a single field and returns a *domain.ValidationError when the
// field is not acceptable.
type Rule func() error

// First runs rules in declaration order and returns the first violation, or
// nil when every rule passes.
func First(rules ...Rule) error {
	for _, r := range rules {
		if err := r(); err != nil {
			return err
		}
	}
	return nil
}

func fail(field, msg string) error { return domain.Validation(field, msg) }

// NotBlank requires value to contain a non-whitespace character.
func NotBlank(field, value, msg string) Rule {
	return func() error {
		if strings.TrimSpace(value) == "" {
			return fail(field, msg)
		}
		return nil
	}
}

// Present requires a pointer field to be set.
func Present[T any](field string, value *T, msg string) Rule {
	return func() error {
		if value == nil {
			return fail(field, msg)
		}
		return nil
	}
}

// Tag checks a non-empty value against a validator/v10 tag such as "email" or
// "base64". Empty values pass; pair with NotBlank for required fields.
func Tag(field, value, tag, msg string) Rule {
	return func() error {
		if value == "" {
			return nil
		}
		if err := v.Var(value, tag); err != nil {
			return fail(field, msg)
		}
		return nil
	}
}

// Email is Tag(field, value, "email", msg).
func Email(field, value, msg string) Rule { return Tag(field, value, "email", msg) }

// Base64 is Tag(field, value, "base64", msg).
func Base64(field, value, msg string) Rule { return Tag(field, value, "base64", msg) }

// MaxLen bounds value to n runes.
func MaxLen(field, value string, n int, msg string) Rule {
	return func() error {
		if len([]rune(value)) > n {
			return fail(field, msg)
		}
		return nil
	}
}

// OneOf requires value to be one of allowed. Empty values fail.
func OneOf[T ~string](field string, value T, allowed []T, msg string) Rule {
	return func() error {
		for _, a := range allowed {
			if value == a {
				return nil
			}
		}
		return fail(field, msg)
	}
}

// MinInt requires *value >= min. A nil value passes; pair with Present.
func MinInt[T ~int | ~int64](field string, value *T, min T, msg string) Rule {
	return func() error {
		if value != nil && *value < min {
			return fail(field, msg)
		}
		return nil
	}
}

// MinDecimal requires *value >= min. A nil value passes; pair with Present.
func MinDecimal(field string, value *decimal.Decimal, min decimal.Decimal, msg string) Rule {
	return func() error {
		if value != nil && value.LessThan(min) {
			return fail(field, msg)
		}
		return nil
	}
}

// PositiveDecimal requires *value > 0. A nil value passes; pair with Present.
func PositiveDecimal(field string, value *decimal.Decimal, msg string) Rule {
	return func() error {
		if value != nil && !value.IsPositive() {
			return fail(field, msg)
		}
		return nil
	}
}
