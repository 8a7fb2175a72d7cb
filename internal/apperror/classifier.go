// Package apperror turns any failure produced while serving a request into a
// single {error, message} response and HTTP status.
package apperror

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/shop-assistant-api/internal/domain"
	"golang.org/x/text/language"
)

// notVerifiedMarker reclassifies a state conflict as an unverified account.
const notVerifiedMarker = "not verified"

// Response is the only error body the API ever returns.
type Response struct {
	Error   Code   `json:"error"`
	Message string `json:"message"`
}

type Classifier struct {
	logger *slog.Logger
	locale language.Tag
}

// NewClassifier returns a Classifier answering in locale unless the request
// context carries its own (see WithLocale).
func NewClassifier(logger *slog.Logger, locale language.Tag) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{logger: logger, locale: locale}
}

// Classify maps err to a status and body. The first matching rule wins:
//
//	validation on email/password   400 missing_credentials
//	validation on another field    400 validation_error (field message)
//	validation without a field     400 validation_error (generic)
//	invalid argument               400 invalid_input (verbatim)
//	conflict containing "not verified" 403 email_not_verified
//	other conflict                 400 invalid_state (verbatim)
//	credential mismatch            401 invalid_credentials
//	identity not found             404 user_not_found
//	anything else                  500 server_error (logged)
//
// Only the last rule logs; attrs are added to that log record.
func (c *Classifier) Classify(ctx context.Context, err error, attrs ...slog.Attr) (int, Response) {
	msgs := c.messages(ctx)

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		switch {
		case ve.Field == "email" || ve.Field == "password":
			return http.StatusBadRequest, Response{CodeMissingCredentials, msgs.MissingCredentials}
		case ve.Field != "" && ve.Message != "":
			return http.StatusBadRequest, Response{CodeValidation, ve.Message}
		default:
			return http.StatusBadRequest, Response{CodeValidation, msgs.InvalidData}
		}
	}

	var ia *domain.InvalidArgumentError
	if errors.As(err, &ia) {
		return http.StatusBadRequest, Response{CodeInvalidInput, ia.Message}
	}

	var sc *domain.StateConflictError
	if errors.As(err, &sc) {
		if strings.Contains(sc.Message, notVerifiedMarker) {
			return http.StatusForbidden, Response{CodeEmailNotVerified, msgs.EmailNotVerified}
		}
		return http.StatusBadRequest, Response{CodeInvalidState, sc.Message}
	}

	if errors.Is(err, domain.ErrCredentialMismatch) {
		return http.StatusUnauthorized, Response{CodeInvalidCredentials, msgs.IncorrectPassword}
	}
	if errors.Is(err, domain.ErrIdentityNotFound) {
		return http.StatusNotFound, Response{CodeUserNotFound, msgs.EmailNotFound}
	}

	attrs = append(attrs, slog.String("error", fmt.Sprintf("%+v", err)))
	c.logger.LogAttrs(ctx, slog.LevelError, "Unhandled error", attrs...)
	return http.StatusInternalServerError, Response{CodeServerError, msgs.ServerError}
}

func (c *Classifier) messages(ctx context.Context) Messages {
	if tag, ok := localeFrom(ctx); ok {
		return MessagesFor(tag)
	}
	return MessagesFor(c.locale)
}
