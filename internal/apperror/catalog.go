package apperror

import (
	"context"

	"golang.org/x/text/language"
)

// Code is the machine-readable error identifier clients key off. Codes are
// locale-invariant.
type Code string

const (
	CodeMissingCredentials Code = "missing_credentials"
	CodeValidation         Code = "validation_error"
	CodeInvalidInput       Code = "invalid_input"
	CodeEmailNotVerified   Code = "email_not_verified"
	CodeInvalidState       Code = "invalid_state"
	CodeInvalidCredentials Code = "invalid_credentials"
	CodeUserNotFound       Code = "user_not_found"
	CodeServerError        Code = "server_error"
)

// Codes written by transport middleware before a handler runs.
const (
	CodeUnauthorized     Code = "unauthorized"
	CodeForbidden        Code = "forbidden"
	CodeTooManyRequests  Code = "too_many_requests"
	CodeNotFound         Code = "not_found"
	CodeMethodNotAllowed Code = "method_not_allowed"
)

// Messages holds the fixed client-facing texts of one locale.
type Messages struct {
	MissingCredentials string
	InvalidData        string
	EmailNotVerified   string
	IncorrectPassword  string
	EmailNotFound      string
	ServerError        string
	Unauthorized       string
	Forbidden          string
	TooManyRequests    string
	RouteNotFound      string
	MethodNotAllowed   string
}

var supported = []language.Tag{language.Vietnamese, language.English}

var catalog = map[language.Tag]Messages{
	language.Vietnamese: {
		MissingCredentials: "Vui lòng nhập email và mật khẩu",
		InvalidData:        "Dữ liệu không hợp lệ",
		EmailNotVerified:   "Tài khoản chưa được xác thực. Vui lòng kiểm tra email để xác thực tài khoản",
		IncorrectPassword:  "Mật khẩu không chính xác",
		EmailNotFound:      "Email không tồn tại trong hệ thống",
		ServerError:        "Đã xảy ra lỗi hệ thống, vui lòng thử lại sau",
		Unauthorized:       "Phiên đăng nhập không hợp lệ hoặc đã hết hạn",
		Forbidden:          "Bạn không có quyền thực hiện thao tác này",
		TooManyRequests:    "Bạn thao tác quá nhanh, vui lòng thử lại sau",
		RouteNotFound:      "Không tìm thấy đường dẫn",
		MethodNotAllowed:   "Phương thức không được hỗ trợ",
	},
	language.English: {
		MissingCredentials: "Please enter your email and password",
		InvalidData:        "Invalid data",
		EmailNotVerified:   "Your account is not verified yet. Please check your email to verify it",
		IncorrectPassword:  "Incorrect password",
		EmailNotFound:      "Email not found",
		ServerError:        "Something went wrong, please try again later",
		Unauthorized:       "Missing, invalid or expired token",
		Forbidden:          "You are not allowed to do this",
		TooManyRequests:    "Too many requests, please slow down",
		RouteNotFound:      "Route not found",
		MethodNotAllowed:   "Method not allowed",
	},
}

var matcher = language.NewMatcher(supported)

// MessagesFor returns the catalog entry closest to tag. Unsupported tags fall
// back to Vietnamese.
func MessagesFor(tag language.Tag) Messages {
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return catalog[language.Vietnamese]
	}
	return catalog[supported[idx]]
}

// MatchAcceptLanguage picks a supported locale from an Accept-Language header.
// ok is false when the header is empty, malformed or names nothing supported.
func MatchAcceptLanguage(header string) (tag language.Tag, ok bool) {
	if header == "" {
		return language.Und, false
	}
	prefs, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(prefs) == 0 {
		return language.Und, false
	}
	_, idx, conf := matcher.Match(prefs...)
	if conf == language.No {
		return language.Und, false
	}
	return supported[idx], true
}

type localeKey struct{}

// WithLocale attaches a request locale used by Classify.
func WithLocale(ctx context.Context, tag language.Tag) context.Context {
	return context.WithValue(ctx, localeKey{}, tag)
}

func localeFrom(ctx context.Context) (language.Tag, bool) {
	tag, ok := ctx.Value(localeKey{}).(language.Tag)
	return tag, ok
}

// ContextMessages returns the catalog entry for the request locale, or the
// Vietnamese one when none is attached.
func ContextMessages(ctx context.Context) Messages {
	if tag, ok := localeFrom(ctx); ok {
		return MessagesFor(tag)
	}
	return catalog[language.Vietnamese]
}
