package apperror

import (
	"fmt"

	"github.com/pkg/errors"
)

type Kind string

const (
	KindValidation          Kind = "VALIDATION"
	KindAuthorization       Kind = "AUTHORIZATION"
	KindResolution          Kind = "RESOLUTION"
	KindInsufficientBalance Kind = "INSUFFICIENT_BALANCE"
	KindInvariantViolation  Kind = "INVARIANT_VIOLATION"
	KindConflict            Kind = "CONFLICT"
)

// Error - ошибка бизнес-логики с видом, по которому контроллер выбирает http статус.
// KindInvariantViolation никогда не показывается пользователю как обычная ошибка -
// это признак дефекта логики, транзакция откатывается, пишется алерт в лог.
type Error struct {
	kind  Kind
	msg   string
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s", e.msg, e.cause.Error())
	}
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.cause
}

func (e *Error) Kind() Kind {
	return e.kind
}

func (e *Error) Message() string {
	return e.msg
}

func New(kind Kind, msg string) error {
	return &Error{kind: kind, msg: msg}
}

func Newf(kind Kind, format string, args ...interface{}) error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, cause error, msg string) error {
	return &Error{kind: kind, msg: msg, cause: cause}
}

// KindOf возвращает вид ошибки или пустую строку для внутренних/неожиданных ошибок
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.kind
	}
	return ""
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

func Validation(msg string) error {
	return New(KindValidation, msg)
}

func Validationf(format string, args ...interface{}) error {
	return Newf(KindValidation, format, args...)
}

func Authorization(msg string) error {
	return New(KindAuthorization, msg)
}

func Resolution(msg string) error {
	return New(KindResolution, msg)
}

func InsufficientBalance(msg string) error {
	return New(KindInsufficientBalance, msg)
}

func InsufficientBalancef(format string, args ...interface{}) error {
	return Newf(KindInsufficientBalance, format, args...)
}

func InvariantViolation(msg string) error {
	return New(KindInvariantViolation, msg)
}

func InvariantViolationf(format string, args ...interface{}) error {
	return Newf(KindInvariantViolation, format, args...)
}

func Conflict(msg string) error {
	return New(KindConflict, msg)
}
