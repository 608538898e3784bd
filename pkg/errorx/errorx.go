package errorx

import (
	"fmt"
)

// GENERAL ERROR:

// GeneralError - General App Error.
type GeneralError struct {
	message string
	err     error
}

// NewGeneralError - GeneralError constructor.
func NewGeneralError(msg string, args ...any) *GeneralError {
	return &GeneralError{message: fmt.Sprintf(msg, args...), err: nil}
}

// NewGeneralErrorWrapper - GeneralError constructor for wrapper of another error.
func NewGeneralErrorWrapper(err error, msg string, args ...any) *GeneralError {
	return &GeneralError{message: fmt.Sprintf(msg, args...), err: err}
}

// Error - return the error string.
func (ge *GeneralError) Error() string {
	if ge.err != nil {
		return fmt.Errorf("%s # Error wrap: %w", ge.message, ge.err).Error()
	}

	return ge.message
}

// Unwrap - return the wrapped error.
func (ge *GeneralError) Unwrap() error {
	return ge.err
}

// DATABASE ERROR

// DatabaseError - generic database failure (open, pragma, commit, close).
type DatabaseError struct {
	message string
	err     error
}

// NewDatabaseError - DatabaseError constructor.
func NewDatabaseError(msg string, args ...any) *DatabaseError {
	return &DatabaseError{message: fmt.Sprintf(msg, args...), err: nil}
}

// NewDatabaseErrorWrapper - DatabaseError constructor for wrapper of another error.
func NewDatabaseErrorWrapper(err error, msg string, args ...any) *DatabaseError {
	return &DatabaseError{message: fmt.Sprintf(msg, args...), err: err}
}

// Error - return the error string.
func (ge *DatabaseError) Error() string {
	if ge.err != nil {
		return fmt.Errorf("%s: %w", ge.message, ge.err).Error()
	}

	return ge.message
}

// Unwrap - return the wrapped error.
func (ge *DatabaseError) Unwrap() error {
	return ge.err
}

// CONTENTION ERROR

// ContentionError - the database target stayed locked for the whole retry budget.
// No connection is ever returned together with this error.
type ContentionError struct {
	Target   string
	Attempts int
	err      error
}

// NewContentionError - ContentionError constructor, err is the last open failure.
func NewContentionError(err error, target string, attempts int) *ContentionError {
	return &ContentionError{Target: target, Attempts: attempts, err: err}
}

// Error - return the error string.
func (ce *ContentionError) Error() string {
	msg := fmt.Sprintf("database locked: %s (gave up after %d attempts)", ce.Target, ce.Attempts)
	if ce.err != nil {
		return fmt.Errorf("%s: %w", msg, ce.err).Error()
	}

	return msg
}

// Unwrap - return the last open error.
func (ce *ContentionError) Unwrap() error {
	return ce.err
}

// STATEMENT ERROR

// StatementError - the engine rejected or failed a statement.
type StatementError struct {
	Statement string
	err       error
}

// NewStatementError - StatementError constructor.
func NewStatementError(err error, statement string) *StatementError {
	return &StatementError{Statement: statement, err: err}
}

// Error - return the error string.
func (se *StatementError) Error() string {
	return fmt.Errorf("error executing statement '%s': %w", se.Statement, se.err).Error()
}

// Unwrap - return the engine error.
func (se *StatementError) Unwrap() error {
	return se.err
}

// MISUSE ERROR

// MisuseError - a caller passed a reserved or unusable identifier to a SQL builder.
type MisuseError struct {
	Identifier string
	message    string
}

// NewMisuseError - MisuseError constructor.
func NewMisuseError(identifier string, msg string, args ...any) *MisuseError {
	return &MisuseError{Identifier: identifier, message: fmt.Sprintf(msg, args...)}
}

// Error - return the error string.
func (me *MisuseError) Error() string {
	return fmt.Sprintf("misuse of identifier '%s': %s", me.Identifier, me.message)
}
