package posts

import (
	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to the errors returned by this package.
const (
	CodeSlugRequired       = "SLUG_REQUIRED"
	CodeMetadataInvalid    = "METADATA_INVALID"
	CodeInvalidFileName    = "INVALID_FILE_NAME"
	CodeInvalidFileType    = "INVALID_FILE_TYPE"
	CodePushRequiresCommit = "PUSH_REQUIRES_COMMIT"
	CodeNotFound           = "POST_NOT_FOUND"
	CodeReadFailed         = "READ_FAILED"
	CodeWriteFailed        = "WRITE_FAILED"
)

func validationError(message, code string) error {
	return goerrors.New(message, goerrors.CategoryValidation).WithTextCode(code)
}

func notFoundError(name string, err error) error {
	return goerrors.Wrap(err, goerrors.CategoryNotFound, "post not found").
		WithTextCode(CodeNotFound).
		WithMetadata(map[string]any{"file": name})
}

// readError always reports an internal failure, even when the cause is a
// categorized decode error.
func readError(name string, err error) error {
	e := goerrors.New("read "+name, goerrors.CategoryInternal).
		WithTextCode(CodeReadFailed)
	e.Source = err
	return e
}

func writeError(name string, err error) error {
	return goerrors.Wrap(err, goerrors.CategoryInternal, "write "+name).
		WithTextCode(CodeWriteFailed)
}

// IsValidation reports whether err was caused by invalid input.
func IsValidation(err error) bool {
	return goerrors.IsCategory(err, goerrors.CategoryValidation) ||
		goerrors.IsCategory(err, goerrors.CategoryBadInput)
}

// IsNotFound reports whether err means the requested post does not exist.
func IsNotFound(err error) bool {
	return goerrors.IsNotFound(err)
}

// Message returns a user-facing message for err without the category and
// code decorations added by Error().
func Message(err error) string {
	if err == nil {
		return ""
	}
	var e *goerrors.Error
	if !goerrors.As(err, &e) {
		return err.Error()
	}
	if e.Source != nil && e.Source != err {
		return e.Message + ": " + Message(e.Source)
	}
	return e.Message
}
