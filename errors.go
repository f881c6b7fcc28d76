package szurubooru

import "fmt"

// ErrorName is the machine-readable error class reported by the server
// in the `name` field of an error body.
type ErrorName string

// Error classes reported by the server.
const (
	ErrorNameInvalidPoolCategoryColor ErrorName = "InvalidPoolCategoryColorError"
	ErrorNameMissingRequiredFile      ErrorName = "MissingRequiredFileError"
	ErrorNameMissingRequiredParameter ErrorName = "MissingRequiredParameterError"
	ErrorNameInvalidParameter         ErrorName = "InvalidParameterError"
	ErrorNameIntegrity                ErrorName = "IntegrityError"
	ErrorNameSearch                   ErrorName = "SearchError"
	ErrorNameAuth                     ErrorName = "AuthError"
	ErrorNamePostNotFound             ErrorName = "PostNotFoundError"
	ErrorNamePostAlreadyFeatured      ErrorName = "PostAlreadyFeaturedError"
	ErrorNamePostAlreadyUploaded      ErrorName = "PostAlreadyUploadedError"
	ErrorNameInvalidPostID            ErrorName = "InvalidPostIdError"
	ErrorNameInvalidPostSafety        ErrorName = "InvalidPostSafetyError"
	ErrorNameInvalidPostSource        ErrorName = "InvalidPostSourceError"
	ErrorNameInvalidPostContent       ErrorName = "InvalidPostContentError"
	ErrorNameInvalidPostRelation      ErrorName = "InvalidPostRelationError"
	ErrorNameInvalidPostNote          ErrorName = "InvalidPostNoteError"
	ErrorNameInvalidPostFlag          ErrorName = "InvalidPostFlagError"
	ErrorNameInvalidFavoriteTarget    ErrorName = "InvalidFavoriteTargetError"
	ErrorNameInvalidCommentID         ErrorName = "InvalidCommentIdError"
	ErrorNameCommentNotFound          ErrorName = "CommentNotFoundError"
	ErrorNameEmptyCommentText         ErrorName = "EmptyCommentTextError"
	ErrorNameInvalidScoreTarget       ErrorName = "InvalidScoreTargetError"
	ErrorNameInvalidScoreValue        ErrorName = "InvalidScoreValueError"
	ErrorNameTagCategoryNotFound      ErrorName = "TagCategoryNotFoundError"
	ErrorNameTagCategoryAlreadyExists ErrorName = "TagCategoryAlreadyExistsError"
	ErrorNameTagCategoryIsInUse       ErrorName = "TagCategoryIsInUseError"
	ErrorNameInvalidTagCategoryName   ErrorName = "InvalidTagCategoryNameError"
	ErrorNameInvalidTagCategoryColor  ErrorName = "InvalidTagCategoryColorError"
	ErrorNameTagNotFound              ErrorName = "TagNotFoundError"
	ErrorNameTagAlreadyExists         ErrorName = "TagAlreadyExistsError"
	ErrorNameTagIsInUse               ErrorName = "TagIsInUseError"
	ErrorNameInvalidTagName           ErrorName = "InvalidTagNameError"
	ErrorNameInvalidTagRelation       ErrorName = "InvalidTagRelationError"
	ErrorNameInvalidTagCategory       ErrorName = "InvalidTagCategoryError"
	ErrorNameInvalidTagDescription    ErrorName = "InvalidTagDescriptionError"
	ErrorNameUserNotFound             ErrorName = "UserNotFoundError"
	ErrorNameUserAlreadyExists        ErrorName = "UserAlreadyExistsError"
	ErrorNameInvalidUserName          ErrorName = "InvalidUserNameError"
	ErrorNameInvalidEmail             ErrorName = "InvalidEmailError"
	ErrorNameInvalidPassword          ErrorName = "InvalidPasswordError"
	ErrorNameInvalidRank              ErrorName = "InvalidRankError"
	ErrorNameInvalidAvatar            ErrorName = "InvalidAvatarError"
	ErrorNameProcessing               ErrorName = "ProcessingError"
	ErrorNameValidation               ErrorName = "ValidationError"
)

// ServerError is a structured error body returned by the server.
// All three fields are always present in the wire format.
type ServerError struct {
	Name        ErrorName `json:"name"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Name, e.Title, e.Description)
}

// ResponseError is an HTTP error status whose body did not match the
// structured server error shape. Body holds the raw response text.
type ResponseError struct {
	StatusCode int
	Body       string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("response error (status %d): %s", e.StatusCode, e.Body)
}

// DecodeError is a 2xx response body that decoded as neither the
// expected result shape nor a structured server error.
type DecodeError struct {
	Body string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding response %q: %v", e.Body, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ValidationError is a client-side precondition failure detected before
// any request is sent.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Message
}

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
