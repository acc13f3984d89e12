package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
// Repositories also return it for resources owned by a different user so that
// callers cannot distinguish "missing" from "not yours".
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the caller is not allowed to perform the operation.
var ErrForbidden = errors.New("operation not allowed")

// ErrPreconditionFailed indicates a state conflict, e.g. a direct field update
// targeting a locked snapshot outside the unlock workflow.
var ErrPreconditionFailed = errors.New("precondition failed")

// ErrEncryption indicates that an encrypted financial field could not be
// decrypted. Fatal for the read; a financial value is never substituted.
var ErrEncryption = errors.New("encryption failure")
