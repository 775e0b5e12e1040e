package derror

import "errors"

var (
	// Submission flow.
	ErrMalformedSubmissionFormat = errors.New("submission does not match `Name - Address - Link`")
	ErrDuplicateActiveSubmission = errors.New("an active submission already exists")
	ErrNoActiveSubmission        = errors.New("no active submission or plan found")
	ErrRateLimited               = errors.New("rate limit exceeded")

	// Payment verification.
	ErrInvalidPlan               = errors.New("invalid plan selected")
	ErrAlreadyUsed               = errors.New("transaction has already been used")
	ErrOracleUnavailable         = errors.New("transaction lookup unavailable")
	ErrTransactionNotSuccessful  = errors.New("transaction is not successful")
	ErrAmountOrRecipientMismatch = errors.New("transaction does not match the expected amount or recipient")

	// Publication.
	ErrMetadataUnavailable = errors.New("token metadata unavailable")
	ErrPublishFailed       = errors.New("failed to publish to channel")
	ErrNotInQueue          = errors.New("submission not found in the pending queue")
)
