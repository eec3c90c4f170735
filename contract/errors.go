package contract

import "errors"

// Error taxonomy. Authorization and validation errors are checked before any
// state mutation; state-precondition errors mean the request was well formed
// but the poll/ledger state does not allow it. Execution failures of bundled
// poll actions are never surfaced as errors - they become PollFailed status.
var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrUnknownMsg         = errors.New("unknown message variant")
	ErrAlreadyInitialized = errors.New("contract already initialized")
	ErrNotInitialized     = errors.New("contract not initialized")

	ErrInsufficientFunds           = errors.New("insufficient funds sent")
	ErrInsufficientProposalDeposit = errors.New("insufficient proposal deposit")
	ErrInvalidQuorum               = errors.New("quorum must be 0 to 1")
	ErrInvalidThreshold            = errors.New("threshold must be 0 to 1")
	ErrInvalidTitle                = errors.New("title length out of bounds")
	ErrInvalidDescription          = errors.New("description length out of bounds")
	ErrInvalidLink                 = errors.New("link length out of bounds")
	ErrInvalidVote                 = errors.New("invalid vote option")
	ErrInvalidVoteAmount           = errors.New("vote amount must not be negative")

	ErrPollNotFound            = errors.New("poll does not exist")
	ErrPollNotInProgress       = errors.New("poll is not in progress")
	ErrPollNotPassed           = errors.New("poll is not in passed status")
	ErrPollVotingPeriod        = errors.New("voting period has not expired")
	ErrTimelockNotExpired      = errors.New("timelock period has not expired")
	ErrPollNotExpired          = errors.New("expiration period has not elapsed")
	ErrPollNoExecuteData       = errors.New("poll has no execute data")
	ErrAlreadyVoted            = errors.New("user has already voted")
	ErrSnapshotHeight          = errors.New("not within snapshot period")
	ErrSnapshotAlreadyOccurred = errors.New("snapshot has already occurred")
	ErrNothingStaked           = errors.New("nothing staked")
	ErrInvalidWithdrawAmount   = errors.New("user is trying to withdraw too many tokens")
	ErrInsufficientStaked      = errors.New("user does not have enough staked tokens")
)
