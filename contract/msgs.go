package contract

// Inbound message surface. Each entry point is a closed tagged-variant
// struct with exactly one non-nil variant pointer, matched exhaustively in
// Dispatch; new operations become new variants.

import (
	"encoding/json"

	"cosmossdk.io/math"

	"gov_dao/sdk"
)

// Validation bounds for poll text fields, in characters.
const (
	minTitleLength       = 4
	maxTitleLength       = 64
	minDescriptionLength = 4
	maxDescriptionLength = 1024
	minLinkLength        = 12
	maxLinkLength        = 128
)

type InstantiateMsg struct {
	StakeToken       sdk.Address    `json:"stake_token"`
	Quorum           math.LegacyDec `json:"quorum"`
	Threshold        math.LegacyDec `json:"threshold"`
	VotingPeriod     uint64         `json:"voting_period"`
	TimelockPeriod   uint64         `json:"timelock_period"`
	ExpirationPeriod uint64         `json:"expiration_period"`
	ProposalDeposit  math.Int       `json:"proposal_deposit"`
	SnapshotPeriod   uint64         `json:"snapshot_period"`
}

// ReceiveMsg is the token-transfer callback. The stake token contract calls
// it after crediting Amount to this contract's balance; Msg selects what the
// transfer was for.
type ReceiveMsg struct {
	Sender sdk.Address     `json:"sender"`
	Amount math.Int        `json:"amount"`
	Msg    json.RawMessage `json:"msg"`
}

// ReceiveHookMsg is the inner variant of a ReceiveMsg.
type ReceiveHookMsg struct {
	StakeVotingTokens *StakeVotingTokensMsg `json:"stake_voting_tokens,omitempty"`
	CreatePoll        *CreatePollMsg        `json:"create_poll,omitempty"`
}

type StakeVotingTokensMsg struct{}

type CreatePollMsg struct {
	Title       string           `json:"title"`
	Category    string           `json:"category"`
	Description string           `json:"description"`
	Link        *string          `json:"link,omitempty"`
	ExecuteMsgs []PollExecuteMsg `json:"execute_msgs,omitempty"`
}

// PollExecuteMsg is the wire form of one bundled action; canonicalized into
// ExecuteData at creation.
type PollExecuteMsg struct {
	Order    uint64          `json:"order"`
	Contract sdk.Address     `json:"contract"`
	Msg      json.RawMessage `json:"msg"`
}

type CastVoteMsg struct {
	PollID uint64     `json:"poll_id"`
	Vote   VoteOption `json:"vote"`
	Amount math.Int   `json:"amount"`
}

// WithdrawVotingTokensMsg withdraws everything available when Amount is nil.
type WithdrawVotingTokensMsg struct {
	Amount *math.Int `json:"amount,omitempty"`
}

type PollIDMsg struct {
	PollID uint64 `json:"poll_id"`
}

type UpdateConfigMsg struct {
	Owner            *sdk.Address    `json:"owner,omitempty"`
	Quorum           *math.LegacyDec `json:"quorum,omitempty"`
	Threshold        *math.LegacyDec `json:"threshold,omitempty"`
	VotingPeriod     *uint64         `json:"voting_period,omitempty"`
	TimelockPeriod   *uint64         `json:"timelock_period,omitempty"`
	ExpirationPeriod *uint64         `json:"expiration_period,omitempty"`
	ProposalDeposit  *math.Int       `json:"proposal_deposit,omitempty"`
	SnapshotPeriod   *uint64         `json:"snapshot_period,omitempty"`
}

// ExecuteMsg is the contract's mutating call surface.
type ExecuteMsg struct {
	Receive              *ReceiveMsg              `json:"receive,omitempty"`
	WithdrawVotingTokens *WithdrawVotingTokensMsg `json:"withdraw_voting_tokens,omitempty"`
	CastVote             *CastVoteMsg             `json:"cast_vote,omitempty"`
	SnapshotPoll         *PollIDMsg               `json:"snapshot_poll,omitempty"`
	EndPoll              *PollIDMsg               `json:"end_poll,omitempty"`
	ExecutePoll          *PollIDMsg               `json:"execute_poll,omitempty"`
	ExecutePollMsgs      *PollIDMsg               `json:"execute_poll_msgs,omitempty"`
	ExpirePoll           *PollIDMsg               `json:"expire_poll,omitempty"`
	UpdateConfig         *UpdateConfigMsg         `json:"update_config,omitempty"`
}

// Dispatch routes one inbound execute message to its handler. The zero-variant
// case is a caller bug surfaced as an error, not a panic, because the payload
// came off the wire.
func (c *Contract) Dispatch(env Env, msg *ExecuteMsg) error {
	switch {
	case msg.Receive != nil:
		return c.Receive(env, msg.Receive)
	case msg.WithdrawVotingTokens != nil:
		return c.WithdrawVotingTokens(env, msg.WithdrawVotingTokens.Amount)
	case msg.CastVote != nil:
		return c.CastVote(env, msg.CastVote.PollID, msg.CastVote.Vote, msg.CastVote.Amount)
	case msg.SnapshotPoll != nil:
		return c.SnapshotPoll(env, msg.SnapshotPoll.PollID)
	case msg.EndPoll != nil:
		return c.EndPoll(env, msg.EndPoll.PollID)
	case msg.ExecutePoll != nil:
		return c.ExecutePoll(env, msg.ExecutePoll.PollID)
	case msg.ExecutePollMsgs != nil:
		return c.ExecutePollMessages(env, msg.ExecutePollMsgs.PollID)
	case msg.ExpirePoll != nil:
		return c.ExpirePoll(env, msg.ExpirePoll.PollID)
	case msg.UpdateConfig != nil:
		return c.UpdateConfig(env, msg.UpdateConfig)
	}
	return ErrUnknownMsg
}

// validatePollText checks the creation bounds before any state mutation.
func validatePollText(msg *CreatePollMsg) error {
	if n := len(msg.Title); n < minTitleLength || n > maxTitleLength {
		return ErrInvalidTitle
	}
	if n := len(msg.Description); n < minDescriptionLength || n > maxDescriptionLength {
		return ErrInvalidDescription
	}
	if msg.Link != nil {
		if n := len(*msg.Link); n < minLinkLength || n > maxLinkLength {
			return ErrInvalidLink
		}
	}
	return nil
}
