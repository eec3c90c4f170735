package contract

import (
	"encoding/json"

	"cosmossdk.io/math"

	"gov_dao/sdk"
)

// PollStatus captures a poll's lifecycle.
type PollStatus string

const (
	PollInProgress PollStatus = "in_progress" // voting open, only non-terminal state
	PollPassed     PollStatus = "passed"      // quorum + threshold met, awaiting timelock
	PollRejected   PollStatus = "rejected"    // terminal
	PollExecuted   PollStatus = "executed"    // terminal, bundled actions dispatched
	PollFailed     PollStatus = "failed"      // terminal, bundled actions errored
)

// String keeps status text stable for index keys and event lines.
// Example payload: PollPassed.String()
func (ps PollStatus) String() string {
	return string(ps)
}

// terminal reports whether no further status transition is allowed.
func (ps PollStatus) terminal() bool {
	return ps == PollRejected || ps == PollExecuted || ps == PollFailed
}

// VoteOption is the side a voter commits weight to. No abstentions.
type VoteOption string

const (
	VoteYes VoteOption = "yes"
	VoteNo  VoteOption = "no"
)

// valid rejects anything but the two closed variants before state is touched.
func (v VoteOption) valid() bool {
	return v == VoteYes || v == VoteNo
}

// OrderBy controls the scan direction of paginated queries.
type OrderBy string

const (
	OrderAsc  OrderBy = "asc"
	OrderDesc OrderBy = "desc"
)

// Config is the protocol parameter singleton. Set at instantiation,
// owner-only updates afterwards. Quorum and Threshold are ratios in [0,1].
// All periods are block-height durations.
type Config struct {
	Owner            sdk.Address    `json:"owner"`
	StakeToken       sdk.Address    `json:"stake_token"`
	Quorum           math.LegacyDec `json:"quorum"`
	Threshold        math.LegacyDec `json:"threshold"`
	VotingPeriod     uint64         `json:"voting_period"`
	TimelockPeriod   uint64         `json:"timelock_period"`
	ExpirationPeriod uint64         `json:"expiration_period"`
	ProposalDeposit  math.Int       `json:"proposal_deposit"`
	SnapshotPeriod   uint64         `json:"snapshot_period"`
}

// GovState is the global mutable counter singleton.
// TotalShare is the sum of every TokenManager share.
// TotalDeposit is the sum of deposits of polls that have not ended yet;
// the stakeable pool is always (stake token balance - TotalDeposit).
type GovState struct {
	PollCount    uint64   `json:"poll_count"`
	TotalShare   math.Int `json:"total_share"`
	TotalDeposit math.Int `json:"total_deposit"`
}

// VoterInfo records one account's committed vote on one poll.
// Balance is in token-amount units, not shares. Immutable once written.
type VoterInfo struct {
	Vote    VoteOption `json:"vote"`
	Balance math.Int   `json:"balance"`
}

// LockedBalanceEntry ties a VoterInfo to the poll that locks it.
type LockedBalanceEntry struct {
	PollID uint64    `json:"poll_id"`
	Info   VoterInfo `json:"info"`
}

// TokenManager is the per-account share ledger record. Share is the
// pool-relative unit; LockedBalance holds one entry per in-progress poll the
// account voted in, pruned lazily on withdraw.
type TokenManager struct {
	Share         math.Int             `json:"share"`
	LockedBalance []LockedBalanceEntry `json:"locked_balance"`
}

// ExecuteData is one bundled follow-up action of a passed poll. Order fixes
// the dispatch sequence so a parameter-set call can precede its consumer.
type ExecuteData struct {
	Order    uint64          `json:"order"`
	Contract sdk.Address     `json:"contract"`
	Msg      json.RawMessage `json:"msg"`
}

// Poll is one proposal. Append-only history; status transitions are the only
// mutation path after creation. StakedAmount is the optional quorum-snapshot
// denominator; TotalBalanceAtEndPoll records the denominator end() used.
type Poll struct {
	ID                    uint64        `json:"id"`
	Creator               sdk.Address   `json:"creator"`
	Status                PollStatus    `json:"status"`
	Category              string        `json:"category"`
	Title                 string        `json:"title"`
	Description           string        `json:"description"`
	Link                  *string       `json:"link,omitempty"`
	YesVotes              math.Int      `json:"yes_votes"`
	NoVotes               math.Int      `json:"no_votes"`
	EndHeight             uint64        `json:"end_height"`
	ExecuteData           []ExecuteData `json:"execute_data,omitempty"`
	DepositAmount         math.Int      `json:"deposit_amount"`
	StakedAmount          *math.Int     `json:"staked_amount,omitempty"`
	TotalBalanceAtEndPoll *math.Int     `json:"total_balance_at_end_poll,omitempty"`
}
