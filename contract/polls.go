package contract

// -----------------------------------------------------------------------------
// Poll State Machine
//
// InProgress -> {Passed, Rejected}; Passed -> {Executed, Failed}.
// Rejected, Executed and Failed are terminal. Failed is reachable only
// through a failed execution attempt, never straight from InProgress.
// -----------------------------------------------------------------------------

import (
	"sort"

	"cosmossdk.io/math"

	"gov_dao/sdk"
)

// Reject reasons surfaced in the poll-ended event line.
const (
	reasonQuorumNotReached    = "Quorum not reached"
	reasonThresholdNotReached = "Threshold not reached"
	reasonPassed              = "Poll passed"
	reasonExpired             = "Expired"
)

// createPoll registers a new proposal. Reached through Receive, so the
// deposit is already part of the contract's token balance.
func (c *Contract) createPoll(env Env, cfg *Config, proposer sdk.Address, deposit math.Int, msg *CreatePollMsg) (uint64, error) {
	if err := validatePollText(msg); err != nil {
		return 0, err
	}
	if deposit.LT(cfg.ProposalDeposit) {
		return 0, ErrInsufficientProposalDeposit
	}
	state, err := c.loadGovState()
	if err != nil {
		return 0, err
	}

	state.PollCount++
	state.TotalDeposit = state.TotalDeposit.Add(deposit)
	id := state.PollCount

	var execData []ExecuteData
	for _, m := range msg.ExecuteMsgs {
		execData = append(execData, ExecuteData{
			Order:    m.Order,
			Contract: m.Contract,
			Msg:      m.Msg,
		})
	}

	poll := Poll{
		ID:            id,
		Creator:       proposer,
		Status:        PollInProgress,
		Category:      msg.Category,
		Title:         msg.Title,
		Description:   msg.Description,
		Link:          msg.Link,
		YesVotes:      math.ZeroInt(),
		NoVotes:       math.ZeroInt(),
		EndHeight:     env.Height + cfg.VotingPeriod,
		ExecuteData:   execData,
		DepositAmount: deposit,
	}

	c.savePoll(&poll)
	c.saveGovState(state)
	c.indexPoll(&poll)

	c.emitPollCreatedEvent(id, proposer, poll.EndHeight)
	return id, nil
}

// CastVote commits part of the caller's staked weight to one side of a poll.
// One vote per (poll, account); votes cannot be changed afterwards.
func (c *Contract) CastVote(env Env, pollID uint64, vote VoteOption, amount math.Int) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	state, err := c.loadGovState()
	if err != nil {
		return err
	}
	if pollID == 0 || pollID > state.PollCount {
		return ErrPollNotFound
	}
	if !vote.valid() {
		return ErrInvalidVote
	}
	// amounts come off the wire signed; the tally is unsigned by contract
	if amount.IsNegative() {
		return ErrInvalidVoteAmount
	}
	poll, err := c.loadPoll(pollID)
	if err != nil {
		return err
	}
	if poll.Status != PollInProgress || env.Height > poll.EndHeight {
		return ErrPollNotInProgress
	}
	if c.loadVoterInfo(pollID, env.Sender) != nil {
		return ErrAlreadyVoted
	}

	tm := c.loadTokenManager(env.Sender)
	if tm == nil {
		tm = &TokenManager{Share: math.ZeroInt()}
	}
	totalBalance := c.host.Balance(cfg.StakeToken, env.Contract).Sub(state.TotalDeposit)
	if stakerWeight(tm, state, totalBalance).LT(amount) {
		return ErrInsufficientStaked
	}

	if vote == VoteYes {
		poll.YesVotes = poll.YesVotes.Add(amount)
	} else {
		poll.NoVotes = poll.NoVotes.Add(amount)
	}

	info := VoterInfo{Vote: vote, Balance: amount}
	c.saveVoterInfo(pollID, env.Sender, &info)
	if tm.Share.IsZero() && len(tm.LockedBalance) == 0 {
		c.addToIndex(idxStakers, env.Sender.String())
	}
	tm.LockedBalance = append(tm.LockedBalance, LockedBalanceEntry{PollID: pollID, Info: info})
	c.saveTokenManager(env.Sender, tm)

	// Snapshot-on-vote: the voter that pushes the poll inside the snapshot
	// window freezes the quorum denominator, in case nobody calls snapshot.
	if poll.EndHeight-env.Height < cfg.SnapshotPeriod && poll.StakedAmount == nil {
		staked := totalBalance
		poll.StakedAmount = &staked
	}
	c.savePoll(poll)

	c.emitVoteCastEvent(pollID, env.Sender, vote, amount)
	return nil
}

// SnapshotPoll freezes the quorum denominator. Callable by anyone once the
// poll is within the snapshot window, to close the flash-stake attack on
// the quorum calculation.
func (c *Contract) SnapshotPoll(env Env, pollID uint64) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	state, err := c.loadGovState()
	if err != nil {
		return err
	}
	poll, err := c.loadPoll(pollID)
	if err != nil {
		return err
	}
	if poll.Status != PollInProgress {
		return ErrPollNotInProgress
	}
	if poll.EndHeight > env.Height && poll.EndHeight-env.Height > cfg.SnapshotPeriod {
		return ErrSnapshotHeight
	}
	if poll.StakedAmount != nil {
		return ErrSnapshotAlreadyOccurred
	}

	staked := c.host.Balance(cfg.StakeToken, env.Contract).Sub(state.TotalDeposit)
	poll.StakedAmount = &staked
	c.savePoll(poll)

	c.emitSnapshotEvent(pollID, staked)
	return nil
}

// EndPoll closes voting and settles the outcome. Permissionless but only
// valid after the voting period; callers have to schedule it themselves.
func (c *Contract) EndPoll(env Env, pollID uint64) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	state, err := c.loadGovState()
	if err != nil {
		return err
	}
	poll, err := c.loadPoll(pollID)
	if err != nil {
		return err
	}
	if poll.Status != PollInProgress {
		return ErrPollNotInProgress
	}
	if env.Height <= poll.EndHeight {
		return ErrPollVotingPeriod
	}

	tallied := poll.YesVotes.Add(poll.NoVotes)

	// Quorum denominator: the snapshot if one was taken, otherwise the live
	// pool size. The live fallback is a documented manipulation surface kept
	// on purpose; see DESIGN.md.
	var stakedWeight math.Int
	if poll.StakedAmount != nil {
		stakedWeight = *poll.StakedAmount
	} else {
		stakedWeight = c.host.Balance(cfg.StakeToken, env.Contract).Sub(state.TotalDeposit)
	}

	quorum := math.LegacyZeroDec()
	if !state.TotalShare.IsZero() && !stakedWeight.IsZero() {
		quorum = math.LegacyNewDecFromInt(tallied).Quo(math.LegacyNewDecFromInt(stakedWeight))
	}

	status := PollRejected
	reason := reasonQuorumNotReached
	if !tallied.IsZero() && quorum.GTE(cfg.Quorum) {
		yesRatio := math.LegacyNewDecFromInt(poll.YesVotes).Quo(math.LegacyNewDecFromInt(tallied))
		if yesRatio.GT(cfg.Threshold) {
			status = PollPassed
			reason = reasonPassed
			if poll.DepositAmount.IsPositive() {
				if err := c.host.Transfer(cfg.StakeToken, poll.Creator, poll.DepositAmount); err != nil {
					return err
				}
			}
		} else {
			reason = reasonThresholdNotReached
		}
	}

	// The deposit leaves the live-deposit sum whether or not it is refunded,
	// so the stakeable pool no longer discounts it.
	state.TotalDeposit = state.TotalDeposit.Sub(poll.DepositAmount)
	c.saveGovState(state)

	poll.TotalBalanceAtEndPoll = &stakedWeight
	c.reindexPollStatus(pollID, poll.Status, status)
	poll.Status = status
	c.savePoll(poll)

	c.emitPollEndedEvent(pollID, status, reason)
	return nil
}

// ExecutePoll runs a passed poll's bundled actions after the timelock. The
// actions run as an isolated unit: their failure is absorbed into Failed
// status instead of rolling back this call.
func (c *Contract) ExecutePoll(env Env, pollID uint64) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	poll, err := c.loadPoll(pollID)
	if err != nil {
		return err
	}
	if poll.Status != PollPassed {
		return ErrPollNotPassed
	}
	if env.Height <= poll.EndHeight+cfg.TimelockPeriod {
		return ErrTimelockNotExpired
	}

	// Arm the register first so the failure handler can find the poll, then
	// run the dispatch behind the reply-on-error boundary. Executed is the
	// optimistic write, failPoll the compensating one.
	c.saveTmpPollID(pollID)
	if err := c.ExecutePollMessages(env.selfCall(), pollID); err != nil {
		return c.failPoll(env.selfCall())
	}
	c.clearTmpPollID()
	return nil
}

// ExecutePollMessages flips the poll to Executed and dispatches its bundled
// actions in order. Self-call only: the status write must happen before the
// dispatch so "execution was attempted" is recorded whatever the outcome.
func (c *Contract) ExecutePollMessages(env Env, pollID uint64) error {
	if env.Sender != env.Contract {
		return ErrUnauthorized
	}
	poll, err := c.loadPoll(pollID)
	if err != nil {
		return err
	}
	if poll.Status != PollPassed {
		return ErrPollNotPassed
	}

	c.reindexPollStatus(pollID, poll.Status, PollExecuted)
	poll.Status = PollExecuted
	c.savePoll(poll)

	msgs := make([]ExecuteData, len(poll.ExecuteData))
	copy(msgs, poll.ExecuteData)
	sort.Slice(msgs, func(i, j int) bool { return msgs[i].Order < msgs[j].Order })

	for _, m := range msgs {
		if err := c.host.Call(m.Contract, m.Msg); err != nil {
			return err
		}
	}

	c.emitPollExecutedEvent(pollID)
	return nil
}

// failPoll is the compensating write of the execution protocol: it reads the
// poll id from the one-shot register and records the failed attempt.
func (c *Contract) failPoll(env Env) error {
	if env.Sender != env.Contract {
		return ErrUnauthorized
	}
	pollID, ok := c.loadTmpPollID()
	if !ok {
		return ErrPollNotFound
	}
	poll, err := c.loadPoll(pollID)
	if err != nil {
		return err
	}

	c.reindexPollStatus(pollID, poll.Status, PollFailed)
	poll.Status = PollFailed
	c.savePoll(poll)
	c.clearTmpPollID()

	c.emitPollFailedEvent(pollID)
	return nil
}

// ExpirePoll retires a passed poll whose actions sat unexecuted past the
// expiration window, so it stops appearing actionable. Text-only polls have
// nothing to expire.
func (c *Contract) ExpirePoll(env Env, pollID uint64) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	poll, err := c.loadPoll(pollID)
	if err != nil {
		return err
	}
	if poll.Status != PollPassed {
		return ErrPollNotPassed
	}
	if len(poll.ExecuteData) == 0 {
		return ErrPollNoExecuteData
	}
	if env.Height <= poll.EndHeight+cfg.ExpirationPeriod {
		return ErrPollNotExpired
	}

	c.reindexPollStatus(pollID, poll.Status, PollRejected)
	poll.Status = PollRejected
	c.savePoll(poll)

	c.emitPollEndedEvent(pollID, PollRejected, reasonExpired)
	return nil
}
