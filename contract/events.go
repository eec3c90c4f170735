package contract

import (
	"fmt"

	"cosmossdk.io/math"

	"gov_dao/sdk"
)

// Short pipe-delimited event lines so explorers and indexing bots can follow
// the contract without scanning full storage diffs.

// emitInitEvent pings once when the contract comes alive.
func (c *Contract) emitInitEvent(owner, stakeToken sdk.Address) {
	c.host.Log(fmt.Sprintf(
		"init|owner:%s|token:%s",
		owner.String(),
		stakeToken.String(),
	))
}

// emitStakedEvent carries both token amount and minted share so share math
// can be replayed from logs only.
func (c *Contract) emitStakedEvent(staker sdk.Address, amount, share math.Int) {
	c.host.Log(fmt.Sprintf(
		"stk|by:%s|amt:%s|shr:%s",
		staker.String(),
		amount.String(),
		share.String(),
	))
}

// emitWithdrawnEvent mirrors the stake ping for the exit direction.
func (c *Contract) emitWithdrawnEvent(staker sdk.Address, amount, share math.Int) {
	c.host.Log(fmt.Sprintf(
		"wd|by:%s|amt:%s|shr:%s",
		staker.String(),
		amount.String(),
		share.String(),
	))
}

// emitPollCreatedEvent gives watchers the end height so they can schedule end calls.
func (c *Contract) emitPollCreatedEvent(pollID uint64, creator sdk.Address, endHeight uint64) {
	c.host.Log(fmt.Sprintf(
		"pc|id:%d|by:%s|end:%d",
		pollID,
		creator.String(),
		endHeight,
	))
}

// emitVoteCastEvent includes side and weight so tallies can be replayed.
func (c *Contract) emitVoteCastEvent(pollID uint64, voter sdk.Address, vote VoteOption, amount math.Int) {
	c.host.Log(fmt.Sprintf(
		"v|id:%d|by:%s|opt:%s|amt:%s",
		pollID,
		voter.String(),
		string(vote),
		amount.String(),
	))
}

// emitSnapshotEvent records the frozen quorum denominator.
func (c *Contract) emitSnapshotEvent(pollID uint64, staked math.Int) {
	c.host.Log(fmt.Sprintf(
		"snap|id:%d|amt:%s",
		pollID,
		staked.String(),
	))
}

// emitPollEndedEvent is the settle line: final status plus the reject reason.
func (c *Contract) emitPollEndedEvent(pollID uint64, status PollStatus, reason string) {
	c.host.Log(fmt.Sprintf(
		"pe|id:%d|s:%s|r:%s",
		pollID,
		status.String(),
		reason,
	))
}

func (c *Contract) emitPollExecutedEvent(pollID uint64) {
	c.host.Log(fmt.Sprintf("px|id:%d", pollID))
}

func (c *Contract) emitPollFailedEvent(pollID uint64) {
	c.host.Log(fmt.Sprintf("pf|id:%d", pollID))
}

// emitConfigUpdatedEvent spells the (possibly new) owner so auditors can
// track sensitive flips.
func (c *Contract) emitConfigUpdatedEvent(owner sdk.Address) {
	c.host.Log(fmt.Sprintf("cfg|owner:%s", owner.String()))
}
