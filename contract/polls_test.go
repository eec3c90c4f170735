package contract_test

import (
	"strings"
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gov_dao/contract"
	"gov_dao/sdk"
)

// =============================================================================
// Poll Lifecycle Tests
// =============================================================================

func TestCreatePollValidation(t *testing.T) {
	d := newTestDAO(t)

	short := textPollMsg()
	short.Title = "abc"
	assert.ErrorIs(t, d.createPoll(2, bob, minDeposit, short), contract.ErrInvalidTitle)

	long := textPollMsg()
	long.Description = strings.Repeat("x", 1025)
	assert.ErrorIs(t, d.createPoll(2, bob, minDeposit, long), contract.ErrInvalidDescription)

	badLink := textPollMsg()
	link := "short"
	badLink.Link = &link
	assert.ErrorIs(t, d.createPoll(2, bob, minDeposit, badLink), contract.ErrInvalidLink)

	err := d.createPoll(2, bob, minDeposit-1, textPollMsg())
	assert.ErrorIs(t, err, contract.ErrInsufficientProposalDeposit)

	// nothing was registered
	state, err := d.c.QueryState()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), state.PollCount)
	intEq(t, 0, state.TotalDeposit)
}

func TestCreatePollAssignsSequentialIDs(t *testing.T) {
	d := newTestDAO(t)
	id1 := d.mustCreatePoll(2, bob, minDeposit, textPollMsg())
	id2 := d.mustCreatePoll(3, carol, minDeposit, textPollMsg())
	assert.Equal(t, uint64(1), id1)
	assert.Equal(t, uint64(2), id2)

	p := d.poll(id2)
	assert.Equal(t, contract.PollInProgress, p.Status)
	assert.Equal(t, carol, p.Creator)
	assert.Equal(t, uint64(3+votingPeriod), p.EndHeight)
	intEq(t, minDeposit, p.DepositAmount)

	state, err := d.c.QueryState()
	require.NoError(t, err)
	intEq(t, 2*minDeposit, state.TotalDeposit)
}

func TestCastVoteValidation(t *testing.T) {
	d := newTestDAO(t)
	d.mustStake(2, alice, 100)
	id := d.mustCreatePoll(3, bob, minDeposit, textPollMsg())

	assert.ErrorIs(t, d.vote(4, alice, 0, contract.VoteYes, 10), contract.ErrPollNotFound)
	assert.ErrorIs(t, d.vote(4, alice, id+1, contract.VoteYes, 10), contract.ErrPollNotFound)

	err := d.c.CastVote(env(4, alice), id, contract.VoteOption("maybe"), math.NewInt(10))
	assert.ErrorIs(t, err, contract.ErrInvalidVote)

	// more weight than staked
	assert.ErrorIs(t, d.vote(4, alice, id, contract.VoteYes, 101), contract.ErrInsufficientStaked)
	// no stake at all
	assert.ErrorIs(t, d.vote(4, carol, id, contract.VoteYes, 1), contract.ErrInsufficientStaked)

	d.mustVote(5, alice, id, contract.VoteYes, 50)
	assert.ErrorIs(t, d.vote(6, alice, id, contract.VoteNo, 10), contract.ErrAlreadyVoted)

	end := d.poll(id).EndHeight
	assert.ErrorIs(t, d.vote(end+1, bob, id, contract.VoteYes, 1), contract.ErrPollNotInProgress)
}

// TestCastVoteRejectsNegativeAmount: the tally is unsigned; a negative
// amount must not slip past the weight check and subtract from the other side.
func TestCastVoteRejectsNegativeAmount(t *testing.T) {
	d := newTestDAO(t)
	d.mustStake(2, alice, 100)
	id := d.mustCreatePoll(3, bob, minDeposit, textPollMsg())
	d.mustVote(4, alice, id, contract.VoteYes, 50)

	err := d.c.CastVote(env(5, carol), id, contract.VoteNo, math.NewInt(-1000))
	assert.ErrorIs(t, err, contract.ErrInvalidVoteAmount)

	p := d.poll(id)
	intEq(t, 50, p.YesVotes)
	intEq(t, 0, p.NoVotes)

	// carol left no vote record behind
	voters, err := d.c.QueryVoters(id, nil, nil, contract.OrderAsc)
	require.NoError(t, err)
	require.Len(t, voters.Voters, 1)
	assert.Equal(t, alice, voters.Voters[0].Address)
}

func TestEndPollPasses(t *testing.T) {
	d := newTestDAO(t)
	d.mustStake(2, alice, 11)
	id := d.mustCreatePoll(3, bob, minDeposit, textPollMsg())
	d.mustVote(4, alice, id, contract.VoteYes, 10)

	end := d.poll(id).EndHeight
	assert.ErrorIs(t, d.c.EndPoll(env(end, carol), id), contract.ErrPollVotingPeriod)
	require.NoError(t, d.c.EndPoll(env(end+1, carol), id))

	p := d.poll(id)
	assert.Equal(t, contract.PollPassed, p.Status)
	require.NotNil(t, p.TotalBalanceAtEndPoll)
	intEq(t, 11, *p.TotalBalanceAtEndPoll)

	// deposit refunded to the creator
	require.Len(t, d.host.Transfers, 1)
	assert.Equal(t, bob, d.host.Transfers[0].Recipient)
	intEq(t, minDeposit, d.host.Transfers[0].Amount)

	state, err := d.c.QueryState()
	require.NoError(t, err)
	intEq(t, 0, state.TotalDeposit)

	// settled polls cannot be ended or voted on again
	assert.ErrorIs(t, d.c.EndPoll(env(end+2, carol), id), contract.ErrPollNotInProgress)
	assert.ErrorIs(t, d.vote(end+2, alice, id, contract.VoteNo, 1), contract.ErrPollNotInProgress)
}

func TestEndPollRejectsBelowThreshold(t *testing.T) {
	d := newTestDAO(t)
	d.mustStake(2, alice, 11)
	id := d.mustCreatePoll(3, bob, minDeposit, textPollMsg())
	d.mustVote(4, alice, id, contract.VoteNo, 10)

	end := d.poll(id).EndHeight
	require.NoError(t, d.c.EndPoll(env(end+1, carol), id))

	assert.Equal(t, contract.PollRejected, d.poll(id).Status)
	// no refund, but the deposit still leaves the live-deposit sum
	assert.Empty(t, d.host.Transfers)
	state, err := d.c.QueryState()
	require.NoError(t, err)
	intEq(t, 0, state.TotalDeposit)
}

// TestEndPollRejectsWithoutQuorum ends a poll nobody staked or voted on.
// The zero denominators must settle as a quorum rejection, not divide.
func TestEndPollRejectsWithoutQuorum(t *testing.T) {
	d := newTestDAO(t)
	id := d.mustCreatePoll(2, bob, minDeposit, textPollMsg())

	end := d.poll(id).EndHeight
	require.NoError(t, d.c.EndPoll(env(end+1, carol), id))

	p := d.poll(id)
	assert.Equal(t, contract.PollRejected, p.Status)
	require.NotNil(t, p.TotalBalanceAtEndPoll)
	intEq(t, 0, *p.TotalBalanceAtEndPoll)
	assert.Empty(t, d.host.Transfers)
}

// TestEndPollTieRejects: yes ratio must exceed the threshold strictly, so a
// 50/50 split with a 0.5 threshold is rejected.
func TestEndPollTieRejects(t *testing.T) {
	d := newTestDAO(t)
	d.mustStake(2, alice, 50)
	d.mustStake(2, bob, 50)
	id := d.mustCreatePoll(3, carol, minDeposit, textPollMsg())
	d.mustVote(4, alice, id, contract.VoteYes, 50)
	d.mustVote(4, bob, id, contract.VoteNo, 50)

	end := d.poll(id).EndHeight
	require.NoError(t, d.c.EndPoll(env(end+1, carol), id))
	assert.Equal(t, contract.PollRejected, d.poll(id).Status)
}

// =============================================================================
// Snapshot Tests
// =============================================================================

func TestSnapshotPoll(t *testing.T) {
	d := newTestDAO(t)
	d.mustStake(2, alice, 11)
	id := d.mustCreatePoll(3, bob, minDeposit, textPollMsg())
	end := d.poll(id).EndHeight

	// still outside the snapshot window
	err := d.c.SnapshotPoll(env(end-snapshotPeriod-1, carol), id)
	assert.ErrorIs(t, err, contract.ErrSnapshotHeight)

	require.NoError(t, d.c.SnapshotPoll(env(end-snapshotPeriod, carol), id))
	p := d.poll(id)
	require.NotNil(t, p.StakedAmount)
	intEq(t, 11, *p.StakedAmount)

	err = d.c.SnapshotPoll(env(end-snapshotPeriod+1, carol), id)
	assert.ErrorIs(t, err, contract.ErrSnapshotAlreadyOccurred)
}

// TestSnapshotFixesQuorumDenominator: stake added after the snapshot must
// not dilute the quorum of a snapshotted poll.
func TestSnapshotFixesQuorumDenominator(t *testing.T) {
	d := newTestDAO(t)
	d.mustStake(2, alice, 11)
	id := d.mustCreatePoll(3, bob, minDeposit, textPollMsg())
	end := d.poll(id).EndHeight

	require.NoError(t, d.c.SnapshotPoll(env(end-snapshotPeriod, carol), id))
	d.mustStake(end-5, carol, 1000)
	d.mustVote(end-4, alice, id, contract.VoteYes, 10)

	require.NoError(t, d.c.EndPoll(env(end+1, carol), id))
	p := d.poll(id)
	assert.Equal(t, contract.PollPassed, p.Status)
	intEq(t, 11, *p.TotalBalanceAtEndPoll)
}

// TestVoteInsideWindowSnapshots: the first vote inside the snapshot window
// freezes the denominator without an explicit snapshot call.
func TestVoteInsideWindowSnapshots(t *testing.T) {
	d := newTestDAO(t)
	d.mustStake(2, alice, 11)
	id := d.mustCreatePoll(3, bob, minDeposit, textPollMsg())
	end := d.poll(id).EndHeight

	d.mustVote(end-5, alice, id, contract.VoteYes, 10)

	p := d.poll(id)
	require.NotNil(t, p.StakedAmount)
	intEq(t, 11, *p.StakedAmount)

	err := d.c.SnapshotPoll(env(end-4, carol), id)
	assert.ErrorIs(t, err, contract.ErrSnapshotAlreadyOccurred)
}

func TestSnapshotRequiresInProgress(t *testing.T) {
	d := newTestDAO(t)
	id := d.mustCreatePoll(2, bob, minDeposit, textPollMsg())
	end := d.poll(id).EndHeight
	require.NoError(t, d.c.EndPoll(env(end+1, carol), id))

	err := d.c.SnapshotPoll(env(end+2, carol), id)
	assert.ErrorIs(t, err, contract.ErrPollNotInProgress)
}

// =============================================================================
// Execution Tests
// =============================================================================

const paramsContract = sdk.Address("contract:params")

func TestExecutePollDispatchesInOrder(t *testing.T) {
	d := newTestDAO(t)
	id := d.passPoll(execPollMsg(paramsContract, 2, 1))
	end := d.poll(id).EndHeight

	err := d.c.ExecutePoll(env(end+timelockPeriod, carol), id)
	assert.ErrorIs(t, err, contract.ErrTimelockNotExpired)

	require.NoError(t, d.c.ExecutePoll(env(end+timelockPeriod+1, carol), id))
	assert.Equal(t, contract.PollExecuted, d.poll(id).Status)

	require.Len(t, d.host.Calls, 2)
	assert.JSONEq(t, `{"step":1}`, string(d.host.Calls[0].Msg))
	assert.JSONEq(t, `{"step":2}`, string(d.host.Calls[1].Msg))
}

// TestExecutePollFailureIsIsolated: a failing bundled action must not error
// the execute call itself; it lands the poll in Failed instead.
func TestExecutePollFailureIsIsolated(t *testing.T) {
	d := newTestDAO(t)
	id := d.passPoll(execPollMsg(paramsContract, 1))
	end := d.poll(id).EndHeight
	d.host.FailCallsTo(paramsContract)

	require.NoError(t, d.c.ExecutePoll(env(end+timelockPeriod+1, carol), id))
	assert.Equal(t, contract.PollFailed, d.poll(id).Status)

	// terminal, a second attempt is refused
	err := d.c.ExecutePoll(env(end+timelockPeriod+2, carol), id)
	assert.ErrorIs(t, err, contract.ErrPollNotPassed)
}

func TestExecutePollRequiresPassed(t *testing.T) {
	d := newTestDAO(t)
	id := d.mustCreatePoll(2, bob, minDeposit, execPollMsg(paramsContract, 1))
	err := d.c.ExecutePoll(env(3, carol), id)
	assert.ErrorIs(t, err, contract.ErrPollNotPassed)
}

func TestExecutePollMessagesSelfOnly(t *testing.T) {
	d := newTestDAO(t)
	id := d.passPoll(execPollMsg(paramsContract, 1))
	err := d.c.ExecutePollMessages(env(200, alice), id)
	assert.ErrorIs(t, err, contract.ErrUnauthorized)
	assert.Equal(t, contract.PollPassed, d.poll(id).Status)
}

// =============================================================================
// Expiration Tests
// =============================================================================

func TestExpirePoll(t *testing.T) {
	d := newTestDAO(t)
	id := d.passPoll(execPollMsg(paramsContract, 1))
	end := d.poll(id).EndHeight

	err := d.c.ExpirePoll(env(end+expirationPeriod, carol), id)
	assert.ErrorIs(t, err, contract.ErrPollNotExpired)

	require.NoError(t, d.c.ExpirePoll(env(end+expirationPeriod+1, carol), id))
	assert.Equal(t, contract.PollRejected, d.poll(id).Status)

	// expired polls can no longer be executed
	err = d.c.ExecutePoll(env(end+expirationPeriod+2, carol), id)
	assert.ErrorIs(t, err, contract.ErrPollNotPassed)
}

func TestExpirePollRequiresExecuteData(t *testing.T) {
	d := newTestDAO(t)
	id := d.passPoll(textPollMsg())
	end := d.poll(id).EndHeight
	err := d.c.ExpirePoll(env(end+expirationPeriod+1, carol), id)
	assert.ErrorIs(t, err, contract.ErrPollNoExecuteData)
}

func TestExpirePollRequiresPassed(t *testing.T) {
	d := newTestDAO(t)
	id := d.mustCreatePoll(2, bob, minDeposit, execPollMsg(paramsContract, 1))
	err := d.c.ExpirePoll(env(500, carol), id)
	assert.ErrorIs(t, err, contract.ErrPollNotPassed)
}
