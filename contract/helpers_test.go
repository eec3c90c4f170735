package contract_test

import (
	"encoding/json"
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"gov_dao/contract"
	"gov_dao/sdk"
)

const (
	govAddr    = sdk.Address("contract:govdao")
	stakeToken = sdk.Address("contract:stake-token")
	owner      = sdk.Address("hive:owner")
	alice      = sdk.Address("hive:alice")
	bob        = sdk.Address("hive:bob")
	carol      = sdk.Address("hive:carol")
)

// Default protocol parameters used by every test unless it overrides them.
const (
	votingPeriod     = 100
	timelockPeriod   = 50
	expirationPeriod = 200
	snapshotPeriod   = 10
	minDeposit       = 10
)

type testDAO struct {
	t     *testing.T
	c     *contract.Contract
	store *contract.MockState
	host  *contract.MockHost
}

// newTestDAO builds an instantiated contract over fresh mocks.
func newTestDAO(t *testing.T) *testDAO {
	t.Helper()
	store := contract.NewMockState()
	host := contract.NewMockHost(govAddr)
	c := contract.New(store, host)
	require.NoError(t, c.Instantiate(env(1, owner), defaultInstantiateMsg()))
	return &testDAO{t: t, c: c, store: store, host: host}
}

func defaultInstantiateMsg() *contract.InstantiateMsg {
	return &contract.InstantiateMsg{
		StakeToken:       stakeToken,
		Quorum:           math.LegacyMustNewDecFromStr("0.3"),
		Threshold:        math.LegacyMustNewDecFromStr("0.5"),
		VotingPeriod:     votingPeriod,
		TimelockPeriod:   timelockPeriod,
		ExpirationPeriod: expirationPeriod,
		ProposalDeposit:  math.NewInt(minDeposit),
		SnapshotPeriod:   snapshotPeriod,
	}
}

func env(height uint64, sender sdk.Address) contract.Env {
	return contract.Env{Height: height, Sender: sender, Contract: govAddr}
}

// stake credits the contract's token balance and runs the staking hook the
// way the token contract would after a transfer.
func (d *testDAO) stake(height uint64, staker sdk.Address, amount int64) error {
	d.host.Credit(stakeToken, govAddr, math.NewInt(amount))
	return d.c.Receive(env(height, stakeToken), &contract.ReceiveMsg{
		Sender: staker,
		Amount: math.NewInt(amount),
		Msg:    json.RawMessage(`{"stake_voting_tokens":{}}`),
	})
}

func (d *testDAO) mustStake(height uint64, staker sdk.Address, amount int64) {
	d.t.Helper()
	require.NoError(d.t, d.stake(height, staker, amount))
}

// createPoll funds the deposit and runs the create_poll hook.
func (d *testDAO) createPoll(height uint64, creator sdk.Address, deposit int64, msg *contract.CreatePollMsg) error {
	d.t.Helper()
	hook, err := json.Marshal(contract.ReceiveHookMsg{CreatePoll: msg})
	require.NoError(d.t, err)
	d.host.Credit(stakeToken, govAddr, math.NewInt(deposit))
	return d.c.Receive(env(height, stakeToken), &contract.ReceiveMsg{
		Sender: creator,
		Amount: math.NewInt(deposit),
		Msg:    hook,
	})
}

// mustCreatePoll creates a poll and returns the id it was assigned.
func (d *testDAO) mustCreatePoll(height uint64, creator sdk.Address, deposit int64, msg *contract.CreatePollMsg) uint64 {
	d.t.Helper()
	require.NoError(d.t, d.createPoll(height, creator, deposit, msg))
	state, err := d.c.QueryState()
	require.NoError(d.t, err)
	return state.PollCount
}

func textPollMsg() *contract.CreatePollMsg {
	return &contract.CreatePollMsg{
		Title:       "Fund the relay",
		Category:    "treasury",
		Description: "Route half of the fee income to the relay operators.",
	}
}

// execPollMsg bundles one action per order against the given target. The
// order is embedded in the payload so dispatch sequence is assertable.
func execPollMsg(target sdk.Address, orders ...uint64) *contract.CreatePollMsg {
	msg := textPollMsg()
	for _, o := range orders {
		payload, _ := json.Marshal(map[string]uint64{"step": o})
		msg.ExecuteMsgs = append(msg.ExecuteMsgs, contract.PollExecuteMsg{
			Order:    o,
			Contract: target,
			Msg:      payload,
		})
	}
	return msg
}

func (d *testDAO) vote(height uint64, voter sdk.Address, pollID uint64, opt contract.VoteOption, amount int64) error {
	return d.c.CastVote(env(height, voter), pollID, opt, math.NewInt(amount))
}

func (d *testDAO) mustVote(height uint64, voter sdk.Address, pollID uint64, opt contract.VoteOption, amount int64) {
	d.t.Helper()
	require.NoError(d.t, d.vote(height, voter, pollID, opt, amount))
}

func (d *testDAO) poll(id uint64) *contract.Poll {
	d.t.Helper()
	p, err := d.c.QueryPoll(id)
	require.NoError(d.t, err)
	return p
}

func (d *testDAO) staker(addr sdk.Address) *contract.StakerResponse {
	d.t.Helper()
	resp, err := d.c.QueryStaker(env(0, addr), addr)
	require.NoError(d.t, err)
	return resp
}

// passPoll drives a fresh poll to Passed: alice stakes, bob deposits, alice
// votes everything yes, and the poll is ended one block past its end height.
func (d *testDAO) passPoll(msg *contract.CreatePollMsg) uint64 {
	d.t.Helper()
	d.mustStake(2, alice, 100)
	id := d.mustCreatePoll(3, bob, minDeposit, msg)
	d.mustVote(4, alice, id, contract.VoteYes, 100)
	end := d.poll(id).EndHeight
	require.NoError(d.t, d.c.EndPoll(env(end+1, carol), id))
	require.Equal(d.t, contract.PollPassed, d.poll(id).Status)
	return id
}

func intEq(t *testing.T, expected int64, actual math.Int) {
	t.Helper()
	require.True(t, actual.Equal(math.NewInt(expected)), "expected %d, got %s", expected, actual)
}
