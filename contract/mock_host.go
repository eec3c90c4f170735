package contract

import (
	"fmt"

	"cosmossdk.io/math"

	"gov_dao/sdk"
)

// MockTransfer records one outbound token transfer for assertions.
type MockTransfer struct {
	Token     sdk.Address
	Recipient sdk.Address
	Amount    math.Int
}

// MockCall records one outbound contract call.
type MockCall struct {
	Target sdk.Address
	Msg    []byte
}

// MockHost is a scriptable Host. Balances are a tiny token ledger keyed by
// token then holder; Transfer moves value out of Self's balance the way the
// real token contract would. Call can be told to fail per target so the
// execution failure path is testable.
type MockHost struct {
	Self        sdk.Address
	balances    map[sdk.Address]map[sdk.Address]math.Int
	failTargets map[sdk.Address]bool

	Transfers []MockTransfer
	Calls     []MockCall
	Lines     []string
}

func NewMockHost(self sdk.Address) *MockHost {
	return &MockHost{
		Self:        self,
		balances:    make(map[sdk.Address]map[sdk.Address]math.Int),
		failTargets: make(map[sdk.Address]bool),
	}
}

// Credit adds tokens to a holder's balance, simulating an inbound transfer.
func (h *MockHost) Credit(token, holder sdk.Address, amount math.Int) {
	if h.balances[token] == nil {
		h.balances[token] = make(map[sdk.Address]math.Int)
	}
	h.balances[token][holder] = h.Balance(token, holder).Add(amount)
}

// FailCallsTo makes every Call against the target error out.
func (h *MockHost) FailCallsTo(target sdk.Address) {
	h.failTargets[target] = true
}

func (h *MockHost) Balance(token, holder sdk.Address) math.Int {
	if holders, ok := h.balances[token]; ok {
		if bal, ok := holders[holder]; ok {
			return bal
		}
	}
	return math.ZeroInt()
}

func (h *MockHost) Transfer(token, recipient sdk.Address, amount math.Int) error {
	bal := h.Balance(token, h.Self)
	if bal.LT(amount) {
		return fmt.Errorf("mock host: transfer %s exceeds balance %s", amount, bal)
	}
	if h.balances[token] == nil {
		h.balances[token] = make(map[sdk.Address]math.Int)
	}
	h.balances[token][h.Self] = bal.Sub(amount)
	h.Credit(token, recipient, amount)
	h.Transfers = append(h.Transfers, MockTransfer{Token: token, Recipient: recipient, Amount: amount})
	return nil
}

func (h *MockHost) Call(target sdk.Address, msg []byte) error {
	h.Calls = append(h.Calls, MockCall{Target: target, Msg: msg})
	if h.failTargets[target] {
		return fmt.Errorf("mock host: call to %s failed", target)
	}
	return nil
}

func (h *MockHost) Log(line string) {
	h.Lines = append(h.Lines, line)
}
