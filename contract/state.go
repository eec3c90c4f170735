package contract

import (
	"cosmossdk.io/math"

	"gov_dao/sdk"
)

// State is the host key-value storage handle. Every operation receives it
// through the Contract it was constructed with - no package-level storage.
type State interface {
	Set(key, value string)
	Get(key string) *string
	Delete(key string)
}

// Host covers every outbound effect the contract can cause: querying the
// stake-token ledger, moving tokens, calling other contracts and emitting
// log events. The wasm build binds it to the chain host; tests script it.
type Host interface {
	// Balance returns the holder's balance on the given token contract.
	Balance(token, holder sdk.Address) math.Int
	// Transfer sends tokens held by this contract to a recipient.
	Transfer(token, recipient sdk.Address, amount math.Int) error
	// Call dispatches an arbitrary payload to another contract.
	Call(target sdk.Address, msg []byte) error
	// Log emits one event line.
	Log(line string)
}

// Env is the per-invocation snapshot passed into every operation. Height is
// the externally supplied, monotonically non-decreasing ordering index; the
// contract never reads a clock of its own.
type Env struct {
	Height   uint64
	Sender   sdk.Address
	Contract sdk.Address
}

// selfCall derives the env ExecutePoll uses for its sub-invocation into
// ExecutePollMessages: same height, the contract itself as sender.
func (e Env) selfCall() Env {
	return Env{Height: e.Height, Sender: e.Contract, Contract: e.Contract}
}

// Contract bundles the storage handle and the host bindings. All inbound
// operations are methods on it. Execution is single-threaded per invocation,
// serialized by the host; there is no locking because there is no
// concurrent access within one contract instance.
type Contract struct {
	store State
	host  Host
}

// New wires a contract over the given storage and host bindings.
func New(store State, host Host) *Contract {
	return &Contract{store: store, host: host}
}
