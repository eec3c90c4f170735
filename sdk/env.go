package sdk

// Sender carries the caller identity as resolved by the host before the
// contract runs. Signature verification already happened on the host side.
type Sender struct {
	Address       Address   `json:"id"`
	RequiredAuths []Address `json:"required_auths"`
}

// Env is the per-invocation environment snapshot handed in by the host.
// BlockHeight is the monotonic ordering index every time comparison in the
// contract is based on; the contract never reads a local clock.
type Env struct {
	ContractId  string `json:"contract.id"`
	TxId        string `json:"tx.id"`
	BlockHeight uint64 `json:"block.height"`
	Sender      Sender `json:"sender"`
}
