////////////////////////////////////////////////////////////////////////////////
// gov_dao: share-staking governance contract
////////////////////////////////////////////////////////////////////////////////

package main

import (
	"fmt"

	"gov_dao/contract"
	"gov_dao/sdk"
)

// Local debug entry. The real contract builds are driven by the wasm exports
// in contract/exports.go; this wires the mocks so a session can poke the
// state machine from the host shell with a persisted state file.
func main() {
	self := sdk.Address("contract:govdao")
	store := contract.NewPersistentMockState("state.json")
	host := contract.NewMockHost(self)
	_ = contract.New(store, host)
	fmt.Println("gov_dao debug state ready, keys:", store.Len())
}
