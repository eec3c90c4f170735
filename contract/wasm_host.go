//go:build wasip1

package contract

import (
	"encoding/json"
	"fmt"

	"cosmossdk.io/math"

	"gov_dao/sdk"
)

// WasmState binds the State interface to the chain host kv store.
type WasmState struct{}

func (WasmState) Set(key, value string) {
	sdk.StateSetObject(key, value)
}

func (WasmState) Get(key string) *string {
	return sdk.StateGetObject(key)
}

func (WasmState) Delete(key string) {
	sdk.StateDeleteObject(key)
}

// WasmHost binds outbound effects to host syscalls. Token balances and
// transfers go through the stake token contract itself.
type WasmHost struct{}

type transferPayload struct {
	To     string `json:"to"`
	Amount string `json:"amount"`
}

func (WasmHost) Balance(token, holder sdk.Address) math.Int {
	ptr := sdk.ContractStateGet(token.String(), "bal:"+holder.String())
	if ptr == nil || *ptr == "" {
		return math.ZeroInt()
	}
	bal, ok := math.NewIntFromString(*ptr)
	if !ok {
		sdk.Abort(fmt.Sprintf("unreadable balance %q on %s", *ptr, token))
	}
	return bal
}

func (WasmHost) Transfer(token, recipient sdk.Address, amount math.Int) error {
	payload, err := json.Marshal(transferPayload{To: recipient.String(), Amount: amount.String()})
	if err != nil {
		return err
	}
	sdk.ContractCall(token.String(), "transfer", string(payload))
	return nil
}

func (WasmHost) Call(target sdk.Address, msg []byte) error {
	sdk.ContractCall(target.String(), "execute", string(msg))
	return nil
}

func (WasmHost) Log(line string) {
	sdk.Log(line)
}
