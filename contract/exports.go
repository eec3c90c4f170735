//go:build wasip1

package contract

// Wasm entry points. Each export parses its JSON payload, rebuilds the Env
// from the host, runs the operation and aborts on error so the host unwinds
// the invocation with no partial state change.

import (
	"encoding/json"

	"gov_dao/sdk"
)

// wasmContract builds the contract over the live host bindings.
func wasmContract() *Contract {
	return New(WasmState{}, WasmHost{})
}

// wasmEnv snapshots the invocation environment once per export.
func wasmEnv() Env {
	env := sdk.GetEnv()
	return Env{
		Height:   env.BlockHeight,
		Sender:   env.Sender.Address,
		Contract: sdk.Address(env.ContractId),
	}
}

// decodePayload unmarshals an export payload or aborts.
func decodePayload[T any](payload *string) *T {
	if payload == nil {
		sdk.Abort("payload required")
	}
	var v T
	if err := json.Unmarshal([]byte(*payload), &v); err != nil {
		sdk.Abort("invalid payload: " + err.Error())
	}
	return &v
}

// encodeResponse marshals a query response or aborts.
func encodeResponse(v interface{}) *string {
	b, err := json.Marshal(v)
	if err != nil {
		sdk.Abort("failed to marshal response: " + err.Error())
	}
	s := string(b)
	return &s
}

// abortOnError converts an operation error into a host abort.
func abortOnError(err error) {
	if err != nil {
		sdk.Abort(err.Error())
	}
}

func strptr(s string) *string { return &s }

//go:wasmexport contract_init
func ContractInit(payload *string) *string {
	msg := decodePayload[InstantiateMsg](payload)
	abortOnError(wasmContract().Instantiate(wasmEnv(), msg))
	return strptr("initialized")
}

//go:wasmexport gov_execute
func GovExecute(payload *string) *string {
	msg := decodePayload[ExecuteMsg](payload)
	abortOnError(wasmContract().Dispatch(wasmEnv(), msg))
	return strptr("ok")
}

//go:wasmexport q_config
func QueryConfigExport(payload *string) *string {
	cfg, err := wasmContract().QueryConfig()
	abortOnError(err)
	return encodeResponse(cfg)
}

//go:wasmexport q_state
func QueryStateExport(payload *string) *string {
	state, err := wasmContract().QueryState()
	abortOnError(err)
	return encodeResponse(state)
}

type stakerQuery struct {
	Address sdk.Address `json:"address"`
}

//go:wasmexport q_staker
func QueryStakerExport(payload *string) *string {
	q := decodePayload[stakerQuery](payload)
	resp, err := wasmContract().QueryStaker(wasmEnv(), q.Address)
	abortOnError(err)
	return encodeResponse(resp)
}

type stakersQuery struct {
	StartAfter *sdk.Address `json:"start_after,omitempty"`
	Limit      *uint32      `json:"limit,omitempty"`
	Order      OrderBy      `json:"order,omitempty"`
}

//go:wasmexport q_stakers
func QueryStakersExport(payload *string) *string {
	q := decodePayload[stakersQuery](payload)
	resp, err := wasmContract().QueryStakers(wasmEnv(), q.StartAfter, q.Limit, q.Order)
	abortOnError(err)
	return encodeResponse(resp)
}

//go:wasmexport q_poll
func QueryPollExport(payload *string) *string {
	q := decodePayload[PollIDMsg](payload)
	poll, err := wasmContract().QueryPoll(q.PollID)
	abortOnError(err)
	return encodeResponse(poll)
}

type pollsQuery struct {
	Status     *PollStatus `json:"status,omitempty"`
	Category   *string     `json:"category,omitempty"`
	StartAfter *uint64     `json:"start_after,omitempty"`
	Limit      *uint32     `json:"limit,omitempty"`
	Order      OrderBy     `json:"order,omitempty"`
}

//go:wasmexport q_polls
func QueryPollsExport(payload *string) *string {
	q := decodePayload[pollsQuery](payload)
	resp, err := wasmContract().QueryPolls(q.Status, q.Category, q.StartAfter, q.Limit, q.Order)
	abortOnError(err)
	return encodeResponse(resp)
}

type votersQuery struct {
	PollID     uint64       `json:"poll_id"`
	StartAfter *sdk.Address `json:"start_after,omitempty"`
	Limit      *uint32      `json:"limit,omitempty"`
	Order      OrderBy      `json:"order,omitempty"`
}

//go:wasmexport q_voters
func QueryVotersExport(payload *string) *string {
	q := decodePayload[votersQuery](payload)
	resp, err := wasmContract().QueryVoters(q.PollID, q.StartAfter, q.Limit, q.Order)
	abortOnError(err)
	return encodeResponse(resp)
}
