package contract

////////////////////////////////////////////////////////////////////////////////
// Contract State Persistence helpers
////////////////////////////////////////////////////////////////////////////////

import (
	"encoding/json"
	"fmt"
	"strconv"

	"gov_dao/sdk"
)

// mustUnmarshal decodes a stored record. A record we wrote ourselves failing
// to decode means corrupt state, which nothing in this contract can recover from.
func mustUnmarshal(data string, v interface{}, what string) {
	if err := json.Unmarshal([]byte(data), v); err != nil {
		panic(fmt.Sprintf("corrupt %s record: %v", what, err))
	}
}

func mustMarshal(v interface{}, what string) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("failed to marshal %s: %v", what, err))
	}
	return string(b)
}

func (c *Contract) saveConfig(cfg *Config) {
	c.store.Set(configKey(), mustMarshal(cfg, "config"))
}

func (c *Contract) loadConfig() (*Config, error) {
	ptr := c.store.Get(configKey())
	if ptr == nil || *ptr == "" {
		return nil, ErrNotInitialized
	}
	var cfg Config
	mustUnmarshal(*ptr, &cfg, "config")
	return &cfg, nil
}

func (c *Contract) saveGovState(s *GovState) {
	c.store.Set(govStateKey(), mustMarshal(s, "state"))
}

func (c *Contract) loadGovState() (*GovState, error) {
	ptr := c.store.Get(govStateKey())
	if ptr == nil || *ptr == "" {
		return nil, ErrNotInitialized
	}
	var s GovState
	mustUnmarshal(*ptr, &s, "state")
	return &s, nil
}

func (c *Contract) saveTokenManager(addr sdk.Address, tm *TokenManager) {
	c.store.Set(tokenManagerKey(addr), mustMarshal(tm, "token manager"))
}

// loadTokenManager returns nil when the account never staked.
func (c *Contract) loadTokenManager(addr sdk.Address) *TokenManager {
	ptr := c.store.Get(tokenManagerKey(addr))
	if ptr == nil || *ptr == "" {
		return nil
	}
	var tm TokenManager
	mustUnmarshal(*ptr, &tm, "token manager")
	return &tm
}

func (c *Contract) savePoll(p *Poll) {
	c.store.Set(pollKey(p.ID), mustMarshal(p, "poll"))
}

func (c *Contract) loadPoll(id uint64) (*Poll, error) {
	ptr := c.store.Get(pollKey(id))
	if ptr == nil || *ptr == "" {
		return nil, ErrPollNotFound
	}
	var p Poll
	mustUnmarshal(*ptr, &p, "poll")
	return &p, nil
}

func (c *Contract) saveVoterInfo(pollID uint64, addr sdk.Address, info *VoterInfo) {
	c.store.Set(voterKey(pollID, addr), mustMarshal(info, "voter info"))
	c.addToIndex(pollVotersIndexKey(pollID), addr.String())
}

// loadVoterInfo returns nil when the account has not voted on the poll.
func (c *Contract) loadVoterInfo(pollID uint64, addr sdk.Address) *VoterInfo {
	ptr := c.store.Get(voterKey(pollID, addr))
	if ptr == nil || *ptr == "" {
		return nil
	}
	var info VoterInfo
	mustUnmarshal(*ptr, &info, "voter info")
	return &info
}

// deleteVoterInfo drops the record and its voter-index entry, the lazy
// cleanup path taken while pruning locked balances.
func (c *Contract) deleteVoterInfo(pollID uint64, addr sdk.Address) {
	c.store.Delete(voterKey(pollID, addr))
	c.removeFromIndex(pollVotersIndexKey(pollID), addr.String())
}

// saveTmpPollID arms the one-shot register the failure handler reads.
func (c *Contract) saveTmpPollID(id uint64) {
	c.store.Set(tmpPollIDKey(), uint64ToString(id))
}

// loadTmpPollID returns false when no execution is in flight.
func (c *Contract) loadTmpPollID() (uint64, bool) {
	ptr := c.store.Get(tmpPollIDKey())
	if ptr == nil || *ptr == "" {
		return 0, false
	}
	id, err := strconv.ParseUint(*ptr, 10, 64)
	if err != nil {
		panic(fmt.Sprintf("corrupt tmp poll register %q: %v", *ptr, err))
	}
	return id, true
}

func (c *Contract) clearTmpPollID() {
	c.store.Delete(tmpPollIDKey())
}

// uint64ToString turns an id into decimal text for index entries and events.
func uint64ToString(val uint64) string {
	return strconv.FormatUint(val, 10)
}
