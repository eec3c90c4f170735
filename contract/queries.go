package contract

// Read-only query surface. Queries never mutate state, so the
// locked-balance view filters stale entries instead of pruning them.

import (
	"sort"

	"cosmossdk.io/math"

	"gov_dao/sdk"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 30
)

type StakerResponse struct {
	Balance       math.Int             `json:"balance"`
	Share         math.Int             `json:"share"`
	LockedBalance []LockedBalanceEntry `json:"locked_balance"`
}

type StakerEntry struct {
	Address sdk.Address `json:"address"`
	Balance math.Int    `json:"balance"`
	Share   math.Int    `json:"share"`
}

type StakersResponse struct {
	Stakers []StakerEntry `json:"stakers"`
}

type PollsResponse struct {
	Polls []Poll `json:"polls"`
}

type VoterEntry struct {
	Address sdk.Address `json:"address"`
	Vote    VoteOption  `json:"vote"`
	Balance math.Int    `json:"balance"`
}

type VotersResponse struct {
	Voters []VoterEntry `json:"voters"`
}

// QueryConfig returns the parameter singleton.
func (c *Contract) QueryConfig() (*Config, error) {
	return c.loadConfig()
}

// QueryState returns the global counter singleton.
func (c *Contract) QueryState() (*GovState, error) {
	return c.loadGovState()
}

// QueryStaker reports an account's share, its live token value and the
// locked-balance entries still backing in-progress polls.
func (c *Contract) QueryStaker(env Env, addr sdk.Address) (*StakerResponse, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	state, err := c.loadGovState()
	if err != nil {
		return nil, err
	}
	tm := c.loadTokenManager(addr)
	if tm == nil {
		return nil, ErrNothingStaked
	}

	totalBalance := c.host.Balance(cfg.StakeToken, env.Contract).Sub(state.TotalDeposit)
	locked := make([]LockedBalanceEntry, 0, len(tm.LockedBalance))
	for _, entry := range tm.LockedBalance {
		poll, err := c.loadPoll(entry.PollID)
		if err == nil && poll.Status == PollInProgress {
			locked = append(locked, entry)
		}
	}

	return &StakerResponse{
		Balance:       stakerWeight(tm, state, totalBalance),
		Share:         tm.Share,
		LockedBalance: locked,
	}, nil
}

// QueryStakers pages through every account with a share ledger record,
// ordered by address key.
func (c *Contract) QueryStakers(env Env, startAfter *sdk.Address, limit *uint32, order OrderBy) (*StakersResponse, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	state, err := c.loadGovState()
	if err != nil {
		return nil, err
	}
	totalBalance := c.host.Balance(cfg.StakeToken, env.Contract).Sub(state.TotalDeposit)

	var cursor *string
	if startAfter != nil {
		s := startAfter.String()
		cursor = &s
	}
	addrs := paginateStrings(c.indexEntries(idxStakers), cursor, limit, order)

	stakers := make([]StakerEntry, 0, len(addrs))
	for _, a := range addrs {
		addr := sdk.Address(a)
		tm := c.loadTokenManager(addr)
		if tm == nil {
			continue
		}
		stakers = append(stakers, StakerEntry{
			Address: addr,
			Balance: stakerWeight(tm, state, totalBalance),
			Share:   tm.Share,
		})
	}
	return &StakersResponse{Stakers: stakers}, nil
}

// QueryPoll returns one poll by id.
func (c *Contract) QueryPoll(pollID uint64) (*Poll, error) {
	return c.loadPoll(pollID)
}

// QueryPolls pages through polls, optionally filtered by status and/or
// category, ordered by numeric id.
func (c *Contract) QueryPolls(status *PollStatus, category *string, startAfter *uint64, limit *uint32, order OrderBy) (*PollsResponse, error) {
	var ids []uint64
	switch {
	case status != nil && category != nil:
		ids = intersectIDs(
			c.pollIDsFromIndex(pollStatusIndexKey(*status)),
			c.pollIDsFromIndex(pollCategoryIndexKey(*category)),
		)
	case status != nil:
		ids = c.pollIDsFromIndex(pollStatusIndexKey(*status))
	case category != nil:
		ids = c.pollIDsFromIndex(pollCategoryIndexKey(*category))
	default:
		ids = c.pollIDsFromIndex(idxPollAll)
	}
	ids = paginateIDs(ids, startAfter, limit, order)

	polls := make([]Poll, 0, len(ids))
	for _, id := range ids {
		poll, err := c.loadPoll(id)
		if err != nil {
			return nil, err
		}
		polls = append(polls, *poll)
	}
	return &PollsResponse{Polls: polls}, nil
}

// QueryVoters pages through the voter records of one poll, ordered by
// voter address key.
func (c *Contract) QueryVoters(pollID uint64, startAfter *sdk.Address, limit *uint32, order OrderBy) (*VotersResponse, error) {
	if _, err := c.loadPoll(pollID); err != nil {
		return nil, err
	}

	var cursor *string
	if startAfter != nil {
		s := startAfter.String()
		cursor = &s
	}
	addrs := paginateStrings(c.indexEntries(pollVotersIndexKey(pollID)), cursor, limit, order)

	voters := make([]VoterEntry, 0, len(addrs))
	for _, a := range addrs {
		addr := sdk.Address(a)
		info := c.loadVoterInfo(pollID, addr)
		if info == nil {
			continue
		}
		voters = append(voters, VoterEntry{
			Address: addr,
			Vote:    info.Vote,
			Balance: info.Balance,
		})
	}
	return &VotersResponse{Voters: voters}, nil
}

// intersectIDs keeps the ids of a that also appear in b. Both index lists
// are filtered before pagination so the page limit counts returned polls.
func intersectIDs(a, b []uint64) []uint64 {
	inB := make(map[uint64]bool, len(b))
	for _, id := range b {
		inB[id] = true
	}
	out := make([]uint64, 0, len(a))
	for _, id := range a {
		if inB[id] {
			out = append(out, id)
		}
	}
	return out
}

// pageLimit clamps the caller-provided page size.
func pageLimit(limit *uint32) int {
	if limit == nil {
		return defaultPageLimit
	}
	if *limit > maxPageLimit {
		return maxPageLimit
	}
	return int(*limit)
}

// paginateIDs applies start-after cursor, direction and cap to a raw id list.
func paginateIDs(ids []uint64, startAfter *uint64, limit *uint32, order OrderBy) []uint64 {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	if order == OrderDesc {
		for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
			ids[i], ids[j] = ids[j], ids[i]
		}
	}
	out := make([]uint64, 0, pageLimit(limit))
	for _, id := range ids {
		if startAfter != nil {
			if order == OrderDesc && id >= *startAfter {
				continue
			}
			if order != OrderDesc && id <= *startAfter {
				continue
			}
		}
		out = append(out, id)
		if len(out) == pageLimit(limit) {
			break
		}
	}
	return out
}

// paginateStrings is the address-key twin of paginateIDs.
func paginateStrings(keys []string, startAfter *string, limit *uint32, order OrderBy) []string {
	sort.Strings(keys)
	if order == OrderDesc {
		for i, j := 0, len(keys)-1; i < j; i, j = i+1, j-1 {
			keys[i], keys[j] = keys[j], keys[i]
		}
	}
	out := make([]string, 0, pageLimit(limit))
	for _, k := range keys {
		if startAfter != nil {
			if order == OrderDesc && k >= *startAfter {
				continue
			}
			if order != OrderDesc && k <= *startAfter {
				continue
			}
		}
		out = append(out, k)
		if len(out) == pageLimit(limit) {
			break
		}
	}
	return out
}
