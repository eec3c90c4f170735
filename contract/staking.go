package contract

// -----------------------------------------------------------------------------
// Share Ledger (stake / withdraw)
//
// Shares are pool-relative: an account's token value is
// share * total_balance / total_share, where total_balance is the contract's
// stake-token balance minus live poll deposits. The pool can grow from
// external yield without touching per-account records.
// -----------------------------------------------------------------------------

import (
	"encoding/json"
	"fmt"

	"cosmossdk.io/math"

	"gov_dao/sdk"
)

// mulDivFloor computes a*num/den with floor rounding, zero when den is zero.
func mulDivFloor(a, num, den math.Int) math.Int {
	if den.IsZero() {
		return math.ZeroInt()
	}
	return a.Mul(num).Quo(den)
}

// Receive is the token-transfer callback: the stake token contract invokes it
// after crediting msg.Amount to this contract. It is the only way tokens
// enter the ledger, so any other caller is rejected before the hook is read.
func (c *Contract) Receive(env Env, msg *ReceiveMsg) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if env.Sender != cfg.StakeToken {
		return ErrUnauthorized
	}

	var hook ReceiveHookMsg
	if err := json.Unmarshal(msg.Msg, &hook); err != nil {
		return fmt.Errorf("%w: %v", ErrUnknownMsg, err)
	}
	switch {
	case hook.StakeVotingTokens != nil:
		return c.stakeVotingTokens(env, cfg, msg.Sender, msg.Amount)
	case hook.CreatePoll != nil:
		_, err := c.createPoll(env, cfg, msg.Sender, msg.Amount, hook.CreatePoll)
		return err
	}
	return ErrUnknownMsg
}

// stakeVotingTokens converts the received amount into shares against the
// pre-stake pool size. The received amount is already part of the queried
// balance, so it is subtracted back out before the ratio is taken.
func (c *Contract) stakeVotingTokens(env Env, cfg *Config, staker sdk.Address, amount math.Int) error {
	if !amount.IsPositive() {
		return ErrInsufficientFunds
	}
	state, err := c.loadGovState()
	if err != nil {
		return err
	}

	tm := c.loadTokenManager(staker)
	if tm == nil {
		tm = &TokenManager{Share: math.ZeroInt()}
		c.addToIndex(idxStakers, staker.String())
	}

	balance := c.host.Balance(cfg.StakeToken, env.Contract)
	totalBalance := balance.Sub(amount).Sub(state.TotalDeposit)

	var share math.Int
	if totalBalance.IsZero() || state.TotalShare.IsZero() {
		share = amount
	} else {
		share = amount.Mul(state.TotalShare).Quo(totalBalance)
	}

	tm.Share = tm.Share.Add(share)
	state.TotalShare = state.TotalShare.Add(share)
	c.saveTokenManager(staker, tm)
	c.saveGovState(state)

	c.emitStakedEvent(staker, amount, share)
	return nil
}

// WithdrawVotingTokens converts shares back to tokens and transfers them out.
// A nil amount withdraws everything not locked behind an in-progress vote.
func (c *Contract) WithdrawVotingTokens(env Env, amount *math.Int) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	state, err := c.loadGovState()
	if err != nil {
		return err
	}
	tm := c.loadTokenManager(env.Sender)
	if tm == nil {
		return ErrNothingStaked
	}
	if amount != nil && !amount.IsPositive() {
		return ErrInvalidWithdrawAmount
	}

	totalBalance := c.host.Balance(cfg.StakeToken, env.Contract).Sub(state.TotalDeposit)
	lockedAmount := c.pruneLockedBalance(env.Sender, tm)
	// Cleanup sticks even when the withdraw itself is rejected below.
	c.saveTokenManager(env.Sender, tm)
	lockedShare := mulDivFloor(lockedAmount, state.TotalShare, totalBalance)
	userShare := tm.Share

	var withdrawShare, withdrawAmount math.Int
	if amount != nil {
		// floor at one share so a positive withdrawal can never be free
		withdrawShare = mulDivFloor(*amount, state.TotalShare, totalBalance)
		if withdrawShare.LT(math.OneInt()) {
			withdrawShare = math.OneInt()
		}
		withdrawAmount = *amount
	} else {
		withdrawShare = userShare.Sub(lockedShare)
		withdrawAmount = mulDivFloor(withdrawShare, totalBalance, state.TotalShare)
	}

	if lockedShare.Add(withdrawShare).GT(userShare) {
		return ErrInvalidWithdrawAmount
	}

	tm.Share = userShare.Sub(withdrawShare)
	state.TotalShare = state.TotalShare.Sub(withdrawShare)
	c.saveTokenManager(env.Sender, tm)
	c.saveGovState(state)

	if err := c.host.Transfer(cfg.StakeToken, env.Sender, withdrawAmount); err != nil {
		return err
	}
	c.emitWithdrawnEvent(env.Sender, withdrawAmount, withdrawShare)
	return nil
}

// pruneLockedBalance drops locked-balance entries whose poll left InProgress,
// deletes their voter records, and returns the largest still-locked token
// amount. This is the lazy-cleanup invariant: there is no scheduler to sweep
// stale entries, so the operations that need the up-to-date view pay for it.
func (c *Contract) pruneLockedBalance(addr sdk.Address, tm *TokenManager) math.Int {
	locked := math.ZeroInt()
	kept := tm.LockedBalance[:0]
	for _, entry := range tm.LockedBalance {
		poll, err := c.loadPoll(entry.PollID)
		if err == nil && poll.Status == PollInProgress {
			kept = append(kept, entry)
			if entry.Info.Balance.GT(locked) {
				locked = entry.Info.Balance
			}
			continue
		}
		c.deleteVoterInfo(entry.PollID, addr)
	}
	tm.LockedBalance = kept
	return locked
}

// stakerWeight is the spendable voting weight of an account at call time.
func stakerWeight(tm *TokenManager, state *GovState, totalBalance math.Int) math.Int {
	return mulDivFloor(tm.Share, totalBalance, state.TotalShare)
}
