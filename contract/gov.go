package contract

// -----------------------------------------------------------------------------
// Contract Initialization & Configuration
// -----------------------------------------------------------------------------

import (
	"cosmossdk.io/math"
)

// maxRatio bounds quorum and threshold parameters.
var maxRatio = math.LegacyOneDec()

// Instantiate stores the protocol parameters with the caller as owner.
// Must run before any other operation.
func (c *Contract) Instantiate(env Env, msg *InstantiateMsg) error {
	if ptr := c.store.Get(configKey()); ptr != nil && *ptr != "" {
		return ErrAlreadyInitialized
	}
	if msg.Quorum.IsNegative() || msg.Quorum.GT(maxRatio) {
		return ErrInvalidQuorum
	}
	if msg.Threshold.IsNegative() || msg.Threshold.GT(maxRatio) {
		return ErrInvalidThreshold
	}

	cfg := Config{
		Owner:            env.Sender,
		StakeToken:       msg.StakeToken,
		Quorum:           msg.Quorum,
		Threshold:        msg.Threshold,
		VotingPeriod:     msg.VotingPeriod,
		TimelockPeriod:   msg.TimelockPeriod,
		ExpirationPeriod: msg.ExpirationPeriod,
		ProposalDeposit:  msg.ProposalDeposit,
		SnapshotPeriod:   msg.SnapshotPeriod,
	}
	c.saveConfig(&cfg)
	c.saveGovState(&GovState{
		PollCount:    0,
		TotalShare:   math.ZeroInt(),
		TotalDeposit: math.ZeroInt(),
	})

	c.emitInitEvent(cfg.Owner, cfg.StakeToken)
	return nil
}

// UpdateConfig applies the given partial fields, owner only. Ratio fields are
// re-validated the same way Instantiate validates them.
func (c *Contract) UpdateConfig(env Env, msg *UpdateConfigMsg) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if env.Sender != cfg.Owner {
		return ErrUnauthorized
	}

	if msg.Quorum != nil {
		if msg.Quorum.IsNegative() || msg.Quorum.GT(maxRatio) {
			return ErrInvalidQuorum
		}
		cfg.Quorum = *msg.Quorum
	}
	if msg.Threshold != nil {
		if msg.Threshold.IsNegative() || msg.Threshold.GT(maxRatio) {
			return ErrInvalidThreshold
		}
		cfg.Threshold = *msg.Threshold
	}
	if msg.Owner != nil {
		cfg.Owner = *msg.Owner
	}
	if msg.VotingPeriod != nil {
		cfg.VotingPeriod = *msg.VotingPeriod
	}
	if msg.TimelockPeriod != nil {
		cfg.TimelockPeriod = *msg.TimelockPeriod
	}
	if msg.ExpirationPeriod != nil {
		cfg.ExpirationPeriod = *msg.ExpirationPeriod
	}
	if msg.ProposalDeposit != nil {
		cfg.ProposalDeposit = *msg.ProposalDeposit
	}
	if msg.SnapshotPeriod != nil {
		cfg.SnapshotPeriod = *msg.SnapshotPeriod
	}

	c.saveConfig(cfg)
	c.emitConfigUpdatedEvent(cfg.Owner)
	return nil
}
