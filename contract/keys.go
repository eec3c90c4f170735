package contract

import "gov_dao/sdk"

// -----------------------------------------------------------------------------
// Storage Key Prefixes
// -----------------------------------------------------------------------------

const (
	// kConfig stores the serialized Config singleton.
	kConfig byte = 0x01
	// kGovState stores the GovState counter singleton.
	kGovState byte = 0x02
	// kTokenManager houses encoded per-account share ledger records.
	kTokenManager byte = 0x03
	// kPoll contains encoded Poll records by id.
	kPoll byte = 0x10
	// kVoter stores VoterInfo per poll+address for per-poll range reads.
	kVoter byte = 0x11
	// kTmpPollID is the one-shot register bridging execute and fail.
	kTmpPollID byte = 0x20
)

// Index base keys (string prefixes, chunked id lists - see indexing.go).
const (
	idxPollAll      = "poll:all"   // every poll id ever created
	idxPollStatus   = "poll:s:"    // + status            // poll ids per status
	idxPollCategory = "poll:c:"    // + category          // poll ids per category
	idxStakers      = "stakers"    // every account with a TokenManager
	idxPollVoters   = "poll:vtrs:" // + pollID            // voter addresses per poll
)

// packU64LEInline sprinkles a uint64 into dst in little-endian order so our keys stay compact.
func packU64LEInline(x uint64, dst []byte) {
	dst[0] = byte(x)
	dst[1] = byte(x >> 8)
	dst[2] = byte(x >> 16)
	dst[3] = byte(x >> 24)
	dst[4] = byte(x >> 32)
	dst[5] = byte(x >> 40)
	dst[6] = byte(x >> 48)
	dst[7] = byte(x >> 56)
}

// packU64LE appends the encoded number to dst and returns the new slice.
func packU64LE(x uint64, dst []byte) []byte {
	return append(dst,
		byte(x),
		byte(x>>8),
		byte(x>>16),
		byte(x>>24),
		byte(x>>32),
		byte(x>>40),
		byte(x>>48),
		byte(x>>56),
	)
}

// configKey is the fixed slot of the Config singleton.
func configKey() string {
	return string([]byte{kConfig})
}

// govStateKey is the fixed slot of the GovState singleton.
func govStateKey() string {
	return string([]byte{kGovState})
}

// tokenManagerKey mixes the prefix with address bytes, one record per account.
func tokenManagerKey(addr sdk.Address) string {
	addrStr := addr.String()
	buf := make([]byte, 0, 1+len(addrStr))
	buf = append(buf, kTokenManager)
	buf = append(buf, addrStr...)
	return string(buf)
}

// pollKey encodes the id under the 0x10 prefix keeping poll blobs contiguous.
func pollKey(id uint64) string {
	var buf [9]byte
	buf[0] = kPoll
	packU64LEInline(id, buf[1:])
	return string(buf[:])
}

// voterKey scopes a VoterInfo to poll id plus voter address.
func voterKey(pollID uint64, addr sdk.Address) string {
	addrStr := addr.String()
	buf := make([]byte, 0, 1+8+len(addrStr))
	buf = append(buf, kVoter)
	buf = packU64LE(pollID, buf)
	buf = append(buf, addrStr...)
	return string(buf)
}

// tmpPollIDKey is the single-slot register written by execute, read by fail.
func tmpPollIDKey() string {
	return string([]byte{kTmpPollID})
}

// pollStatusIndexKey builds the chunked-index base key for one status.
func pollStatusIndexKey(status PollStatus) string {
	return idxPollStatus + status.String()
}

// pollCategoryIndexKey builds the chunked-index base key for one category.
func pollCategoryIndexKey(category string) string {
	return idxPollCategory + category
}

// pollVotersIndexKey lists who voted on a poll, for the Voters query and
// for deleting voter records during lazy cleanup.
func pollVotersIndexKey(pollID uint64) string {
	return idxPollVoters + uint64ToString(pollID)
}
