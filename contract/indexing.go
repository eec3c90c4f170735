package contract

// Index maintenance. Indexes are chunked id lists in kv state so no single
// value outgrows the host limit. There is no background sweeper: every
// status flip deindexes the old status and indexes the new one in the same
// operation, and locked-balance pruning happens inside withdraw.

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// maxChunkSize caps entries per index chunk to bound value sizes.
const maxChunkSize = 2500

// chunkCounterKey stores the number of chunks for a base index.
func chunkCounterKey(base string) string {
	return base + ":chunks"
}

func chunkKey(base string, chunk int) string {
	return base + ":" + strconv.Itoa(chunk)
}

// getChunkCount reads how many chunks exist for an index.
func (c *Contract) getChunkCount(baseKey string) int {
	ptr := c.store.Get(chunkCounterKey(baseKey))
	if ptr == nil || *ptr == "" {
		return 0
	}
	n, _ := strconv.Atoi(*ptr)
	return n
}

func (c *Contract) setChunkCount(baseKey string, n int) {
	c.store.Set(chunkCounterKey(baseKey), strconv.Itoa(n))
}

// addToIndex ensures the entry exists exactly once across all chunks.
func (c *Contract) addToIndex(baseKey string, entry string) {
	chunks := c.getChunkCount(baseKey)
	for i := 0; i < chunks; i++ {
		key := chunkKey(baseKey, i)
		ptr := c.store.Get(key)
		var entries []string
		if ptr != nil && *ptr != "" {
			if err := json.Unmarshal([]byte(*ptr), &entries); err != nil {
				panic(fmt.Sprintf("corrupt index chunk %s: %v", key, err))
			}
			for _, e := range entries {
				if e == entry {
					return // already present
				}
			}
			if len(entries) < maxChunkSize {
				entries = append(entries, entry)
				b, _ := json.Marshal(entries)
				c.store.Set(key, string(b))
				return
			}
		}
	}
	// no space in existing chunks -> open a new one
	b, _ := json.Marshal([]string{entry})
	c.store.Set(chunkKey(baseKey, chunks), string(b))
	c.setChunkCount(baseKey, chunks+1)
}

// removeFromIndex drops the entry from whichever chunk holds it.
func (c *Contract) removeFromIndex(baseKey string, entry string) {
	chunks := c.getChunkCount(baseKey)
	for i := 0; i < chunks; i++ {
		key := chunkKey(baseKey, i)
		ptr := c.store.Get(key)
		if ptr == nil || *ptr == "" {
			continue
		}
		var entries []string
		if err := json.Unmarshal([]byte(*ptr), &entries); err != nil {
			panic(fmt.Sprintf("corrupt index chunk %s: %v", key, err))
		}
		kept := entries[:0]
		found := false
		for _, e := range entries {
			if e == entry {
				found = true
				continue
			}
			kept = append(kept, e)
		}
		if found {
			b, _ := json.Marshal(kept)
			c.store.Set(key, string(b))
			return
		}
	}
}

// indexEntries collects every entry across all chunks.
func (c *Contract) indexEntries(baseKey string) []string {
	all := []string{}
	chunks := c.getChunkCount(baseKey)
	for i := 0; i < chunks; i++ {
		key := chunkKey(baseKey, i)
		ptr := c.store.Get(key)
		if ptr == nil || *ptr == "" {
			continue
		}
		var entries []string
		if err := json.Unmarshal([]byte(*ptr), &entries); err != nil {
			panic(fmt.Sprintf("corrupt index chunk %s: %v", key, err))
		}
		all = append(all, entries...)
	}
	return all
}

// -----------------------------------------------------------------------------
// Poll id indexes (status, category, all)
// -----------------------------------------------------------------------------

func (c *Contract) addPollToIndex(baseKey string, id uint64) {
	c.addToIndex(baseKey, uint64ToString(id))
}

func (c *Contract) removePollFromIndex(baseKey string, id uint64) {
	c.removeFromIndex(baseKey, uint64ToString(id))
}

// pollIDsFromIndex decodes the string entries back to ids.
func (c *Contract) pollIDsFromIndex(baseKey string) []uint64 {
	entries := c.indexEntries(baseKey)
	ids := make([]uint64, 0, len(entries))
	for _, e := range entries {
		id, err := strconv.ParseUint(e, 10, 64)
		if err != nil {
			panic(fmt.Sprintf("corrupt poll index entry %q: %v", e, err))
		}
		ids = append(ids, id)
	}
	return ids
}

// indexPoll registers a fresh poll under all, status and category indexes.
func (c *Contract) indexPoll(p *Poll) {
	c.addPollToIndex(idxPollAll, p.ID)
	c.addPollToIndex(pollStatusIndexKey(p.Status), p.ID)
	if p.Category != "" {
		c.addPollToIndex(pollCategoryIndexKey(p.Category), p.ID)
	}
}

// reindexPollStatus moves the poll id between status buckets. Colocated with
// every status mutation; the category bucket never changes after creation.
func (c *Contract) reindexPollStatus(id uint64, from, to PollStatus) {
	c.removePollFromIndex(pollStatusIndexKey(from), id)
	c.addPollToIndex(pollStatusIndexKey(to), id)
}
