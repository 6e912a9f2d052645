package cache

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/coocood/freecache"
)

// minimum freecache size is 512KB, smaller sizes are bumped up by freecache itself
const DefaultSizeBytes = 16 * 1024 * 1024

type Cache interface {
	Get(key []byte) ([]byte, bool)
	Set(key, value []byte) error
	Clear()
}

var _ Cache = (*PrescriptionCache)(nil)

// PrescriptionCache keeps computed warm-up prescriptions in process memory.
type PrescriptionCache struct {
	mainCache *freecache.Cache
	ttl       time.Duration
}

func NewPrescriptionCache(sizeBytes int, ttl time.Duration) *PrescriptionCache {
	if sizeBytes <= 0 {
		sizeBytes = DefaultSizeBytes
	}
	return &PrescriptionCache{
		mainCache: freecache.NewCache(sizeBytes),
		ttl:       ttl,
	}
}

func (pc *PrescriptionCache) Get(key []byte) ([]byte, bool) {
	val, err := pc.mainCache.Get(key)
	if err != nil {
		return nil, false
	}
	return val, true
}

func (pc *PrescriptionCache) Set(key, value []byte) error {
	if err := pc.mainCache.Set(key, value, expireSeconds(pc.ttl)); err != nil {
		if errors.Is(err, freecache.ErrLargeEntry) || errors.Is(err, freecache.ErrLargeKey) {
			return fmt.Errorf("cache entry too large: %w", err)
		}
		return err
	}
	return nil
}

// expireSeconds rounds sub-second remainders up, so a positive ttl never
// becomes 0, which freecache treats as "never expire".
func expireSeconds(ttl time.Duration) int {
	if ttl <= 0 {
		return 0
	}
	return int(math.Ceil(ttl.Seconds()))
}

func (pc *PrescriptionCache) Clear() {
	pc.mainCache.Clear()
}

func (pc *PrescriptionCache) EntryCount() int64 {
	return pc.mainCache.EntryCount()
}
