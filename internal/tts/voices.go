package tts

import (
	"errors"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/nadzzz/voxsplit/internal/lang"
)

// DefaultVoiceCacheSize bounds the number of resolved voices kept in memory.
const DefaultVoiceCacheSize = 16

// ErrNoVoice is returned when no voice can be resolved for a language.
var ErrNoVoice = errors.New("no voice for language")

// Voice is a resolved voice model and the server that hosts it.
type Voice struct {
	Name     string
	Endpoint string
}

// VoiceResolver loads the voice for a language. It is called at most once
// per language while the entry stays cached.
type VoiceResolver func(code lang.Code) (Voice, error)

// VoiceCache memoizes voice resolution per language. Failed resolutions are
// not cached.
type VoiceCache struct {
	mu      sync.Mutex
	cache   *lru.Cache[lang.Code, Voice]
	resolve VoiceResolver
}

// NewVoiceCache creates a cache holding up to size voices.
func NewVoiceCache(size int, resolve VoiceResolver) (*VoiceCache, error) {
	if resolve == nil {
		return nil, fmt.Errorf("voice cache: nil resolver")
	}
	if size <= 0 {
		size = DefaultVoiceCacheSize
	}
	cache, err := lru.New[lang.Code, Voice](size)
	if err != nil {
		return nil, fmt.Errorf("voice cache: %w", err)
	}
	return &VoiceCache{cache: cache, resolve: resolve}, nil
}

// Get returns the voice for code, resolving it on first use.
func (c *VoiceCache) Get(code lang.Code) (Voice, error) {
	if v, ok := c.cache.Get(code); ok {
		return v, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.cache.Get(code); ok {
		return v, nil
	}

	v, err := c.resolve(code)
	if err != nil {
		return Voice{}, fmt.Errorf("resolving voice for %s: %w", code, err)
	}
	c.cache.Add(code, v)
	return v, nil
}

// Len returns the number of cached voices.
func (c *VoiceCache) Len() int { return c.cache.Len() }

// Purge drops every cached voice.
func (c *VoiceCache) Purge() { c.cache.Purge() }
