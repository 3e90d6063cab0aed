package server

import lru "github.com/hashicorp/golang-lru"

// imageCache keeps rendered PNGs by request key, evicting the least recently
// used entry when full. A zero or negative limit disables caching.
type imageCache struct {
	lru *lru.Cache // nil when disabled
}

func newImageCache(limit int) (*imageCache, error) {
	if limit <= 0 {
		return &imageCache{}, nil
	}
	c, err := lru.New(limit)
	if err != nil {
		return nil, err
	}

	return &imageCache{lru: c}, nil
}

func (c *imageCache) Get(key string) ([]byte, bool) {
	if c.lru == nil {
		return nil, false
	}
	v, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}
	b, ok := v.([]byte)

	return b, ok
}

func (c *imageCache) Put(key string, b []byte) {
	if c.lru == nil {
		return
	}
	c.lru.Add(key, b)
}

func (c *imageCache) Len() int {
	if c.lru == nil {
		return 0
	}

	return c.lru.Len()
}
