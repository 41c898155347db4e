package cache

import (
	"log"

	"github.com/dgraph-io/ristretto"
)

var globalCache *ristretto.Cache

func Init() {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e4,
		MaxCost:     1 << 26,
		BufferItems: 64,
	})
	if err != nil {
		log.Fatalf("cache.Init: err = %s", err)
		return
	}
	globalCache = cache
}

func Cache() *ristretto.Cache {
	return globalCache
}
