// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"strconv"
	"time"

	cache "github.com/patrickmn/go-cache"
)

// unpacked records are kept for a short while to avoid repeated
// unpacking on the read-heavy owner/creator lookups
const (
	defaultExpiration = 1 * time.Minute
	cleanupInterval   = 2 * time.Minute
)

type recordCache struct {
	cache *cache.Cache
}

func newRecordCache() *recordCache {
	return &recordCache{
		cache: cache.New(defaultExpiration, cleanupInterval),
	}
}

func cacheKey(assetId uint64) string {
	return strconv.FormatUint(assetId, 10)
}

func (c *recordCache) get(assetId uint64) (Record, bool) {
	obj, found := c.cache.Get(cacheKey(assetId))
	if !found {
		return Record{}, false
	}
	return obj.(Record), true
}

func (c *recordCache) set(assetId uint64, record Record) {
	c.cache.Set(cacheKey(assetId), record, defaultExpiration)
}

func (c *recordCache) invalidate(assetId uint64) {
	c.cache.Delete(cacheKey(assetId))
}
