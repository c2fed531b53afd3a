// Package cache provides a small generic LRU cache.
//
//	c := cache.New[glyphKey, []path.Element](512)
//	outline := c.GetOrCreate(key, func() []path.Element { return load(key) })
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
