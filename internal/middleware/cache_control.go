package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	CacheNoCache = 0
	CacheCustom  = -1
)

// CacheControl sets the cache-control header for a route group.
type CacheControl struct {
	CacheTime int // seconds, defaults to CacheNoCache
}

func (cc *CacheControl) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if cc.CacheTime != CacheCustom {
			if cc.CacheTime == CacheNoCache {
				c.Header("cache-control", "no-cache")
			} else {
				c.Header("cache-control", "private, max-age="+strconv.Itoa(cc.CacheTime))
			}
		}
		c.Next()
	}
}
