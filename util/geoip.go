package util

import (
	"net"
	"sync/atomic"
	"time"

	"github.com/oschwald/geoip2-golang"
	cache "github.com/patrickmn/go-cache"
)

var (
	geoipDB        *geoip2.Reader
	geoipCache     = cache.New(24*time.Hour, time.Hour)
	geoipCacheHits int64
	geoipCacheMiss int64
)

// InitGeoIP opens a GeoIP2/GeoLite2 .mmdb file. An empty path disables lookups.
func InitGeoIP(dbPath string) error {
	if dbPath == "" {
		return nil
	}
	r, err := geoip2.Open(dbPath)
	if err != nil {
		return err
	}
	geoipDB = r
	return nil
}

// CloseGeoIP closes the GeoIP DB if opened.
func CloseGeoIP() {
	if geoipDB != nil {
		_ = geoipDB.Close()
		geoipDB = nil
	}
}

// GetIPLocation returns city and country name for ip. Private and loopback addresses,
// unparsable input and a missing database all yield empty strings.
func GetIPLocation(ip string) (string, string) {
	parsed := net.ParseIP(ip)
	if parsed == nil || parsed.IsLoopback() || parsed.IsPrivate() || parsed.IsUnspecified() {
		return "", ""
	}

	if v, ok := geoipCache.Get(ip); ok {
		atomic.AddInt64(&geoipCacheHits, 1)
		if arr, ok := v.([2]string); ok {
			return arr[0], arr[1]
		}
	}
	atomic.AddInt64(&geoipCacheMiss, 1)

	if geoipDB == nil {
		return "", ""
	}
	rec, err := geoipDB.City(parsed)
	if err != nil {
		return "", ""
	}

	city := rec.City.Names["en"]
	country := rec.Country.Names["en"]
	if country == "" {
		country = rec.Country.IsoCode
	}
	geoipCache.Set(ip, [2]string{city, country}, cache.DefaultExpiration)
	return city, country
}

// GetGeoIPCacheMetrics returns the cache hits and misses and current cache size.
func GetGeoIPCacheMetrics() (hits int64, misses int64, size int) {
	return atomic.LoadInt64(&geoipCacheHits), atomic.LoadInt64(&geoipCacheMiss), geoipCache.ItemCount()
}
