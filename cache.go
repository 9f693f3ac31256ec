package main

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/tidwall/buntdb"
)

// scanResult is everything the bounds step needs from a scan.
type scanResult struct {
	Pages    []pageLayout `json:"pages"`
	Matches  []Match      `json:"matches"`
	Hits     int          `json:"hits"` // pattern matches before heading filtering
	Failures int          `json:"failures"`
}

// scanCache keeps scan results of previously seen documents.
type scanCache struct {
	path string
	ttl  time.Duration
}

func cacheDBFilePath() string {
	cacheDir := filepath.Join(xdg.CacheHome, "exclip")
	_, err := os.Stat(cacheDir)
	if os.IsNotExist(err) {
		err = os.MkdirAll(cacheDir, 0o755)
		if err != nil {
			logger.Printf("could not create directory %s: %v", cacheDir, err)
		}
	}

	return filepath.Join(cacheDir, "cache.db")
}

func newScanCache(path string, ttl time.Duration) *scanCache {
	return &scanCache{path: path, ttl: ttl}
}

// scanKey identifies a document by content plus the detection settings.
func scanKey(pdfBytes []byte, c *Config) string {
	doc := sha256.Sum256(pdfBytes)
	settings := sha256.Sum256([]byte(c.detectionKey()))
	return "scan:" + hex.EncodeToString(doc[:]) + ":" + hex.EncodeToString(settings[:8])
}

func (sc *scanCache) get(key string) (*scanResult, error) {
	db, err := buntdb.Open(sc.path)
	if err != nil {
		logger.Println("scanCache.get() buntdb.Open - ", err)
		return nil, err
	}
	defer db.Close()

	var val string
	err = db.View(func(tx *buntdb.Tx) error {
		val, err = tx.Get(key)
		return err
	})
	if err != nil {
		return nil, err
	}

	var r scanResult
	if err := json.Unmarshal([]byte(val), &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (sc *scanCache) put(key string, r *scanResult) error {
	b, err := json.Marshal(r)
	if err != nil {
		return err
	}

	db, err := buntdb.Open(sc.path)
	if err != nil {
		logger.Println("scanCache.put() buntdb.Open - ", err)
		return err
	}
	defer db.Close()

	return db.Update(func(tx *buntdb.Tx) error {
		opts := &buntdb.SetOptions{Expires: sc.ttl > 0, TTL: sc.ttl}
		_, _, err := tx.Set(key, string(b), opts)
		return err
	})
}
