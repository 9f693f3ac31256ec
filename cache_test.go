package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/buntdb"
)

func TestScanCacheRoundTrip(t *testing.T) {
	sc := newScanCache(filepath.Join(t.TempDir(), "cache.db"), time.Hour)
	want := &scanResult{
		Pages:   []pageLayout{{Index: 0, Box: mediaBox{0, 0, 612, 792}, Content: []Rect{{72, 80, 300, 96}}}},
		Matches: []Match{heading(0, 80, "Sample Exercise 1.1")},
		Hits:    2,
	}

	require.NoError(t, sc.put("k", want))
	got, err := sc.get("k")

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestScanCacheMiss(t *testing.T) {
	sc := newScanCache(filepath.Join(t.TempDir(), "cache.db"), time.Hour)

	_, err := sc.get("missing")

	assert.ErrorIs(t, err, buntdb.ErrNotFound)
}

func TestScanKey(t *testing.T) {
	c, err := loadConfig("")
	require.NoError(t, err)

	a := scanKey([]byte("%PDF-1.4 a"), &c)
	assert.Equal(t, a, scanKey([]byte("%PDF-1.4 a"), &c))
	assert.NotEqual(t, a, scanKey([]byte("%PDF-1.4 b"), &c))

	c.MinFontSize = 11
	assert.NotEqual(t, a, scanKey([]byte("%PDF-1.4 a"), &c), "detection settings are part of the key")

	c.MinFontSize = 10
	c.HeaderMargin = 50
	assert.Equal(t, a, scanKey([]byte("%PDF-1.4 a"), &c), "bounds settings are not")
}
