package cache

import (
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/mapgrid/tilefetch/pkg/logger"
)

const (
	smallTileSize = 1024      // 1KB
	largeTileSize = 50 * 1024 // 50KB
)

func generateTileData(size int) []byte {
	data := make([]byte, size)
	rand.Read(data)
	return data
}

func setupSQLiteCache(b *testing.B) *SQLiteCache {
	b.Helper()
	tmpFile := filepath.Join(b.TempDir(), "test.db")
	cache, err := NewSQLiteCache(tmpFile, logger.Nop())
	if err != nil {
		b.Fatalf("Failed to create SQLite cache: %v", err)
	}
	b.Cleanup(func() { cache.Close() })
	return cache
}

func benchmarkSet(b *testing.B, cache TileCache, size int) {
	data := generateTileData(size)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		key := TileCacheKey{SourceKey: "bench", X: i % 1000, Y: i % 1000, Z: i % 20}
		if err := cache.Set(key, data); err != nil {
			b.Fatalf("Set failed: %v", err)
		}
	}
}

func benchmarkGet(b *testing.B, cache TileCache, size int) {
	data := generateTileData(size)
	for i := 0; i < 100; i++ {
		key := TileCacheKey{SourceKey: "bench", X: i, Y: i, Z: i % 20}
		cache.Set(key, data)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		key := TileCacheKey{SourceKey: "bench", X: i % 100, Y: i % 100, Z: i % 20}
		_, _, err := cache.Get(key)
		if err != nil {
			b.Fatalf("Get failed: %v", err)
		}
	}
}

func BenchmarkSet_SQLite_Small(b *testing.B)     { benchmarkSet(b, setupSQLiteCache(b), smallTileSize) }
func BenchmarkSet_SQLite_Large(b *testing.B)     { benchmarkSet(b, setupSQLiteCache(b), largeTileSize) }
func BenchmarkSet_Map_Small(b *testing.B)        { benchmarkSet(b, NewMapCache(), smallTileSize) }
func BenchmarkSet_Map_Large(b *testing.B)        { benchmarkSet(b, NewMapCache(), largeTileSize) }
func BenchmarkSet_Filesystem_Small(b *testing.B) { benchmarkSet(b, NewFilesystemCache(b.TempDir()), smallTileSize) }
func BenchmarkSet_Filesystem_Large(b *testing.B) { benchmarkSet(b, NewFilesystemCache(b.TempDir()), largeTileSize) }

func BenchmarkGet_SQLite_Small(b *testing.B)     { benchmarkGet(b, setupSQLiteCache(b), smallTileSize) }
func BenchmarkGet_Map_Small(b *testing.B)        { benchmarkGet(b, NewMapCache(), smallTileSize) }
func BenchmarkGet_Filesystem_Small(b *testing.B) { benchmarkGet(b, NewFilesystemCache(b.TempDir()), smallTileSize) }

// Concurrent mixed operations (80% reads, 20% writes - typical cache pattern)
func benchmarkConcurrent(b *testing.B, cache TileCache) {
	data := generateTileData(smallTileSize)

	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			key := TileCacheKey{SourceKey: "bench", X: i % 100, Y: i % 100, Z: i % 20}
			if i%5 == 0 {
				cache.Set(key, data)
			} else {
				cache.Get(key)
			}
			i++
		}
	})
}

func BenchmarkConcurrent_Map(b *testing.B)        { benchmarkConcurrent(b, NewMapCache()) }
func BenchmarkConcurrent_Filesystem(b *testing.B) { benchmarkConcurrent(b, NewFilesystemCache(b.TempDir())) }
