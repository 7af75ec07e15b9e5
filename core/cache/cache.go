package cache

import (
	"crypto/md5"
	"fmt"
	"io"
	"os"
	"sync"

	"amalgo/core/logger"
)

// SnapshotCache remembers the last seen content hash per file so watch mode
// can skip rebuilds for events that did not change any bytes (editor chmod,
// atomic-save double events, touch).
type SnapshotCache struct {
	hashes map[string]string
	mutex  sync.Mutex
}

var (
	globalCache *SnapshotCache
	cacheOnce   sync.Once
)

func GetCache() *SnapshotCache {
	cacheOnce.Do(func() {
		globalCache = NewSnapshotCache()
		logger.Debug("Initialized global snapshot cache")
	})
	return globalCache
}

func NewSnapshotCache() *SnapshotCache {
	return &SnapshotCache{
		hashes: make(map[string]string),
	}
}

// HasContentChanged hashes the file and compares against the last snapshot,
// updating it. A file that cannot be read (deleted, permissions) counts as
// changed. The first sighting of a path counts as changed.
func (sc *SnapshotCache) HasContentChanged(filePath string) bool {
	sc.mutex.Lock()
	defer sc.mutex.Unlock()

	hash, err := calculateFileHash(filePath)
	if err != nil {
		logger.Debug("Snapshot hash failed for %s: %v", filePath, err)
		delete(sc.hashes, filePath)
		return true
	}

	previous, seen := sc.hashes[filePath]
	sc.hashes[filePath] = hash
	return !seen || previous != hash
}

// InvalidateFile drops the snapshot so the next event always rebuilds.
func (sc *SnapshotCache) InvalidateFile(filePath string) {
	sc.mutex.Lock()
	defer sc.mutex.Unlock()
	delete(sc.hashes, filePath)
}

// Clear resets every snapshot.
func (sc *SnapshotCache) Clear() {
	sc.mutex.Lock()
	defer sc.mutex.Unlock()
	sc.hashes = make(map[string]string)
}

// Len returns the number of tracked files.
func (sc *SnapshotCache) Len() int {
	sc.mutex.Lock()
	defer sc.mutex.Unlock()
	return len(sc.hashes)
}

func calculateFileHash(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", hash.Sum(nil)), nil
}
