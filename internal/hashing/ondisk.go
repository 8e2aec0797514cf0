package hashing

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/arcbit/pgnforge/internal/chess"
	"github.com/arcbit/pgnforge/internal/engine"
	"github.com/arcbit/pgnforge/internal/worker"
)

// onDiskSourceWidth is the fixed width given to a source filename in an
// on-disk record. Longer names are truncated; this trades perfect fidelity
// for records a binary search can index by position.
const onDiskSourceWidth = 64

// onDiskRecordSize is hash(8) + moveCount(4) + weakHash(8) + source(64).
const onDiskRecordSize = 8 + 4 + 8 + onDiskSourceWidth

// OnDiskDuplicateDetector is the "dataset exceeds memory" backend: the sorted
// bulk of known fingerprints lives in a file and is located by binary search,
// while newly-seen games accumulate in a small in-memory slice that's merged
// into the file once it grows past mergeThreshold. This keeps lookups
// logarithmic without holding every fingerprint in RAM at once.
type OnDiskDuplicateDetector struct {
	mu             sync.Mutex
	path           string
	useExactMatch  bool
	sortedCount    int64
	pending        []GameSignature
	mergeThreshold int
	duplicateCount int
}

// NewOnDiskDuplicateDetector opens (creating if necessary) the sorted store
// at path.
func NewOnDiskDuplicateDetector(path string, exactMatch bool) (*OnDiskDuplicateDetector, error) {
	d := &OnDiskDuplicateDetector{
		path:           path,
		useExactMatch:  exactMatch,
		mergeThreshold: 4096,
	}

	f, err := os.OpenFile(path, os.O_RDONLY, 0) //nolint:gosec // G304: caller-specified hash store path
	if err != nil {
		if os.IsNotExist(err) {
			return d, nil
		}
		return nil, fmt.Errorf("opening on-disk hash store: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stating on-disk hash store: %w", err)
	}
	d.sortedCount = info.Size() / onDiskRecordSize
	return d, nil
}

// CheckAndAdd checks if a game is a duplicate and adds it to the store.
func (d *OnDiskDuplicateDetector) CheckAndAdd(game *chess.Game, board *chess.Board) bool {
	isDup, _ := d.CheckAndAddWithSource(game, board, "")
	return isDup
}

// CheckAndAddWithSource is CheckAndAdd with first-seen-file tracking, mirroring
// DuplicateDetector.CheckAndAddWithSource.
func (d *OnDiskDuplicateDetector) CheckAndAddWithSource(game *chess.Game, board *chess.Board, sourceFile string) (isDuplicate bool, firstSeenIn string) {
	if board == nil {
		return false, ""
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	sig := GameSignature{
		Hash:       GenerateZobristHash(board),
		MoveCount:  countMoves(game),
		WeakHash:   WeakHash(board),
		SourceFile: sourceFile,
	}

	for _, p := range d.pending {
		if d.signaturesMatch(sig, p) {
			d.duplicateCount++
			return true, p.SourceFile
		}
	}

	if found, err := d.searchFile(sig.Hash); err == nil {
		for _, f := range found {
			if d.signaturesMatch(sig, f) {
				d.duplicateCount++
				return true, f.SourceFile
			}
		}
	}

	d.pending = append(d.pending, sig)
	if len(d.pending) >= d.mergeThreshold {
		_ = d.merge()
	}
	return false, ""
}

func (d *OnDiskDuplicateDetector) signaturesMatch(a, b GameSignature) bool {
	if a.Hash != b.Hash || a.WeakHash != b.WeakHash {
		return false
	}
	return !d.useExactMatch || a.MoveCount == b.MoveCount
}

// DuplicateCount returns the number of duplicates detected so far.
func (d *OnDiskDuplicateDetector) DuplicateCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.duplicateCount
}

// UniqueCount returns the number of unique fingerprints recorded so far,
// sorted and pending combined.
func (d *OnDiskDuplicateDetector) UniqueCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return int(d.sortedCount) + len(d.pending)
}

// Flush merges any pending entries into the sorted file. Callers should call
// this (or Close) before reading the store from another process.
func (d *OnDiskDuplicateDetector) Flush() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.merge()
}

// Close flushes pending entries. The store has no open file handle to
// release between calls, so Close is just a named Flush.
func (d *OnDiskDuplicateDetector) Close() error {
	return d.Flush()
}

// BuildFromGames replays games in parallel across numWorkers to compute their
// fingerprints, then appends the results and merge-sorts the store. Fingerprint
// computation has no ordering requirement, unlike the single-threaded main
// pipeline, so this is the one place a worker pool legitimately buys
// throughput.
func (d *OnDiskDuplicateDetector) BuildFromGames(games []*chess.Game, sourceFile string, numWorkers int) error {
	if len(games) == 0 {
		return nil
	}

	pool := worker.NewPool(numWorkers, len(games), func(item worker.WorkItem) worker.ProcessResult {
		board := engine.NewBoardForGame(item.Game)
		for move := item.Game.Moves; move != nil; move = move.Next {
			if !engine.ApplyMove(board, move) {
				break
			}
		}
		return worker.ProcessResult{Game: item.Game, Index: item.Index, Board: board}
	})
	pool.Start()
	for i, g := range games {
		pool.Submit(worker.WorkItem{Game: g, Index: i})
	}
	pool.Close()

	for result := range pool.Results() {
		if result.Board == nil {
			continue
		}
		d.CheckAndAddWithSource(result.Game, result.Board, sourceFile)
	}
	return d.Flush()
}

// searchFile binary-searches the sorted region for records with the given
// hash, returning every record with a matching hash (collisions are rare but
// not impossible with a 64-bit hash).
func (d *OnDiskDuplicateDetector) searchFile(hash uint64) ([]GameSignature, error) {
	if d.sortedCount == 0 {
		return nil, nil
	}

	f, err := os.Open(d.path) //nolint:gosec // G304: caller-specified hash store path
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	lo, hi := int64(0), d.sortedCount-1
	var at int64 = -1
	for lo <= hi {
		mid := lo + (hi-lo)/2
		rec, err := readOnDiskRecord(f, mid)
		if err != nil {
			return nil, err
		}
		switch {
		case rec.Hash == hash:
			at = mid
			hi = mid - 1 // walk to the first matching record
		case rec.Hash < hash:
			lo = mid + 1
		default:
			hi = mid - 1
		}
	}
	if at < 0 {
		return nil, nil
	}

	var matches []GameSignature
	for i := at; i < d.sortedCount; i++ {
		rec, err := readOnDiskRecord(f, i)
		if err != nil {
			return nil, err
		}
		if rec.Hash != hash {
			break
		}
		matches = append(matches, rec)
	}
	return matches, nil
}

// merge combines the sorted file contents with pending entries and rewrites
// the store as a single sorted file. Must be called with d.mu held.
func (d *OnDiskDuplicateDetector) merge() error {
	if len(d.pending) == 0 {
		return nil
	}

	all := make([]GameSignature, 0, int(d.sortedCount)+len(d.pending))
	if d.sortedCount > 0 {
		f, err := os.Open(d.path) //nolint:gosec // G304: caller-specified hash store path
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("reading on-disk hash store: %w", err)
		}
		if err == nil {
			for i := int64(0); i < d.sortedCount; i++ {
				rec, err := readOnDiskRecord(f, i)
				if err != nil {
					f.Close()
					return err
				}
				all = append(all, rec)
			}
			f.Close()
		}
	}
	all = append(all, d.pending...)
	sort.Slice(all, func(i, j int) bool { return all[i].Hash < all[j].Hash })

	tmpPath := d.path + ".tmp"
	out, err := os.Create(tmpPath) //nolint:gosec // G304: caller-specified hash store path
	if err != nil {
		return fmt.Errorf("creating on-disk hash store: %w", err)
	}
	w := bufio.NewWriter(out)
	for _, sig := range all {
		if err := writeOnDiskRecord(w, sig); err != nil {
			out.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, d.path); err != nil {
		return fmt.Errorf("installing merged hash store: %w", err)
	}

	d.sortedCount = int64(len(all))
	d.pending = d.pending[:0]
	return nil
}

func readOnDiskRecord(f *os.File, index int64) (GameSignature, error) {
	buf := make([]byte, onDiskRecordSize)
	if _, err := f.ReadAt(buf, index*onDiskRecordSize); err != nil {
		return GameSignature{}, fmt.Errorf("reading hash store record %d: %w", index, err)
	}
	sourceEnd := 20
	for sourceEnd < onDiskRecordSize && buf[sourceEnd] != 0 {
		sourceEnd++
	}
	return GameSignature{
		Hash:       binary.LittleEndian.Uint64(buf[0:8]),
		MoveCount:  int(int32(binary.LittleEndian.Uint32(buf[8:12]))),
		WeakHash:   chess.HashCode(binary.LittleEndian.Uint64(buf[12:20])),
		SourceFile: string(buf[20:sourceEnd]),
	}, nil
}

func writeOnDiskRecord(w *bufio.Writer, sig GameSignature) error {
	buf := make([]byte, onDiskRecordSize)
	binary.LittleEndian.PutUint64(buf[0:8], sig.Hash)
	binary.LittleEndian.PutUint32(buf[8:12], uint32(sig.MoveCount))
	binary.LittleEndian.PutUint64(buf[12:20], uint64(sig.WeakHash))
	src := sig.SourceFile
	if len(src) > onDiskSourceWidth {
		src = src[:onDiskSourceWidth]
	}
	copy(buf[20:], src)
	_, err := w.Write(buf)
	if err != nil {
		return fmt.Errorf("writing hash store record: %w", err)
	}
	return nil
}
