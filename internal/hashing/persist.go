package hashing

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/arcbit/pgnforge/internal/chess"
)

// recordSize is the fixed-width portion of an on-disk signature record:
// hash (8), move count (4), weak hash (8).
const recordSize = 20

// SaveToFile writes the detector's hash table to filename as a flat stream
// of records ordered by hash. Each record is the recordSize fixed part
// followed by a two-byte length and the source file name, so records vary
// in width; LoadFromFile reads the whole stream back.
func (d *DuplicateDetector) SaveToFile(filename string) error {
	f, err := os.Create(filename) //nolint:gosec // G304: caller-specified hash store path
	if err != nil {
		return fmt.Errorf("creating hash file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	sigs := make([]GameSignature, 0, len(d.hashTable))
	for _, bucket := range d.hashTable {
		sigs = append(sigs, bucket...)
	}
	sort.Slice(sigs, func(i, j int) bool { return sigs[i].Hash < sigs[j].Hash })

	for _, sig := range sigs {
		if err := writeSignature(w, sig); err != nil {
			return err
		}
	}
	return w.Flush()
}

// LoadFromFile merges records from filename into the detector's hash table.
// A missing file isn't an error: it just means nothing has been persisted
// yet for this check run.
func (d *DuplicateDetector) LoadFromFile(filename string) error {
	f, err := os.Open(filename) //nolint:gosec // G304: caller-specified hash store path
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("opening hash file: %w", err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	for {
		sig, err := readSignature(r)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		d.hashTable[sig.Hash] = append(d.hashTable[sig.Hash], sig)
	}
}

func writeSignature(w io.Writer, sig GameSignature) error {
	var buf [recordSize]byte
	binary.LittleEndian.PutUint64(buf[0:8], sig.Hash)
	binary.LittleEndian.PutUint32(buf[8:12], uint32(sig.MoveCount))
	binary.LittleEndian.PutUint64(buf[12:20], uint64(sig.WeakHash))
	if _, err := w.Write(buf[:]); err != nil {
		return fmt.Errorf("writing signature: %w", err)
	}

	src := []byte(sig.SourceFile)
	var lenBuf [2]byte
	binary.LittleEndian.PutUint16(lenBuf[:], uint16(len(src)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return fmt.Errorf("writing source length: %w", err)
	}
	if len(src) > 0 {
		if _, err := w.Write(src); err != nil {
			return fmt.Errorf("writing source name: %w", err)
		}
	}
	return nil
}

func readSignature(r io.Reader) (GameSignature, error) {
	var buf [recordSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		if err == io.EOF {
			return GameSignature{}, io.EOF
		}
		return GameSignature{}, fmt.Errorf("reading signature: %w", err)
	}

	sig := GameSignature{
		Hash:      binary.LittleEndian.Uint64(buf[0:8]),
		MoveCount: int(int32(binary.LittleEndian.Uint32(buf[8:12]))),
		WeakHash:  chess.HashCode(binary.LittleEndian.Uint64(buf[12:20])),
	}

	var lenBuf [2]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return GameSignature{}, fmt.Errorf("reading source length: %w", err)
	}
	n := binary.LittleEndian.Uint16(lenBuf[:])
	if n > 0 {
		src := make([]byte, n)
		if _, err := io.ReadFull(r, src); err != nil {
			return GameSignature{}, fmt.Errorf("reading source name: %w", err)
		}
		sig.SourceFile = string(src)
	}
	return sig, nil
}
