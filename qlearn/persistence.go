package qlearn

import (
	"encoding/gob"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

const (
	snapshotMagic   = "OTHQ"
	snapshotVersion = 1
)

// CorruptStateError reports a persisted table that could not be decoded
// or failed its header checks. A load that returns it must not be used:
// the caller should refuse to start rather than run on a partial table.
type CorruptStateError struct {
	Err error
}

func (e *CorruptStateError) Error() string {
	return "corrupt Q-table snapshot: " + e.Err.Error()
}

func (e *CorruptStateError) Unwrap() error {
	return e.Err
}

// tableSnapshot is the on-disk form: a header plus the sequential
// (state, move, value) record list.
type tableSnapshot struct {
	Magic   string
	Version int
	Count   int
	Records []Record
}

// Save writes the table as a gob-encoded snapshot.
func Save(w io.Writer, t *Table) error {
	records := t.Snapshot()
	snapshot := tableSnapshot{
		Magic:   snapshotMagic,
		Version: snapshotVersion,
		Count:   len(records),
		Records: records,
	}
	if err := gob.NewEncoder(w).Encode(&snapshot); err != nil {
		return errors.Wrap(err, "encode Q-table snapshot")
	}
	return nil
}

// Load reads a snapshot written by Save and rebuilds the table. Any
// decode failure, header mismatch or truncated record list surfaces as
// a CorruptStateError.
func Load(r io.Reader) (*Table, error) {
	var snapshot tableSnapshot
	if err := gob.NewDecoder(r).Decode(&snapshot); err != nil {
		return nil, &CorruptStateError{Err: err}
	}
	if snapshot.Magic != snapshotMagic {
		return nil, &CorruptStateError{Err: errors.Errorf("bad magic %q", snapshot.Magic)}
	}
	if snapshot.Version != snapshotVersion {
		return nil, &CorruptStateError{Err: errors.Errorf("unsupported version %d", snapshot.Version)}
	}
	if snapshot.Count != len(snapshot.Records) {
		return nil, &CorruptStateError{Err: errors.Errorf("expected %d records, found %d", snapshot.Count, len(snapshot.Records))}
	}
	t := NewTable()
	t.load(snapshot.Records)
	return t, nil
}

// SaveFile atomically replaces path with a snapshot of the table: the
// snapshot lands in a temp file first so a crash mid-write never leaves
// a truncated checkpoint behind.
func SaveFile(path string, t *Table) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "create snapshot directory %s", dir)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.Wrap(err, "create snapshot temp file")
	}
	defer os.Remove(tmp.Name())

	if err := Save(tmp, t); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "close snapshot temp file")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrapf(err, "replace snapshot %s", path)
	}
	return nil
}

// LoadFile reads a snapshot from disk.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open snapshot %s", path)
	}
	defer f.Close()
	return Load(f)
}
