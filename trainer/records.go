package trainer

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// EpisodeRecord is one row of training telemetry.
type EpisodeRecord struct {
	Worker   int
	Episode  int
	Moves    int
	Winner   string
	Epsilon  float64
	Duration time.Duration
}

// WriteRecords stores episode records as CSV for offline analysis.
func WriteRecords(path string, records []EpisodeRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create records file %s", path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"worker", "episode", "moves", "winner", "epsilon", "duration"}
	if err := w.Write(header); err != nil {
		return errors.Wrap(err, "write records header")
	}
	for _, r := range records {
		row := []string{
			strconv.Itoa(r.Worker),
			strconv.Itoa(r.Episode),
			strconv.Itoa(r.Moves),
			r.Winner,
			strconv.FormatFloat(r.Epsilon, 'g', -1, 64),
			r.Duration.String(),
		}
		if err := w.Write(row); err != nil {
			return errors.Wrap(err, "write record row")
		}
	}
	if err := w.Error(); err != nil {
		return errors.Wrap(err, "flush records")
	}
	return nil
}
