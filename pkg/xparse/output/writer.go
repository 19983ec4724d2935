package output

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/rs/zerolog/log"

	"github.com/ukaji3/xparse-go/pkg/xparse/models"
)

// Format selects the serialization.
type Format string

const (
	// FormatXML writes <persons><person>... documents.
	FormatXML Format = "xml"
	// FormatJSON writes {"persons": [...]} documents.
	FormatJSON Format = "json"
)

// ErrUnsupportedFormat indicates a Format other than xml or json.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// ErrDirLocked indicates another run is writing into the same directory.
var ErrDirLocked = errors.New("save directory is locked by another run")

// lockName is the lock file created inside the save directory.
const lockName = ".xparse.lock"

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatXML, FormatJSON:
		return Format(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// Chunk is one output file covering blocks First..Last (1-based, inclusive).
type Chunk struct {
	First int
	Last  int
	Name  string
}

// Plan splits total blocks into files of splitAt blocks each. A splitAt of
// zero or less writes a single file named after the total.
func Plan(total, splitAt int, format Format) []Chunk {
	if total <= 0 {
		return nil
	}
	if splitAt <= 0 {
		return []Chunk{{First: 1, Last: total, Name: fmt.Sprintf("persons-%d.%s", total, format)}}
	}
	var chunks []Chunk
	for first := 1; first <= total; first += splitAt {
		last := min(first+splitAt-1, total)
		chunks = append(chunks, Chunk{
			First: first,
			Last:  last,
			Name:  fmt.Sprintf("persons-%d-%d.%s", first, last, format),
		})
	}
	return chunks
}

// Writer saves document blocks into a directory.
type Writer struct {
	// Dir is created if missing.
	Dir string
	// SplitAt is the number of blocks per file; 0 writes one file.
	SplitAt int
	Format  Format
	// Rule names XML collection items. If nil, ParentToChild is used.
	Rule   NamingRule
	Pretty bool
}

// Write saves blocks and returns the paths written. The directory is locked
// for the duration of the write.
func (w *Writer) Write(blocks [][]models.Person) ([]string, error) {
	format := w.Format
	if format == "" {
		format = FormatXML
	}
	if _, err := ParseFormat(string(format)); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(w.Dir, 0755); err != nil {
		return nil, fmt.Errorf("create save dir: %w", err)
	}
	lock := flock.New(filepath.Join(w.Dir, lockName))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDirLocked, w.Dir)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			log.Warn().Err(err).Str("dir", w.Dir).Msg("failed to release save dir lock")
		}
	}()

	var paths []string
	persons := 0
	for _, chunk := range Plan(len(blocks), w.SplitAt, format) {
		var batch []models.Person
		for _, block := range blocks[chunk.First-1 : chunk.Last] {
			batch = append(batch, block...)
		}
		path := filepath.Join(w.Dir, chunk.Name)
		if err := w.writeFile(path, batch, format); err != nil {
			return paths, fmt.Errorf("write %s: %w", chunk.Name, err)
		}
		log.Debug().Str("file", path).Int("persons", len(batch)).Msg("saved")
		paths = append(paths, path)
		persons += len(batch)
	}

	log.Info().Int("blocks", len(blocks)).Int("persons", persons).Msg("total blocks saved")
	return paths, nil
}

func (w *Writer) writeFile(path string, persons []models.Person, format Format) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	buf := bufio.NewWriter(f)

	switch format {
	case FormatJSON:
		err = WriteJSON(buf, persons, w.Pretty)
	default:
		err = WriteXML(buf, persons, w.Rule)
	}
	if err == nil {
		err = buf.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
