package dictionary

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ErrUnsupportedFormat indicates a dictionary path that is neither a directory nor a .toml/.json file.
var ErrUnsupportedFormat = errors.New("unsupported dictionary format")

// Load reads dictionaries from path: a directory of CSV files, a .toml file or a .json file.
func Load(path string) (*Store, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("open dictionaries: %w", err)
	}
	if info.IsDir() {
		return LoadCSVDir(path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dictionaries: %w", err)
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return LoadTOML(file)
	case ".json":
		return LoadJSON(file)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// LoadTOML reads one table per category:
//
//	[objectType]
//	"квартира" = 7
func LoadTOML(r io.Reader) (*Store, error) {
	var raw map[string]map[string]any
	if err := toml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse dictionaries: %w", err)
	}
	return fromDecoded(raw)
}

// LoadJSON reads an object of category objects mapping term to code.
func LoadJSON(r io.Reader) (*Store, error) {
	var raw map[string]map[string]any
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse dictionaries: %w", err)
	}
	return fromDecoded(raw)
}

func fromDecoded(raw map[string]map[string]any) (*Store, error) {
	s := New(nil)
	for category, terms := range raw {
		for term, code := range terms {
			v, err := decodedValue(code)
			if err != nil {
				return nil, fmt.Errorf("dictionary %s, term %q: %w", category, term, err)
			}
			s.Add(category, term, v)
		}
	}
	return s, nil
}

func decodedValue(code any) (Value, error) {
	switch c := code.(type) {
	case nil:
		return Null(), nil
	case string:
		return Text(c), nil
	case int64:
		return Code(int(c)), nil
	case int:
		return Code(c), nil
	case float64:
		if c == math.Trunc(c) {
			return Code(int(c)), nil
		}
		return Value{}, fmt.Errorf("non-integer code %v", c)
	default:
		return Value{}, fmt.Errorf("unsupported code type %T", code)
	}
}

// LoadCSVDir reads <dir>/<category>.csv for every known category. The header
// row holds codes; each non-empty cell below a header is a term for that code.
// Codes are converted to integers except for none_values.
func LoadCSVDir(dir string) (*Store, error) {
	s := New(nil)
	for _, category := range Categories {
		path := filepath.Join(dir, category+".csv")
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open dictionary %s: %w", category, err)
		}
		err = loadCSV(s, category, file, category != NoneValues)
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("read dictionary %s: %w", category, err)
		}
	}
	return s, nil
}

func loadCSV(s *Store, category string, r io.Reader, convert bool) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return err
	}

	if _, ok := s.categories[category]; !ok {
		s.categories[category] = make(map[string]Value)
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		for i, term := range record {
			if term == "" || i >= len(header) {
				continue
			}
			s.Add(category, term, parseValue(header[i], convert))
		}
	}
}
