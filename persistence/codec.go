package persistence

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack"
)

// Format selects the on-disk encoding.
type Format uint8

const (
	FormatJSON Format = iota
	FormatMsgpack
	FormatBolt // JSON document inside a bbolt database
)

// FormatFor picks the encoding from a file extension: .msgpack and .mp use
// msgpack, .db and .bolt a bbolt database, anything else JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".msgpack", ".mp":
		return FormatMsgpack
	case ".db", ".bolt":
		return FormatBolt
	default:
		return FormatJSON
	}
}

func (f Format) String() string {
	switch f {
	case FormatMsgpack:
		return "msgpack"
	case FormatBolt:
		return "bolt"
	}
	return "json"
}

// Encode writes st to w. All formats use the same json field names; the
// bolt format encodes its stored document as JSON.
func Encode(w io.Writer, st *State, format Format) error {
	switch format {
	case FormatMsgpack:
		enc := msgpack.NewEncoder(w)
		enc.UseJSONTag(true)
		if err := enc.Encode(st); err != nil {
			return fmt.Errorf("encoding msgpack state: %w", err)
		}
	default:
		data, err := json.MarshalIndent(st, "", "    ")
		if err != nil {
			return fmt.Errorf("encoding json state: %w", err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("writing json state: %w", err)
		}
	}
	return nil
}

// Decode reads and validates a state from r. Records missing a required key
// fail with ErrMissingField; negative counters and undersized tanks fail
// with ErrInvalidValue.
func Decode(r io.Reader, format Format) (*State, error) {
	var w wireState
	switch format {
	case FormatMsgpack:
		dec := msgpack.NewDecoder(r)
		dec.UseJSONTag(true)
		if err := dec.Decode(&w); err != nil {
			return nil, fmt.Errorf("decoding msgpack state: %w", err)
		}
	default:
		if err := json.NewDecoder(r).Decode(&w); err != nil {
			return nil, fmt.Errorf("decoding json state: %w", err)
		}
	}
	return w.validate()
}

// SaveFile writes st to path in the format its extension selects.
func SaveFile(path string, st *State) error {
	if FormatFor(path) == FormatBolt {
		return saveBolt(path, st)
	}
	var buf bytes.Buffer
	if err := Encode(&buf, st, FormatFor(path)); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing state file: %w", err)
	}
	return nil
}

// LoadFile reads the state at path. A missing file yields an error
// satisfying errors.Is(err, fs.ErrNotExist).
func LoadFile(path string) (*State, error) {
	if FormatFor(path) == FormatBolt {
		return loadBolt(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening state file: %w", err)
	}
	defer f.Close()

	st, err := Decode(f, FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return st, nil
}
