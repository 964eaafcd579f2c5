package persistence

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	bolt "github.com/coreos/bbolt"
)

var (
	stateBucket = []byte("tank")
	stateKey    = []byte("state")
	savedAtKey  = []byte("saved_at")
)

// ErrNoState is returned when a bolt database holds no saved tank.
var ErrNoState = errors.New("no saved state")

func openBolt(path string, readOnly bool) (*bolt.DB, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second, ReadOnly: readOnly})
	if err != nil {
		return nil, fmt.Errorf("opening state database: %w", err)
	}
	return db, nil
}

// saveBolt replaces the stored state document in one transaction.
func saveBolt(path string, st *State) error {
	var buf bytes.Buffer
	if err := Encode(&buf, st, FormatJSON); err != nil {
		return err
	}

	db, err := openBolt(path, false)
	if err != nil {
		return err
	}
	defer db.Close()

	err = db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(stateBucket)
		if err != nil {
			return err
		}
		if err := bucket.Put(stateKey, buf.Bytes()); err != nil {
			return err
		}
		return bucket.Put(savedAtKey, []byte(time.Now().UTC().Format(time.RFC3339)))
	})
	if err != nil {
		return fmt.Errorf("writing state database: %w", err)
	}
	return nil
}

// loadBolt reads the stored state document. The database is never created
// here, so a missing file reports fs.ErrNotExist.
func loadBolt(path string) (*State, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("opening state database: %w", err)
	}

	db, err := openBolt(path, true)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var data []byte
	err = db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(stateBucket)
		if bucket == nil {
			return ErrNoState
		}
		v := bucket.Get(stateKey)
		if v == nil {
			return ErrNoState
		}
		// Values are only valid inside the transaction.
		data = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	st, err := Decode(bytes.NewReader(data), FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return st, nil
}
