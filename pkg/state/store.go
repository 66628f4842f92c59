package state

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/obeli-sk/components-flyio/pkg/types"
	bolt "go.etcd.io/bbolt"
)

var (
	// Bucket names
	bucketIPs      = []byte("ips")
	bucketMachines = []byte("machines")
)

// IPRecord is one IP assignment the caller has observed for an app.
type IPRecord struct {
	IP         string        `json:"ip"`
	Kind       types.IPKind  `json:"kind"`
	Region     *types.Region `json:"region,omitempty"`
	RecordedAt time.Time     `json:"recorded_at"`
}

// MachineRecord is one machine id the caller has created for an app.
type MachineRecord struct {
	ID         types.MachineID `json:"id"`
	Name       string          `json:"name"`
	RecordedAt time.Time       `json:"recorded_at"`
}

// Store is the caller's durable bookkeeping, backed by BoltDB. It records
// which IPs and machines earlier invocations produced per app, so a retried
// invocation can report what it already holds.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the store under dataDir.
func Open(dataDir string) (*Store, error) {
	dbPath := filepath.Join(dataDir, "flyio.db")

	db, err := bolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketIPs, bucketMachines} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// ipKey namespaces records per app. IP addresses contain no '/'.
func ipKey(app types.AppName, ip string) []byte {
	return []byte(string(app) + "/" + ip)
}

// RecordIP persists one observed IP assignment for an app. Recording the
// same address twice overwrites the earlier record.
func (s *Store) RecordIP(app types.AppName, rec IPRecord) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketIPs)
		data, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		return b.Put(ipKey(app, rec.IP), data)
	})
}

// ForgetIP removes one recorded assignment. Forgetting an address that was
// never recorded is a no-op.
func (s *Store) ForgetIP(app types.AppName, ip string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketIPs)
		return b.Delete(ipKey(app, ip))
	})
}

// KnownIPs returns every recorded assignment for an app, sorted by address.
func (s *Store) KnownIPs(app types.AppName) ([]IPRecord, error) {
	prefix := []byte(string(app) + "/")

	var records []IPRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketIPs).Cursor()
		for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			var rec IPRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("failed to decode ip record %s: %w", k, err)
			}
			records = append(records, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool { return records[i].IP < records[j].IP })
	return records, nil
}

// KnownIPAddresses returns just the addresses for an app, sorted. This is
// the shape an ip-ensure invocation takes as its pre-existing set.
func (s *Store) KnownIPAddresses(app types.AppName) ([]string, error) {
	records, err := s.KnownIPs(app)
	if err != nil {
		return nil, err
	}
	addrs := make([]string, 0, len(records))
	for _, rec := range records {
		addrs = append(addrs, rec.IP)
	}
	return addrs, nil
}

// RecordMachine persists one machine the caller created for an app.
func (s *Store) RecordMachine(app types.AppName, rec MachineRecord) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketMachines)
		data, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		return b.Put([]byte(string(app)+"/"+string(rec.ID)), data)
	})
}

// ForgetMachine removes one recorded machine. Unknown ids are a no-op.
func (s *Store) ForgetMachine(app types.AppName, id types.MachineID) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketMachines)
		return b.Delete([]byte(string(app) + "/" + string(id)))
	})
}

// KnownMachines returns every recorded machine for an app, sorted by id.
func (s *Store) KnownMachines(app types.AppName) ([]MachineRecord, error) {
	prefix := []byte(string(app) + "/")

	var records []MachineRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketMachines).Cursor()
		for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			var rec MachineRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("failed to decode machine record %s: %w", k, err)
			}
			records = append(records, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}
