package archive

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"mrparker/models"
)

// Archive durably logs completed interactions per session. Unlike the
// in-memory session store it is append-only and survives restarts; it feeds
// the read-only /context/archive endpoint.
type Archive struct {
	badgerDB *badger.DB
}

func New(path string) (*Archive, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Disable badger logging for cleaner output

	badgerDB, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	return &Archive{badgerDB: badgerDB}, nil
}

func (a *Archive) Close() error {
	return a.badgerDB.Close()
}

func (a *Archive) Store(sessionID string, interaction models.Interaction) error {
	return a.badgerDB.Update(func(txn *badger.Txn) error {
		key := []byte(fmt.Sprintf("interaction:%s:%d", sessionID, interaction.Timestamp.UnixNano()))

		data, err := json.Marshal(interaction)
		if err != nil {
			return err
		}

		return txn.Set(key, data)
	})
}

// Session returns every archived interaction for a session, oldest first.
// Key order under a common prefix is timestamp order.
func (a *Archive) Session(sessionID string) ([]models.Interaction, error) {
	var interactions []models.Interaction

	err := a.badgerDB.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(fmt.Sprintf("interaction:%s:", sessionID))
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var interaction models.Interaction
				if err := json.Unmarshal(val, &interaction); err != nil {
					return err
				}
				interactions = append(interactions, interaction)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})

	return interactions, err
}

// Sessions lists the distinct session ids present in the archive.
func (a *Archive) Sessions() ([]string, error) {
	seen := make(map[string]bool)
	var ids []string

	err := a.badgerDB.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte("interaction:")
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			key := string(it.Item().Key())
			rest := strings.TrimPrefix(key, "interaction:")
			idx := strings.LastIndex(rest, ":")
			if idx < 0 {
				continue
			}
			id := rest[:idx]
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
		return nil
	})

	return ids, err
}
