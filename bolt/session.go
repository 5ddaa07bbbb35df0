package bolt

import (
	"github.com/boltdb/bolt"
)

var sessionKey = []byte("userId")

// SessionStore persists the logged-in user's id in a single-slot bucket,
// the way a browser keeps it in local storage. It survives restarts.
type SessionStore struct {
	Driver *Driver
}

func (s *SessionStore) Get() (string, error) {
	var id string
	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(sessionBucket).Get(sessionKey)
		if data != nil {
			id = string(data)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return id, nil
}

func (s *SessionStore) Set(userID string) error {
	return s.Driver.store.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(sessionBucket).Put(sessionKey, []byte(userID))
	})
}

func (s *SessionStore) Remove() error {
	return s.Driver.store.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(sessionBucket).Delete(sessionKey)
	})
}
