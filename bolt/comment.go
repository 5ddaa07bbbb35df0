package bolt

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/boltdb/bolt"
	"github.com/google/uuid"

	loup "github.com/Youpsilon/Le-Loup-de-la-Creuse"
)

// CommentStore is used to store and retrieve comments from a bolt database.
// Comments are write-once: there is no update nor delete.
type CommentStore struct {
	Driver *Driver
}

func (s *CommentStore) Insert(ctx context.Context, comment *loup.Comment) error {
	return s.Driver.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(commentBucket)

		comment.ID = uuid.NewString()
		comment.CreatedAt = time.Now()

		data, err := json.Marshal(comment)
		if err != nil {
			return err
		}

		return bucket.Put([]byte(comment.ID), data)
	})
}

// ByArticle returns the comments of an article, newest first.
func (s *CommentStore) ByArticle(ctx context.Context, articleID string) ([]*loup.Comment, error) {
	comments := make([]*loup.Comment, 0)

	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(commentBucket)

		c := bucket.Cursor()
		for id, data := c.First(); id != nil; id, data = c.Next() {
			var comment loup.Comment
			if err := json.Unmarshal(data, &comment); err != nil {
				return err
			}
			if comment.ArticleID == articleID {
				comments = append(comments, &comment)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	})
	return comments, nil
}
