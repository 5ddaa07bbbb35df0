package bolt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/boltdb/bolt"
	"github.com/google/uuid"

	loup "github.com/Youpsilon/Le-Loup-de-la-Creuse"
	"github.com/Youpsilon/Le-Loup-de-la-Creuse/errors"
)

// ArticleStore is used to store and retrieve articles from a bolt database.
type ArticleStore struct {
	Driver *Driver
}

func (s *ArticleStore) Get(ctx context.Context, id string) (*loup.Article, error) {
	var article *loup.Article
	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(articleBucket)

		data := bucket.Get([]byte(id))
		if data == nil {
			return nil
		}

		article = &loup.Article{}
		return json.Unmarshal(data, article)
	})
	if err != nil {
		return nil, err
	}

	if article == nil {
		return nil, errArticleNotFound(id)
	}
	return article, nil
}

func (s *ArticleStore) List(ctx context.Context) ([]*loup.Article, error) {
	var articles []*loup.Article

	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(articleBucket)

		c := bucket.Cursor()
		for id, data := c.First(); id != nil; id, data = c.Next() {
			var article loup.Article
			if err := json.Unmarshal(data, &article); err != nil {
				return err
			}
			articles = append(articles, &article)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return articles, nil
}

// Insert assigns the article its id and creation time, resets the like
// state and persists it.
func (s *ArticleStore) Insert(ctx context.Context, article *loup.Article) error {
	return s.Driver.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(articleBucket)

		article.ID = uuid.NewString()
		article.Likes = 0
		article.LikedBy = []string{}
		article.CreatedAt = time.Now()

		data, err := json.Marshal(article)
		if err != nil {
			return err
		}

		return bucket.Put([]byte(article.ID), data)
	})
}

func (s *ArticleStore) Delete(ctx context.Context, id string) error {
	return s.Driver.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(articleBucket)
		return bucket.Delete([]byte(id))
	})
}

func (s *ArticleStore) ByAuthor(ctx context.Context, userID string) ([]*loup.Article, error) {
	return s.scan(func(article *loup.Article) bool {
		return article.UserID == userID
	})
}

func (s *ArticleStore) LikedBy(ctx context.Context, userID string) ([]*loup.Article, error) {
	return s.scan(func(article *loup.Article) bool {
		return article.LikedByUser(userID)
	})
}

// ToggleLike flips the like relationship between a user and an article.
// The read, the flip and the write happen in a single bolt update
// transaction: bolt serializes writers, so two concurrent toggles can
// never interleave between the read and the write.
func (s *ArticleStore) ToggleLike(ctx context.Context, articleID, userID string) (*loup.Article, error) {
	var article loup.Article
	err := s.Driver.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(articleBucket)

		data := bucket.Get([]byte(articleID))
		if data == nil {
			return errArticleNotFound(articleID)
		}

		if err := json.Unmarshal(data, &article); err != nil {
			return err
		}

		if article.LikedByUser(userID) {
			likedBy := make([]string, 0, len(article.LikedBy)-1)
			for _, id := range article.LikedBy {
				if id != userID {
					likedBy = append(likedBy, id)
				}
			}
			article.LikedBy = likedBy
			article.Likes--
		} else {
			article.LikedBy = append(article.LikedBy, userID)
			article.Likes++
		}

		data, err := json.Marshal(&article)
		if err != nil {
			return err
		}

		return bucket.Put([]byte(articleID), data)
	})
	if err != nil {
		return nil, err
	}

	return &article, nil
}

func (s *ArticleStore) scan(keep func(*loup.Article) bool) ([]*loup.Article, error) {
	articles := make([]*loup.Article, 0)

	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(articleBucket)

		c := bucket.Cursor()
		for id, data := c.First(); id != nil; id, data = c.Next() {
			var article loup.Article
			if err := json.Unmarshal(data, &article); err != nil {
				return err
			}
			if keep(&article) {
				articles = append(articles, &article)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return articles, nil
}

func errArticleNotFound(id string) error {
	return errors.New(fmt.Sprintf("No article for id %s", id), errors.NotFound())
}
