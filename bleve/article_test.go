package bleve

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	loup "github.com/Youpsilon/Le-Loup-de-la-Creuse"
)

func createIndex(t *testing.T) (*ArticleIndex, func()) {
	dir, err := os.MkdirTemp("", "")
	if err != nil {
		t.Fatal("could not create tmp dir:", err)
	}

	index := &ArticleIndex{}
	if err := index.Open(filepath.Join(dir, "articles.bleve")); err != nil {
		os.RemoveAll(dir)
		t.Fatal("error creating index:", err)
	}

	return index, func() {
		if err := index.Close(); err != nil {
			t.Log(err)
		}
		if err := os.RemoveAll(dir); err != nil {
			t.Log(err)
		}
	}
}

func TestArticleIndex_Search(t *testing.T) {
	index, f := createIndex(t)
	defer f()

	articles := []*loup.Article{
		{ID: "a1", Title: "Pourquoi la paille est le nouvel or", Category: "Forex-Fermier"},
		{ID: "a2", Title: "J'ai miné du Bitcoin avec mon tracteur", Category: "Crypto-Tracteur"},
		{ID: "a3", Title: "Mon voisin a vendu sa vache en NFT", Content: "La paille n'a rien à voir", Category: "NFT-Vache"},
	}
	for _, article := range articles {
		if err := index.Index(article); err != nil {
			t.Fatal("error indexing:", err)
		}
	}

	tts := map[string]struct {
		q        string
		expected []string
	}{
		"empty query matches all": {
			q:        "",
			expected: []string{"a1", "a2", "a3"},
		},
		"word in title": {
			q:        "tracteur",
			expected: []string{"a2"},
		},
		"word prefix": {
			q:        "pail",
			expected: []string{"a1", "a3"},
		},
		"word in content": {
			q:        "voir",
			expected: []string{"a3"},
		},
		"category": {
			q:        "vache",
			expected: []string{"a3"},
		},
		"all words must match": {
			q:        "paille bitcoin",
			expected: []string{},
		},
		"no match": {
			q:        "immobilier",
			expected: []string{},
		},
	}

	for name, tt := range tts {
		t.Run(name, func(t *testing.T) {
			ids, err := index.Search(loup.ArticleSearch{Q: tt.q})
			if err != nil {
				t.Fatal("error searching:", err)
			}

			sort.Strings(ids)
			if len(ids) != len(tt.expected) {
				t.Fatalf("expected %v, got %v", tt.expected, ids)
			}
			for i := range ids {
				if ids[i] != tt.expected[i] {
					t.Fatalf("expected %v, got %v", tt.expected, ids)
				}
			}
		})
	}
}

func TestArticleIndex_Delete(t *testing.T) {
	index, f := createIndex(t)
	defer f()

	article := &loup.Article{ID: "a1", Title: "Le secret des banquiers"}
	if err := index.Index(article); err != nil {
		t.Fatal("error indexing:", err)
	}

	if err := index.Delete("a1"); err != nil {
		t.Fatal("error deleting:", err)
	}

	ids, err := index.Search(loup.ArticleSearch{Q: "banquiers"})
	if err != nil {
		t.Fatal("error searching:", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected no hits after delete, got %v", ids)
	}
}
