package bleve

import (
	"strings"

	"github.com/blevesearch/bleve"
	"github.com/blevesearch/bleve/analysis/analyzer/simple"
	"github.com/blevesearch/bleve/mapping"
	"github.com/blevesearch/bleve/search/query"

	loup "github.com/Youpsilon/Le-Loup-de-la-Creuse"
)

type ArticleIndex struct {
	index bleve.Index
}

// Open opens the index at path, creating it with the article mapping if
// it does not exist yet.
func (s *ArticleIndex) Open(path string) error {
	index, err := bleve.Open(path)
	if err == bleve.ErrorIndexPathDoesNotExist {
		index, err = bleve.New(path, articleMapping())
	}
	if err != nil {
		return err
	}

	s.index = index
	return nil
}

func (s *ArticleIndex) Close() error {
	if s.index == nil {
		return nil
	}

	return s.index.Close()
}

func articleMapping() mapping.IndexMapping {
	// The simple analyzer keeps whole lowercased words: no stemming, so
	// prefix queries behave like a substring search on word starts.
	text := bleve.NewTextFieldMapping()
	text.Analyzer = simple.Name

	article := bleve.NewDocumentMapping()
	article.AddFieldMappingsAt("title", text)
	article.AddFieldMappingsAt("content", text)
	article.AddFieldMappingsAt("category", text)

	m := bleve.NewIndexMapping()
	m.DefaultMapping = article
	return m
}

func (s *ArticleIndex) Index(article *loup.Article) error {
	data := map[string]interface{}{
		"title":    article.Title,
		"content":  article.Content,
		"category": article.Category,
	}

	return s.index.Index(article.ID, data)
}

func (s *ArticleIndex) Delete(id string) error {
	return s.index.Delete(id)
}

func (s *ArticleIndex) Search(search loup.ArticleSearch) ([]string, error) {
	q := andQ(
		query.NewMatchAllQuery(),
		s.searchWords(search.Q),
	)

	searchRequest := bleve.NewSearchRequest(q)
	if search.Limit > 0 {
		searchRequest.Size = search.Limit
	}
	searchRequest.From = search.Offset

	searchResults, err := s.index.Search(searchRequest)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(searchResults.Hits))
	for i, hit := range searchResults.Hits {
		ids[i] = hit.ID
	}

	return ids, nil
}

// searchWords requires every word of the query to prefix-match the
// title, the content or the category.
func (s *ArticleIndex) searchWords(queryString string) query.Query {
	words := strings.Fields(queryString)

	ands := make([]query.Query, 0, len(words))
	for _, word := range words {
		ands = append(ands, orQ(
			s.prefixQuery(word, "title"),
			s.prefixQuery(word, "content"),
			s.prefixQuery(word, "category"),
		))
	}

	return andQ(ands...)
}

func (s *ArticleIndex) prefixQuery(word, field string) query.Query {
	analyzer := s.index.Mapping().AnalyzerNamed(simple.Name)
	tokens := analyzer.Analyze([]byte(word))
	if len(tokens) == 0 {
		return nil
	}

	conjuncs := make([]query.Query, len(tokens))
	for i, token := range tokens {
		conjuncs[i] = &query.PrefixQuery{
			Prefix:   string(token.Term),
			FieldVal: field,
		}
	}

	return query.NewConjunctionQuery(conjuncs)
}

func andQ(qs ...query.Query) query.Query {
	ands := make([]query.Query, 0, len(qs))
	for _, q := range qs {
		if q != nil {
			ands = append(ands, q)
		}
	}

	if len(ands) == 0 {
		return nil
	}
	return query.NewConjunctionQuery(ands)
}

func orQ(qs ...query.Query) query.Query {
	ors := make([]query.Query, 0, len(qs))
	for _, q := range qs {
		if q != nil {
			ors = append(ors, q)
		}
	}

	if len(ors) == 0 {
		return nil
	}
	return query.NewDisjunctionQuery(ors)
}
