package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// QuerySpec is one topical query (or feed URL) with its result cap.
type QuerySpec struct {
	Q     string `yaml:"q"`
	Limit int    `yaml:"limit"`
}

// Queries is the editorial policy of what counts as breaking news:
//
//	serper:
//	  - q: breaking geopolitics crisis conflict 2026 latest update
//	    limit: 8
//	gnews: [...]
//	feeds:
//	  - q: https://news.un.org/feed/subscribe/en/news/all/rss.xml
//	    limit: 5
type Queries struct {
	Serper []QuerySpec `yaml:"serper"`
	GNews  []QuerySpec `yaml:"gnews"`
	Feeds  []QuerySpec `yaml:"feeds"`
}

const defaultQueryLimit = 8

// DefaultQueries are used for any section the YAML file omits. Feeds are
// opt-in and empty by default.
func DefaultQueries() Queries {
	return Queries{
		Serper: []QuerySpec{
			{Q: "breaking geopolitics crisis conflict 2026 latest update", Limit: 8},
			{Q: "Ukraine Gaza Sudan Taiwan ceasefire offensive latest development 2026", Limit: 7},
			{Q: "global economy sanctions trade war tariffs 2026", Limit: 5},
			{Q: "cyber attack AI surveillance military technology 2026", Limit: 4},
		},
		GNews: []QuerySpec{
			{Q: "geopolitics war conflict UN sanctions", Limit: 8},
			{Q: "global economy trade inflation crisis", Limit: 5},
		},
		Feeds: []QuerySpec{},
	}
}

// LoadQueries reads the YAML query file. A missing file yields the
// defaults; a malformed one is an error.
func LoadQueries(path string) (Queries, error) {
	defaults := DefaultQueries()
	if path == "" {
		return defaults, nil
	}

	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return defaults, nil
	}
	if err != nil {
		return Queries{}, fmt.Errorf("read queries %s: %w", path, err)
	}

	var q Queries
	if err := yaml.Unmarshal(b, &q); err != nil {
		return Queries{}, fmt.Errorf("parse queries %s: %w", path, err)
	}

	if q.Serper == nil {
		q.Serper = defaults.Serper
	}
	if q.GNews == nil {
		q.GNews = defaults.GNews
	}
	if q.Feeds == nil {
		q.Feeds = defaults.Feeds
	}
	if err := q.normalize(); err != nil {
		return Queries{}, fmt.Errorf("queries %s: %w", path, err)
	}
	return q, nil
}

func (q *Queries) normalize() error {
	for _, list := range [][]QuerySpec{q.Serper, q.GNews, q.Feeds} {
		for i := range list {
			if list[i].Q == "" {
				return fmt.Errorf("query %d has empty q", i)
			}
			if list[i].Limit <= 0 {
				list[i].Limit = defaultQueryLimit
			}
		}
	}
	return nil
}
