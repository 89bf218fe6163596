// Package seed loads the demo catalog. Running it twice creates nothing new.
package seed

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bookhub/internal/microservices/http-api/models"
)

//go:embed fixtures.yaml
var fixturesYAML []byte

type Fixtures struct {
	Authors   []AuthorFixture  `yaml:"authors"`
	Libraries []LibraryFixture `yaml:"libraries"`
}

type AuthorFixture struct {
	Name  string        `yaml:"name"`
	Books []BookFixture `yaml:"books"`
}

type BookFixture struct {
	Title           string `yaml:"title"`
	PublicationYear int    `yaml:"publication_year"`
}

type LibraryFixture struct {
	Name      string   `yaml:"name"`
	Librarian string   `yaml:"librarian"`
	Books     []string `yaml:"books"`
}

// Result counts the rows a run inserted.
type Result struct {
	Authors    int
	Books      int
	Libraries  int
	Librarians int
	Holdings   int
}

func (r Result) Total() int {
	return r.Authors + r.Books + r.Libraries + r.Librarians + r.Holdings
}

// Load parses the embedded fixtures and checks that every library book
// names a fixture book.
func Load() (*Fixtures, error) {
	return Parse(fixturesYAML)
}

func Parse(data []byte) (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}

	titles := make(map[string]struct{})
	for _, a := range f.Authors {
		if a.Name == "" {
			return nil, fmt.Errorf("fixture author without a name")
		}
		for _, b := range a.Books {
			titles[b.Title] = struct{}{}
		}
	}
	for _, l := range f.Libraries {
		for _, t := range l.Books {
			if _, ok := titles[t]; !ok {
				return nil, fmt.Errorf("library %q holds unknown book %q", l.Name, t)
			}
		}
	}
	return &f, nil
}

// Run applies f in one transaction. Rows are matched by name (authors,
// libraries, librarians) or by title and author (books).
func Run(ctx context.Context, db *gorm.DB, f *Fixtures) (Result, error) {
	var res Result
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		bookIDs := make(map[string]int64)

		for _, af := range f.Authors {
			author := models.Author{Name: af.Name}
			created, err := firstOrCreate(tx, &author, "name = ?", af.Name)
			if err != nil {
				return fmt.Errorf("author %q: %w", af.Name, err)
			}
			res.Authors += created

			for _, bf := range af.Books {
				book := models.Book{Title: bf.Title, PublicationYear: bf.PublicationYear, AuthorID: author.ID}
				created, err := firstOrCreate(tx, &book, "title = ? AND author_id = ?", bf.Title, author.ID)
				if err != nil {
					return fmt.Errorf("book %q: %w", bf.Title, err)
				}
				res.Books += created
				bookIDs[bf.Title] = book.ID
			}
		}

		for _, lf := range f.Libraries {
			library := models.Library{Name: lf.Name}
			created, err := firstOrCreate(tx, &library, "name = ?", lf.Name)
			if err != nil {
				return fmt.Errorf("library %q: %w", lf.Name, err)
			}
			res.Libraries += created

			if len(lf.Books) > 0 {
				rows := make([]models.LibraryBook, 0, len(lf.Books))
				for _, t := range lf.Books {
					rows = append(rows, models.LibraryBook{LibraryID: library.ID, BookID: bookIDs[t]})
				}
				result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows)
				if result.Error != nil {
					return fmt.Errorf("holdings of %q: %w", lf.Name, result.Error)
				}
				res.Holdings += int(result.RowsAffected)
			}

			if lf.Librarian != "" {
				librarian := models.Librarian{Name: lf.Librarian, LibraryID: library.ID}
				created, err := firstOrCreate(tx, &librarian, "library_id = ?", library.ID)
				if err != nil {
					return fmt.Errorf("librarian %q: %w", lf.Librarian, err)
				}
				res.Librarians += created
			}
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	log.Info().
		Int("authors", res.Authors).
		Int("books", res.Books).
		Int("libraries", res.Libraries).
		Int("librarians", res.Librarians).
		Int("holdings", res.Holdings).
		Msg("seed applied")
	return res, nil
}

// firstOrCreate loads the row matching the condition into dst, inserting
// dst when none exists. It returns 1 when a row was inserted.
func firstOrCreate(tx *gorm.DB, dst any, query string, args ...any) (int, error) {
	found := tx.Where(query, args...).Limit(1).Find(dst)
	if found.Error != nil {
		return 0, found.Error
	}
	if found.RowsAffected > 0 {
		return 0, nil
	}
	if err := tx.Create(dst).Error; err != nil {
		return 0, err
	}
	return 1, nil
}
