// Package rules holds the field rules shared by the request payloads and
// turns ozzo-validation results into the shared field-error type.
package rules

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"bookhub/internal/shared"
)

const (
	MaxSearchLength = 100
	MinShelfYear    = 0
	MaxShelfYear    = 3000
)

// UsernamePattern accepts letters, digits and @.+-_ only.
var UsernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

// NotInFuture rejects a publication year later than the year of now().
func NotInFuture(now func() time.Time) validation.Rule {
	return validation.By(func(value interface{}) error {
		v, _ := validation.Indirect(value)
		year, ok := v.(int)
		if !ok {
			return nil
		}
		current := now().Year()
		if year > current {
			return fmt.Errorf("publication_year %d cannot be in the future (>%d).", year, current)
		}
		return nil
	})
}

// ShelfYear bounds a bookshelf publication year.
func ShelfYear() validation.Rule {
	return validation.By(func(value interface{}) error {
		v, _ := validation.Indirect(value)
		year, ok := v.(int)
		if !ok {
			return nil
		}
		if year < MinShelfYear || year > MaxShelfYear {
			return errors.New("Year looks invalid.")
		}
		return nil
	})
}

// Sluggable requires the value to yield a non-empty slug.
func Sluggable() validation.Rule {
	return validation.By(func(value interface{}) error {
		v, _ := validation.Indirect(value)
		s, ok := v.(string)
		if !ok {
			return nil
		}
		if Slugify(s) == "" {
			return errors.New("must contain at least one letter or digit")
		}
		return nil
	})
}

// Collect converts an ozzo-validation result into *shared.ValidationError.
// Nested errors (slices, embedded structs) are flattened as "parent.key".
// Errors that are not validation errors are returned unchanged.
func Collect(err error) error {
	if err == nil {
		return nil
	}
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &shared.ValidationError{}
	flatten(out, "", verrs)
	if !out.HasErrors() {
		return nil
	}
	out.Sort()
	return out
}

func flatten(out *shared.ValidationError, prefix string, verrs validation.Errors) {
	keys := make([]string, 0, len(verrs))
	for k := range verrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		e := verrs[k]
		if e == nil {
			continue
		}
		field := k
		if prefix != "" {
			field = prefix + "." + k
		}
		var nested validation.Errors
		if errors.As(e, &nested) {
			flatten(out, field, nested)
			continue
		}
		out.Add(field, e.Error())
	}
}
