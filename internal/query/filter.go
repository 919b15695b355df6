// Package query compiles URL query parameters into SQL predicates and page
// windows. It knows nothing about HTTP or about any particular entity; callers
// describe what may be filtered with a Schema.
package query

import (
	"net/url"
	"strconv"
	"strings"
)

// Kind selects how a parameter value is compared against its column.
type Kind int

const (
	// Text matches a case-insensitive substring.
	Text Kind = iota
	// Int matches an exact integer. Values that do not parse match nothing.
	Int
)

// Join is a single to-one hop from the filtered table to a related table.
// Table includes its alias, e.g. "organizations o".
type Join struct {
	Table string
	On    string
}

// Field is one filterable query parameter.
type Field struct {
	Param  string
	Column string
	Kind   Kind
	// Join, when set, must be applied for Column to be in scope. Fields on
	// related tables are named <relation>_<field> by convention.
	Join *Join
}

// Schema enumerates the parameters an endpoint accepts. Parameters not
// listed are ignored.
type Schema struct {
	Fields []Field
}

// Clause accumulates joins and ANDed predicates for one SELECT.
type Clause struct {
	joins []Join
	conds []string
	args  []interface{}
}

// Compile returns the clause for values. Fields are applied in schema order so
// the generated SQL is stable for a given request. Empty values are skipped.
func (s Schema) Compile(values url.Values) *Clause {
	c := &Clause{}
	for _, f := range s.Fields {
		v := strings.TrimSpace(values.Get(f.Param))
		if v == "" {
			continue
		}
		if f.Join != nil {
			c.Join(*f.Join)
		}
		switch f.Kind {
		case Int:
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				c.Where("1 = 0")
				continue
			}
			c.Where(f.Column+" = ?", n)
		default:
			c.Where("LOWER("+f.Column+") LIKE LOWER(?) ESCAPE '!'", "%"+escapeLike(v)+"%")
		}
	}
	return c
}

// Join adds j unless an identical join is already present.
func (c *Clause) Join(j Join) *Clause {
	for _, existing := range c.joins {
		if existing == j {
			return c
		}
	}
	c.joins = append(c.joins, j)
	return c
}

// Where ANDs cond onto the clause. cond uses ? placeholders; the caller
// rebinds the final statement for the driver.
func (c *Clause) Where(cond string, args ...interface{}) *Clause {
	c.conds = append(c.conds, cond)
	c.args = append(c.args, args...)
	return c
}

// String renders the JOIN and WHERE portions of the statement, with a leading
// space when non-empty.
func (c *Clause) String() string {
	var b strings.Builder
	for _, j := range c.joins {
		b.WriteString(" JOIN ")
		b.WriteString(j.Table)
		b.WriteString(" ON ")
		b.WriteString(j.On)
	}
	if len(c.conds) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(c.conds, " AND "))
	}
	return b.String()
}

// Args returns the bind arguments in placeholder order.
func (c *Clause) Args() []interface{} {
	return c.args
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
