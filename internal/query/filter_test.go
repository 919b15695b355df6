package query_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joestump/civic-api/internal/query"
)

var orgJoin = query.Join{Table: "organizations o", On: "o.name = p.organization_name"}

var projectSchema = query.Schema{Fields: []query.Field{
	{Param: "id", Column: "p.id", Kind: query.Int},
	{Param: "type", Column: "p.type"},
	{Param: "description", Column: "p.description"},
	{Param: "organization_type", Column: "o.type", Join: &orgJoin},
	{Param: "organization_city", Column: "o.city", Join: &orgJoin},
}}

func TestCompile_Empty(t *testing.T) {
	c := projectSchema.Compile(url.Values{})
	assert.Equal(t, "", c.String())
	assert.Empty(t, c.Args())
}

func TestCompile_IgnoresUnknownAndEmpty(t *testing.T) {
	c := projectSchema.Compile(url.Values{
		"page":     {"2"},
		"per_page": {"5"},
		"bogus":    {"x"},
		"type":     {""},
	})
	assert.Equal(t, "", c.String())
}

func TestCompile_TextFiltersAreANDed(t *testing.T) {
	c := projectSchema.Compile(url.Values{
		"description": {"Another"},
		"type":        {"web service"},
	})
	assert.Equal(t,
		" WHERE LOWER(p.type) LIKE LOWER(?) ESCAPE '!' AND LOWER(p.description) LIKE LOWER(?) ESCAPE '!'",
		c.String())
	assert.Equal(t, []interface{}{"%web service%", "%Another%"}, c.Args())
}

func TestCompile_EscapesWildcards(t *testing.T) {
	c := projectSchema.Compile(url.Values{"type": {"100%_done!"}})
	assert.Equal(t, []interface{}{"%100!%!_done!!%"}, c.Args())
}

func TestCompile_JoinAddedOnce(t *testing.T) {
	c := projectSchema.Compile(url.Values{
		"organization_type": {"Brigade"},
		"organization_city": {"Oakland"},
	})
	assert.Equal(t,
		" JOIN organizations o ON o.name = p.organization_name"+
			" WHERE LOWER(o.type) LIKE LOWER(?) ESCAPE '!' AND LOWER(o.city) LIKE LOWER(?) ESCAPE '!'",
		c.String())
}

func TestCompile_IntField(t *testing.T) {
	tests := []struct {
		value string
		sql   string
		args  []interface{}
	}{
		{"42", " WHERE p.id = ?", []interface{}{int64(42)}},
		{"forty-two", " WHERE 1 = 0", nil},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			c := projectSchema.Compile(url.Values{"id": {tt.value}})
			assert.Equal(t, tt.sql, c.String())
			assert.Equal(t, tt.args, c.Args())
		})
	}
}

func TestClause_WhereAfterCompile(t *testing.T) {
	c := projectSchema.Compile(url.Values{"type": {"web"}})
	c.Join(orgJoin).Where("p.organization_name = ?", "Code for America")
	assert.Equal(t,
		" JOIN organizations o ON o.name = p.organization_name"+
			" WHERE LOWER(p.type) LIKE LOWER(?) ESCAPE '!' AND p.organization_name = ?",
		c.String())
	assert.Equal(t, []interface{}{"%web%", "Code for America"}, c.Args())
}
