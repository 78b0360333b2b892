package data

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/leengari/tabledb/internal/domain/errors"
	"github.com/leengari/tabledb/internal/domain/schema"
)

func TestCellCompare(t *testing.T) {
	assert.Assert(t, Int(1).Compare(Int(2)) < 0)
	assert.Assert(t, Int(-5).Compare(Int(-10)) > 0)
	assert.Equal(t, Int(3).Compare(Int(3)), 0)

	assert.Assert(t, Text("apple").Compare(Text("banana")) < 0)
	assert.Assert(t, Text("b").Compare(Text("abc")) > 0)
	assert.Equal(t, Text("x").Compare(Text("x")), 0)

	// different kinds still order consistently
	assert.Assert(t, Int(100).Compare(Text("a")) < 0)
}

func TestCellAccessors(t *testing.T) {
	i := Int(42)
	assert.Equal(t, i.Kind(), schema.KindInteger)
	assert.Equal(t, i.Int(), int64(42))
	assert.Equal(t, i.String(), "42")
	assert.Equal(t, i.Value(), any(int64(42)))

	s := Text("hi")
	assert.Equal(t, s.Kind(), schema.KindText)
	assert.Equal(t, s.Text(), "hi")
	assert.Equal(t, s.Value(), any("hi"))

	assert.Assert(t, !Int(0).Equal(Text("")))
	assert.Equal(t, Cell{}.String(), "<invalid>")
}

func TestParse(t *testing.T) {
	c, err := Parse(schema.KindInteger, " -17 ")
	assert.NilError(t, err)
	assert.Assert(t, c.Equal(Int(-17)))

	c, err = Parse(schema.KindText, "two words")
	assert.NilError(t, err)
	assert.Assert(t, c.Equal(Text("two words")))

	_, err = Parse(schema.KindInteger, "abc")
	assert.ErrorIs(t, err, errors.ErrInvalidArgument)
}

func TestRowValidate(t *testing.T) {
	s := schema.Schema{Columns: []schema.Column{
		{Name: "id", Kind: schema.KindInteger},
		{Name: "name", Kind: schema.KindText},
	}}

	assert.NilError(t, NewRow(Int(1), Text("a")).Validate(s))

	err := NewRow(Text("1"), Text("a")).Validate(s)
	assert.ErrorIs(t, err, errors.ErrSchemaMismatch)
	assert.ErrorContains(t, err, "column id")

	err = NewRow(Int(1)).Validate(s)
	assert.ErrorIs(t, err, errors.ErrSchemaMismatch)
}

func TestParseRow(t *testing.T) {
	s := schema.Schema{Columns: []schema.Column{
		{Name: "id", Kind: schema.KindInteger},
		{Name: "name", Kind: schema.KindText},
	}}

	row, err := ParseRow(s, []string{"7", "seven"})
	assert.NilError(t, err)
	assert.Assert(t, row.Equal(NewRow(Int(7), Text("seven"))))
	assert.Equal(t, row.String(), "(7, seven)")

	_, err = ParseRow(s, []string{"7"})
	assert.ErrorIs(t, err, errors.ErrSchemaMismatch)

	_, err = ParseRow(s, []string{"x", "seven"})
	assert.ErrorIs(t, err, errors.ErrInvalidArgument)
}

func TestRowCopy(t *testing.T) {
	r := NewRow(Int(1), Text("a"))
	c := r.Copy()
	c[0] = Int(2)
	assert.Assert(t, r[0].Equal(Int(1)))
}
