package vtab

import "strings"

// ColumnType is the declared type of a relation column.
type ColumnType string

const (
	TypeText     ColumnType = "text"
	TypeInteger  ColumnType = "integer"
	TypeBool     ColumnType = "bool"
	TypeDateTime ColumnType = "datetime"
	TypeHidden   ColumnType = "hidden"
)

// Column describes one relation column.
type Column struct {
	Name string
	Type ColumnType
}

// Hidden reports whether the column is a parameter column.
func (c Column) Hidden() bool {
	return c.Type == TypeHidden
}

// Schema describes a relation.
type Schema struct {
	Name    string
	Columns []Column
}

// SQL renders the schema as the CREATE TABLE statement SQLite expects from a
// virtual table.
func (s Schema) SQL() string {
	var b strings.Builder
	b.WriteString("CREATE TABLE ")
	b.WriteString(s.Name)
	b.WriteString("(")
	for i, c := range s.Columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c.Name)
		b.WriteString(" ")
		b.WriteString(strings.ToUpper(string(c.Type)))
	}
	b.WriteString(")")
	return b.String()
}

// Index returns the position of the named column, or -1.
func (s Schema) Index(name string) int {
	for i, c := range s.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// VisibleColumns returns the indexes of the non-hidden columns.
func (s Schema) VisibleColumns() []int {
	var idx []int
	for i, c := range s.Columns {
		if !c.Hidden() {
			idx = append(idx, i)
		}
	}
	return idx
}

// HiddenColumnNames returns the names of the parameter columns in order.
func (s Schema) HiddenColumnNames() []string {
	var names []string
	for _, c := range s.Columns {
		if c.Hidden() {
			names = append(names, c.Name)
		}
	}
	return names
}
