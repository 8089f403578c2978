package schema

import (
	"fmt"
	"strings"
)

// ColumnType is the closed set of column types a schema can declare.
type ColumnType int

// Supported column types. The zero value is not a valid type.
const (
	SmallInt ColumnType = iota + 1
	Int
	BigInt
	VarChar
	LongText
)

// Resolved lengths for numeric columns declared without an explicit length.
const (
	defaultIntLength    = 6
	defaultBigIntLength = 20
)

var columnTypeNames = map[ColumnType]string{
	SmallInt: "smallint",
	Int:      "int",
	BigInt:   "bigint",
	VarChar:  "varchar",
	LongText: "longtext",
}

// ParseColumnType maps a case-insensitive type token to its ColumnType.
func ParseColumnType(token string) (ColumnType, error) {
	name := strings.ToLower(strings.TrimSpace(token))
	for t, n := range columnTypeNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedType, token)
}

// Valid reports whether t belongs to the supported enumeration.
func (t ColumnType) Valid() bool {
	_, ok := columnTypeNames[t]
	return ok
}

// IsString reports whether t is a character type.
func (t ColumnType) IsString() bool {
	return t == VarChar || t == LongText
}

// String returns the lower-case SQL name of the type.
func (t ColumnType) String() string {
	if n, ok := columnTypeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("ColumnType(%d)", int(t))
}

// defaultLength returns the length a column of type t resolves to when no
// explicit length was assigned.
func (t ColumnType) defaultLength() (int, bool) {
	switch t {
	case SmallInt, Int:
		return defaultIntLength, true
	case BigInt:
		return defaultBigIntLength, true
	default:
		return 0, false
	}
}

// Modifier is the single rendering clause a column gets in generated DDL.
type Modifier int

// Modifiers. See Column.Modifier for how flags map onto them.
const (
	ModifierNone Modifier = iota
	ModifierDefault
	ModifierUnique
	ModifierPrimary
)

func (m Modifier) String() string {
	switch m {
	case ModifierDefault:
		return "default"
	case ModifierUnique:
		return "unique"
	case ModifierPrimary:
		return "primary"
	default:
		return "none"
	}
}
