package model

import (
	"fmt"
	"strconv"
	"time"
)

// Product is one row of the products table. Every column is optional and
// carried as display text.
type Product struct {
	Number            Field
	Name              Field
	Name2             Field
	Supplier          Field
	APK               Field
	Price             Field
	Volume            Field
	AlcoholPercentage Field
	Category1         Field
	Category2         Field
	Category3         Field
	Country           Field
	LaunchDate        Field
}

// Field is a nullable column value. A NULL column scans to the zero Field,
// which prints as the empty string.
type Field struct {
	Text  string
	Valid bool
}

func Text(s string) Field {
	return Field{Text: s, Valid: true}
}

func (f Field) String() string {
	return f.Text
}

// Scan implements sql.Scanner for every SQLite storage class.
func (f *Field) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*f = Field{}
	case string:
		*f = Text(v)
	case []byte:
		*f = Text(string(v))
	case int64:
		*f = Text(strconv.FormatInt(v, 10))
	case float64:
		*f = Text(strconv.FormatFloat(v, 'f', -1, 64))
	case bool:
		*f = Text(strconv.FormatBool(v))
	case time.Time:
		*f = Text(v.Format(time.RFC3339))
	default:
		return fmt.Errorf("unsupported column type %T", src)
	}
	return nil
}
