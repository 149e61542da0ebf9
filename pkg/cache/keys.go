package cache

import "fmt"

const (
	authorPrefix = "author"
	bookPrefix   = "book"
)

// BookPattern matches every cached book.
const BookPattern = bookPrefix + ":*"

func AuthorKey(id int64) string {
	return fmt.Sprintf("%s:%d", authorPrefix, id)
}

func BookKey(id int64) string {
	return fmt.Sprintf("%s:%d", bookPrefix, id)
}
