package types

import "fmt"

type TableName string

func (s TableName) Name() string {
	return fmt.Sprintf("%s%s", TABLE_PREFIX, s)
}

const TABLE_PREFIX = "jayline_"

const (
	TABLE_DOCUMENT   = TableName("documents")
	TABLE_SUGGESTION = TableName("suggestions")
	TABLE_POST       = TableName("posts")
)
