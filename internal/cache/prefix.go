package cache

import "fmt"

type Prefix string

const (
	ViewMessages Prefix = "view_messages"
)

func (p Prefix) Key(id string) string {
	return fmt.Sprintf("%s:%s", p, id)
}
