package repository

import (
	"fmt"
	"strings"
)

// Conditions собирает WHERE с позиционными параметрами $1, $2...
type Conditions struct {
	parts []string
	args  []any
}

// Add добавляет условие, %d в cond заменяется номером параметра
func (c *Conditions) Add(cond string, arg any) {
	c.args = append(c.args, arg)
	c.parts = append(c.parts, fmt.Sprintf(cond, len(c.args)))
}

func (c *Conditions) Where() string {
	if len(c.parts) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(c.parts, " AND ")
}

func (c *Conditions) Args() []any {
	return c.args
}
