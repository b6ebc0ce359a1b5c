package domain

import "time"

// Credentials is the opaque bundle the gateway needs to resume a paired
// session. Data is never interpreted here.
type Credentials struct {
	Account   string
	Data      []byte
	UpdatedAt time.Time
}

func (c *Credentials) Usable() bool {
	return c != nil && len(c.Data) > 0
}
