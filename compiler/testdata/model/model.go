package model

import "time"

//companion:generate
type Ticket struct {
	ID      int
	Title   string
	Body    string `companion:"rename=Text"`
	Created time.Time
	note    string `companion:"-"`
}
