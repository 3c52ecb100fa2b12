package embedded

import "time"

//companion:generate
type Event struct {
	time.Time
	Name string
}
