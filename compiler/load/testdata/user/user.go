package user

import (
	"time"

	"github.com/google/uuid"
)

//companion:generate value=Get update=Set derive_field="Clone, Hash" serde_value=`json:"payload"`
type User struct {
	ID        uuid.UUID `companion:"rename=Ident"`
	Name      string
	Age       uint32
	CreatedAt time.Time
	secret    string `companion:"-"`
}

//companion:generate
type Group struct {
	Name, Region string
	Active       bool
}

// Plain is not annotated and loads only when named explicitly.
type Plain struct {
	Label string
	Count int
}
