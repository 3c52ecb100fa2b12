package baddirective

//companion:generate getter=Get
type Config struct {
	Host string
}
