package badtag

//companion:generate
type Config struct {
	Host string `companion:"omit"`
}
