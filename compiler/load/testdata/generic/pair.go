package generic

type (
	//companion:generate
	Pair[K comparable, V any] struct {
		Key     K
		Value   V
		Weight  float64
		History []V
	}
)
