package notstruct

//companion:generate
type Level int
