// Package companion holds the small runtime surface shared by all artifacts
// produced by the companion code generator: the capability interface that
// generated records satisfy when their accessor names are left at the
// defaults, and the error types returned by generated lookup and conversion
// functions.
//
// Everything else in this module runs at build time. See compiler/gen for
// the generator itself and cmd/companion for the command-line front end.
package companion

// Companion is the capability interface bound to every generated record
// whose accessor names are the defaults (Value, Update, Fields). F is the
// record's field-selector enumeration and V its tagged-value union. It lets
// callers program uniformly against any generated record:
//
//	func dump[F comparable, V any](c companion.Companion[F, V]) {
//		for _, f := range c.Fields() {
//			fmt.Println(f, c.Value(f))
//		}
//	}
//
// Records generated with customized accessor names expose the same
// operations under those names but are not bound to this interface.
type Companion[F comparable, V any] interface {
	// Value returns the current value of the selected field, wrapped in the
	// matching tagged-value variant.
	Value(field F) V

	// Update writes the payload carried by value into the field it names,
	// discarding the old value.
	Update(value V)

	// Fields returns every non-skipped field selector in declaration order.
	// The returned slice is a view over a shared package-level table and
	// must not be modified.
	Fields() []F

	// AsValues applies Value to every element of Fields, in order.
	AsValues() []V
}
