package ptr

// Ptr retourne un pointeur vers une copie de v
func Ptr[T any](v T) *T {
	return &v
}

// Value déréférence p, valeur zéro de T si nil
func Value[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
