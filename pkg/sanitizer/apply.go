package sanitizer

// Apply runs value through transforms in order.
func Apply[T any](value T, transforms ...func(T) T) T {
	result := value

	for _, transform := range transforms {
		result = transform(result)
	}

	return result
}

// Compose bundles transforms into one reusable conversion.
// A nil entry is skipped.
func Compose[T any](transforms ...func(T) T) func(T) T {
	fns := make([]func(T) T, 0, len(transforms))
	for _, fn := range transforms {
		if fn != nil {
			fns = append(fns, fn)
		}
	}

	return func(value T) T {
		return Apply(value, fns...)
	}
}
