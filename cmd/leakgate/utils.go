package leakgate

// pick returns the first non-zero value in CLI > local > global order.
func pick[T comparable](cli T, local, global *T) T {
	var zero T
	if cli != zero {
		return cli
	}
	for _, v := range []*T{local, global} {
		if v != nil && *v != zero {
			return *v
		}
	}
	return zero
}

// pickBool differs from pick: an explicit false in a config file wins over a
// less specific true.
func pickBool(cli bool, local, global *bool) bool {
	if cli {
		return true
	}
	if local != nil {
		return *local
	}
	if global != nil {
		return *global
	}
	return false
}
