package a

const verbose = false

func level(v int) string {
	switch v {
	case 0:
		return "quiet"
	case 1:
		return "normal"
	}
	return "loud"
}

func constant() string {
	switch verbose {
	case true: // want "case clause is unreachable"
		return "verbose"
	case false:
		return "terse"
	}
	return "unknown"
}

func tagless() int {
	switch {
	case !verbose:
		return 0
	case len("x") > 0: // want "case clause is unreachable"
		return 1
	default: // want "case clause is unreachable"
		return 2
	}
}

func types(x interface{}) int {
	switch x.(type) {
	case nil:
		return 0
	case interface{}:
		return 1
	default:
		return 2
	}
}

func closure() func() int {
	return func() int {
		switch 3 {
		case 1, 2: // want "case clause is unreachable"
			return 0
		}
		return 1
	}
}
