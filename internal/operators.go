package internal

type numberOperation func(x, y loxNumber) loxValue

type stringOperation func(x, y loxString) loxValue

var numberOperations = map[tokenType]numberOperation{
	tkPlus: func(x, y loxNumber) loxValue {
		return x + y
	},
	tkMinus: func(x, y loxNumber) loxValue {
		return x - y
	},
	tkStar: func(x, y loxNumber) loxValue {
		return x * y
	},
	tkSlash: func(x, y loxNumber) loxValue {
		return x / y
	},
	tkGreater: func(x, y loxNumber) loxValue {
		return loxBool(x > y)
	},
	tkGreaterEqual: func(x, y loxNumber) loxValue {
		return loxBool(x >= y)
	},
	tkLess: func(x, y loxNumber) loxValue {
		return loxBool(x < y)
	},
	tkLessEqual: func(x, y loxNumber) loxValue {
		return loxBool(x <= y)
	},
}

var stringOperations = map[tokenType]stringOperation{
	tkPlus: func(x, y loxString) loxValue {
		return x + y
	},
	tkGreater: func(x, y loxString) loxValue {
		return loxBool(x > y)
	},
	tkGreaterEqual: func(x, y loxString) loxValue {
		return loxBool(x >= y)
	},
	tkLess: func(x, y loxString) loxValue {
		return loxBool(x < y)
	},
	tkLessEqual: func(x, y loxString) loxValue {
		return loxBool(x <= y)
	},
}

// operandsError picks the fault for a binary operator applied to the wrong kinds
func operandsError(op tokenType) error {
	switch op {
	case tkPlus, tkGreater, tkGreaterEqual, tkLess, tkLessEqual:
		return errNumbersOrStrings
	default:
		return errOnlyNumbers
	}
}
