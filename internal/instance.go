package internal

import "fmt"

type loxInstance struct {
	class  *loxClass
	fields map[string]loxValue
}

// get looks up fields before methods, so a field shadows a method
func (o *loxInstance) get(name *token) (loxValue, error) {
	if val, ok := o.fields[name.lexeme]; ok {
		return val, nil
	}
	if method := o.class.findMethod(name.lexeme); method != nil {
		return method.bind(o), nil
	}
	return nil, fmt.Errorf("%w '%s'.", errUndefinedProp, name.lexeme)
}

func (o *loxInstance) set(name *token, value loxValue) {
	o.fields[name.lexeme] = value
}

func (o *loxInstance) typeName() string { return "instance" }

func (o *loxInstance) String() string {
	return o.class.name + " instance"
}
