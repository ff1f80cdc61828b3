package internal

type loxClass struct {
	name    string
	methods map[string]*loxFunction
}

func (c *loxClass) findMethod(name string) *loxFunction {
	if method, ok := c.methods[name]; ok {
		return method
	}
	return nil
}

func (c *loxClass) arity() int {
	if init := c.findMethod("init"); init != nil {
		return init.arity()
	}
	return 0
}

func (c *loxClass) call(exec *exec, arguments []loxValue) loxValue {
	obj := &loxInstance{
		class:  c,
		fields: make(map[string]loxValue),
	}
	if init := c.findMethod("init"); init != nil {
		init.bind(obj).call(exec, arguments)
	}
	return obj
}

func (c *loxClass) typeName() string { return "class" }

func (c *loxClass) String() string {
	return c.name
}
