package ast

// Context constructs and owns the nodes of one parse. Leaf type nodes
// are interned so that repeated occurrences of the same type share one
// node; composites are allocated fresh because their children already
// carry the sharing. A Context must not be shared between goroutines.
type Context struct {
	leaves map[leafKey]Node
}

type leafKey struct {
	kind       NodeKind
	spelling   string
	isUnsigned bool
	signedness ThreeStateSignedness
	quals      Qualifiers
}

// NewContext creates an empty node context.
func NewContext() *Context {
	return &Context{leaves: make(map[leafKey]Node)}
}

func (c *Context) intern(key leafKey, build func() Node) Node {
	if n, ok := c.leaves[key]; ok {
		return n
	}
	n := build()
	c.leaves[key] = n
	return n
}

// NewName creates a name segment node.
func (c *Context) NewName(name string) Node {
	return &Name{Name: name}
}

// NewNestedName creates a namespace-qualified name node.
func (c *Context) NewNestedName(qualifier, name Node) Node {
	return &NestedName{Qualifier: qualifier, Name: name}
}

// NewTemplate creates a template instantiation node.
func (c *Context) NewTemplate(name Node, args *NodeArray) Node {
	return &Template{Name: name, Args: args}
}

// NewFunction creates a function symbol node.
func (c *Context) NewFunction(name Node, typ *FunctionType) Node {
	return &Function{Name: name, Type: typ}
}

// NewFunctionType creates a function signature node.
func (c *Context) NewFunctionType(cc CallConv, params *NodeArray, ret Node, quals Qualifiers) *FunctionType {
	return &FunctionType{CallConv: cc, Params: params, ReturnType: ret, Quals: quals}
}

// NewPointerType creates a pointer type node.
func (c *Context) NewPointerType(pointee Node, quals Qualifiers) Node {
	return &PointerType{Pointee: pointee, Quals: quals}
}

// NewReferenceType creates an lvalue reference type node.
func (c *Context) NewReferenceType(referent Node) Node {
	return &ReferenceType{Referent: referent}
}

// NewRValueReferenceType creates an rvalue reference type node.
func (c *Context) NewRValueReferenceType(referent Node) Node {
	return &RValueReferenceType{Referent: referent}
}

// NewArrayType creates an array type node.
func (c *Context) NewArrayType(element Node, length uint, quals Qualifiers) Node {
	return &ArrayType{Element: element, Length: length, Quals: quals}
}

// NewNamedType creates a user-defined type node.
func (c *Context) NewNamedType(name Node, quals Qualifiers) Node {
	return &NamedType{Name: name, Quals: quals}
}

// NewBuiltInType creates (or reuses) a built-in type node.
func (c *Context) NewBuiltInType(spelling string, quals Qualifiers) Node {
	key := leafKey{kind: KindBuiltInType, spelling: spelling, quals: quals}
	return c.intern(key, func() Node {
		return &BuiltInType{Spelling: spelling, Quals: quals}
	})
}

// NewCharType creates (or reuses) a char family node.
func (c *Context) NewCharType(signedness ThreeStateSignedness, quals Qualifiers) Node {
	key := leafKey{kind: KindCharType, signedness: signedness, quals: quals}
	return c.intern(key, func() Node {
		return &CharType{Signedness: signedness, Quals: quals}
	})
}

// NewIntegralType creates (or reuses) an integral type node.
func (c *Context) NewIntegralType(spelling string, isUnsigned bool, quals Qualifiers) Node {
	key := leafKey{kind: KindIntegralType, spelling: spelling, isUnsigned: isUnsigned, quals: quals}
	return c.intern(key, func() Node {
		return &IntegralType{Spelling: spelling, IsUnsigned: isUnsigned, Quals: quals}
	})
}

// NewFloatType creates (or reuses) a floating-point type node.
func (c *Context) NewFloatType(spelling string, quals Qualifiers) Node {
	key := leafKey{kind: KindFloatType, spelling: spelling, quals: quals}
	return c.intern(key, func() Node {
		return &FloatType{Spelling: spelling, Quals: quals}
	})
}

// NewNodeArray creates an empty ordered node list.
func (c *Context) NewNodeArray() *NodeArray {
	return &NodeArray{}
}
