// Package ast defines the syntax tree produced by the Borland demangler.
package ast

import (
	"fmt"
	"strings"
)

// NodeKind identifies the type of AST node.
type NodeKind int

const (
	KindUnknown NodeKind = iota
	// Name nodes
	KindName
	KindNestedName
	KindTemplate
	// Symbol nodes
	KindFunction
	// Type nodes
	KindFunctionType
	KindPointerType
	KindReferenceType
	KindRValueReferenceType
	KindArrayType
	KindNamedType
	KindBuiltInType
	KindCharType
	KindIntegralType
	KindFloatType
	// Container nodes
	KindNodeArray
)

// Node is the interface implemented by all AST nodes.
// Nodes are immutable once constructed; back-references share the same
// node value between parents, so the tree is a DAG.
type Node interface {
	Kind() NodeKind
	fmt.Stringer
}

// Qualifiers represents the const/volatile attributes of a type node.
type Qualifiers struct {
	IsVolatile bool
	IsConst    bool
}

func (q Qualifiers) IsEmpty() bool {
	return !q.IsVolatile && !q.IsConst
}

func (q Qualifiers) String() string {
	var parts []string
	if q.IsConst {
		parts = append(parts, "const")
	}
	if q.IsVolatile {
		parts = append(parts, "volatile")
	}
	return strings.Join(parts, " ")
}

// prefix renders the qualifiers followed by a space, or "" when empty.
func (q Qualifiers) prefix() string {
	if q.IsEmpty() {
		return ""
	}
	return q.String() + " "
}

// Name represents a single name segment.
type Name struct {
	Name string
}

func (n *Name) Kind() NodeKind { return KindName }
func (n *Name) String() string { return n.Name }

// NestedName represents a namespace-qualified name.
// Segments fold left-associatively: a::b::c is (a::b)::c.
type NestedName struct {
	Qualifier Node
	Name      Node
}

func (n *NestedName) Kind() NodeKind { return KindNestedName }

func (n *NestedName) String() string {
	return n.Qualifier.String() + "::" + n.Name.String()
}

// Template represents a template instantiation.
type Template struct {
	Name Node
	Args *NodeArray
}

func (n *Template) Kind() NodeKind { return KindTemplate }

func (n *Template) String() string {
	args := ""
	if n.Args != nil {
		args = n.Args.String()
	}
	if strings.HasSuffix(args, ">") {
		args += " "
	}
	return n.Name.String() + "<" + args + ">"
}

// NodeArray is an append-only ordered node list used for function
// parameters and template arguments. Positional lookup is O(1) so
// back-references resolve against it directly.
type NodeArray struct {
	nodes []Node
}

func (n *NodeArray) Kind() NodeKind { return KindNodeArray }

func (n *NodeArray) String() string {
	parts := make([]string, len(n.nodes))
	for i, node := range n.nodes {
		parts[i] = node.String()
	}
	return strings.Join(parts, ", ")
}

// Append adds a node to the end of the list.
func (n *NodeArray) Append(node Node) {
	n.nodes = append(n.nodes, node)
}

// Get returns the node at 0-based index i.
func (n *NodeArray) Get(i int) Node {
	return n.nodes[i]
}

// Size returns the number of nodes in the list.
func (n *NodeArray) Size() int {
	return len(n.nodes)
}

// Empty reports whether the list has no nodes.
func (n *NodeArray) Empty() bool {
	return len(n.nodes) == 0
}

// CallConv represents a function calling convention.
type CallConv int

const (
	// CallConvUnknown covers conventions the mangling does not uniquely
	// encode (cdecl and pascal share a code). It is not an error.
	CallConvUnknown CallConv = iota
	CallConvFastcall
	CallConvStdcall
)

var callConvNames = map[CallConv]string{
	CallConvFastcall: "__fastcall",
	CallConvStdcall:  "__stdcall",
}

func (c CallConv) String() string {
	return callConvNames[c]
}

// Function represents a demangled function symbol.
type Function struct {
	Name Node
	Type *FunctionType
}

func (n *Function) Kind() NodeKind { return KindFunction }

func (n *Function) String() string {
	var sb strings.Builder

	if n.Type.ReturnType != nil {
		sb.WriteString(n.Type.ReturnType.String())
		sb.WriteByte(' ')
	}
	if cc := n.Type.CallConv.String(); cc != "" {
		sb.WriteString(cc)
		sb.WriteByte(' ')
	}

	sb.WriteString(n.Name.String())

	sb.WriteByte('(')
	if n.Type.Params != nil {
		sb.WriteString(n.Type.Params.String())
	}
	sb.WriteByte(')')

	if !n.Type.Quals.IsEmpty() {
		sb.WriteByte(' ')
		sb.WriteString(n.Type.Quals.String())
	}

	return sb.String()
}

// FunctionType represents a function signature used as a type
// (function pointers and references) or carried by a Function symbol.
type FunctionType struct {
	CallConv   CallConv
	Params     *NodeArray // nil when the parameter list is empty
	ReturnType Node       // nil when the mangling carries no return type
	Quals      Qualifiers
}

func (n *FunctionType) Kind() NodeKind { return KindFunctionType }

func (n *FunctionType) String() string {
	var sb strings.Builder

	if n.ReturnType != nil {
		sb.WriteString(n.ReturnType.String())
		sb.WriteByte(' ')
	}
	if cc := n.CallConv.String(); cc != "" {
		sb.WriteString(cc)
		sb.WriteByte(' ')
	}

	sb.WriteByte('(')
	if n.Params != nil {
		sb.WriteString(n.Params.String())
	}
	sb.WriteByte(')')

	if !n.Quals.IsEmpty() {
		sb.WriteByte(' ')
		sb.WriteString(n.Quals.String())
	}

	return sb.String()
}

// PointerType represents a pointer type. Qualifiers apply to the
// pointer itself, not the pointee.
type PointerType struct {
	Pointee Node
	Quals   Qualifiers
}

func (n *PointerType) Kind() NodeKind { return KindPointerType }

func (n *PointerType) String() string {
	s := n.Pointee.String() + "*"
	if !n.Quals.IsEmpty() {
		s += " " + n.Quals.String()
	}
	return s
}

// ReferenceType represents an lvalue reference. The reference itself
// never carries qualifiers; the referent may.
type ReferenceType struct {
	Referent Node
}

func (n *ReferenceType) Kind() NodeKind { return KindReferenceType }
func (n *ReferenceType) String() string { return n.Referent.String() + "&" }

// RValueReferenceType represents an rvalue reference.
type RValueReferenceType struct {
	Referent Node
}

func (n *RValueReferenceType) Kind() NodeKind { return KindRValueReferenceType }
func (n *RValueReferenceType) String() string { return n.Referent.String() + "&&" }

// ArrayType represents a fixed-length array type.
type ArrayType struct {
	Element Node
	Length  uint
	Quals   Qualifiers
}

func (n *ArrayType) Kind() NodeKind { return KindArrayType }

func (n *ArrayType) String() string {
	return fmt.Sprintf("%s%s[%d]", n.Quals.prefix(), n.Element.String(), n.Length)
}

// NamedType represents a user-defined type referenced by qualified name.
type NamedType struct {
	Name  Node
	Quals Qualifiers
}

func (n *NamedType) Kind() NodeKind { return KindNamedType }

func (n *NamedType) String() string {
	return n.Quals.prefix() + n.Name.String()
}

// BuiltInType represents a fundamental type with a fixed spelling
// (bool, void, wchar_t).
type BuiltInType struct {
	Spelling string
	Quals    Qualifiers
}

func (n *BuiltInType) Kind() NodeKind { return KindBuiltInType }

func (n *BuiltInType) String() string {
	return n.Quals.prefix() + n.Spelling
}

// ThreeStateSignedness distinguishes char from its explicitly signed
// and unsigned variants, which are distinct types in C++.
type ThreeStateSignedness int

const (
	SignednessNoPrefix ThreeStateSignedness = iota
	SignednessSigned
	SignednessUnsigned
)

// CharType represents the char family.
type CharType struct {
	Signedness ThreeStateSignedness
	Quals      Qualifiers
}

func (n *CharType) Kind() NodeKind { return KindCharType }

func (n *CharType) String() string {
	switch n.Signedness {
	case SignednessSigned:
		return n.Quals.prefix() + "signed char"
	case SignednessUnsigned:
		return n.Quals.prefix() + "unsigned char"
	default:
		return n.Quals.prefix() + "char"
	}
}

// IntegralType represents short, int, long and long long, with an
// optional unsigned marker.
type IntegralType struct {
	Spelling   string
	IsUnsigned bool
	Quals      Qualifiers
}

func (n *IntegralType) Kind() NodeKind { return KindIntegralType }

func (n *IntegralType) String() string {
	if n.IsUnsigned {
		return n.Quals.prefix() + "unsigned " + n.Spelling
	}
	return n.Quals.prefix() + n.Spelling
}

// FloatType represents float, double and long double.
type FloatType struct {
	Spelling string
	Quals    Qualifiers
}

func (n *FloatType) Kind() NodeKind { return KindFloatType }

func (n *FloatType) String() string {
	return n.Quals.prefix() + n.Spelling
}
