package ast

import "testing"

func TestTypeRendering(t *testing.T) {
	ctx := NewContext()

	intType := ctx.NewIntegralType("int", false, Qualifiers{})
	constInt := ctx.NewIntegralType("int", false, Qualifiers{IsConst: true})

	cases := []struct {
		name string
		node Node
		want string
	}{
		{"Int", intType, "int"},
		{"ConstInt", constInt, "const int"},
		{"ConstVolatile", ctx.NewIntegralType("long", false, Qualifiers{IsConst: true, IsVolatile: true}), "const volatile long"},
		{"UnsignedShort", ctx.NewIntegralType("short", true, Qualifiers{}), "unsigned short"},
		{"Char", ctx.NewCharType(SignednessNoPrefix, Qualifiers{}), "char"},
		{"SignedChar", ctx.NewCharType(SignednessSigned, Qualifiers{}), "signed char"},
		{"UnsignedChar", ctx.NewCharType(SignednessUnsigned, Qualifiers{}), "unsigned char"},
		{"Void", ctx.NewBuiltInType("void", Qualifiers{}), "void"},
		{"LongDouble", ctx.NewFloatType("long double", Qualifiers{}), "long double"},
		{"PointerToConstInt", ctx.NewPointerType(constInt, Qualifiers{}), "const int*"},
		{"ConstPointer", ctx.NewPointerType(intType, Qualifiers{IsConst: true}), "int* const"},
		{"Reference", ctx.NewReferenceType(intType), "int&"},
		{"RValueReference", ctx.NewRValueReferenceType(intType), "int&&"},
		{"Array", ctx.NewArrayType(intType, 3, Qualifiers{}), "int[3]"},
		{"ConstArray", ctx.NewArrayType(intType, 8, Qualifiers{IsConst: true}), "const int[8]"},
		{"NamedType", ctx.NewNamedType(ctx.NewName("Foo"), Qualifiers{}), "Foo"},
	}

	for _, tc := range cases {
		if got := tc.node.String(); got != tc.want {
			t.Errorf("%s: String() = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestNameRendering(t *testing.T) {
	ctx := NewContext()

	a := ctx.NewName("a")
	b := ctx.NewName("b")
	c := ctx.NewName("c")

	nested := ctx.NewNestedName(ctx.NewNestedName(a, b), c)
	if got := nested.String(); got != "a::b::c" {
		t.Fatalf("NestedName.String() = %q, want %q", got, "a::b::c")
	}
}

func TestTemplateRendering(t *testing.T) {
	ctx := NewContext()

	args := ctx.NewNodeArray()
	args.Append(ctx.NewIntegralType("int", false, Qualifiers{}))
	vec := ctx.NewTemplate(ctx.NewName("vec"), args)

	if got := vec.String(); got != "vec<int>" {
		t.Fatalf("Template.String() = %q, want %q", got, "vec<int>")
	}

	// A nested closing angle bracket must not form ">>".
	outerArgs := ctx.NewNodeArray()
	outerArgs.Append(vec)
	outer := ctx.NewTemplate(ctx.NewName("list"), outerArgs)

	if got := outer.String(); got != "list<vec<int> >" {
		t.Fatalf("nested Template.String() = %q, want %q", got, "list<vec<int> >")
	}
}

func TestFunctionRendering(t *testing.T) {
	ctx := NewContext()

	params := ctx.NewNodeArray()
	params.Append(ctx.NewIntegralType("int", false, Qualifiers{}))
	params.Append(ctx.NewCharType(SignednessNoPrefix, Qualifiers{}))

	fn := ctx.NewFunction(
		ctx.NewNestedName(ctx.NewName("Foo"), ctx.NewName("bar")),
		ctx.NewFunctionType(CallConvFastcall, params, ctx.NewBuiltInType("void", Qualifiers{}), Qualifiers{}),
	)

	want := "void __fastcall Foo::bar(int, char)"
	if got := fn.String(); got != want {
		t.Fatalf("Function.String() = %q, want %q", got, want)
	}
}

func TestFunctionRenderingNoParamsNoReturn(t *testing.T) {
	ctx := NewContext()

	fn := ctx.NewFunction(
		ctx.NewName("free"),
		ctx.NewFunctionType(CallConvUnknown, nil, nil, Qualifiers{}),
	)

	if got := fn.String(); got != "free()" {
		t.Fatalf("Function.String() = %q, want %q", got, "free()")
	}
}

func TestConstMethodRendering(t *testing.T) {
	ctx := NewContext()

	fn := ctx.NewFunction(
		ctx.NewNestedName(ctx.NewName("Foo"), ctx.NewName("get")),
		ctx.NewFunctionType(CallConvUnknown, nil, nil, Qualifiers{IsConst: true}),
	)

	if got := fn.String(); got != "Foo::get() const" {
		t.Fatalf("Function.String() = %q, want %q", got, "Foo::get() const")
	}
}

func TestContextInternsLeafTypes(t *testing.T) {
	ctx := NewContext()

	a := ctx.NewIntegralType("int", false, Qualifiers{})
	b := ctx.NewIntegralType("int", false, Qualifiers{})
	if a != b {
		t.Fatal("identical integral types should be the same node")
	}

	c := ctx.NewIntegralType("int", false, Qualifiers{IsConst: true})
	if a == c {
		t.Fatal("differently qualified types must not be shared")
	}

	u := ctx.NewIntegralType("int", true, Qualifiers{})
	if a == u {
		t.Fatal("unsigned and signed int must not be shared")
	}

	if ctx.NewCharType(SignednessSigned, Qualifiers{}) == ctx.NewCharType(SignednessUnsigned, Qualifiers{}) {
		t.Fatal("char signedness variants must not be shared")
	}

	// A fresh context must not share nodes with another.
	other := NewContext()
	if other.NewIntegralType("int", false, Qualifiers{}) == a {
		t.Fatal("contexts must not share nodes")
	}
}

func TestNodeArray(t *testing.T) {
	ctx := NewContext()

	arr := ctx.NewNodeArray()
	if !arr.Empty() || arr.Size() != 0 {
		t.Fatal("new NodeArray should be empty")
	}

	n := ctx.NewName("x")
	arr.Append(n)
	arr.Append(n)

	if arr.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", arr.Size())
	}
	if arr.Get(0) != n || arr.Get(1) != n {
		t.Fatal("Get should return the appended node")
	}
	if got := arr.String(); got != "x, x" {
		t.Fatalf("String() = %q, want %q", got, "x, x")
	}
}

func TestQualifiers(t *testing.T) {
	if !(Qualifiers{}).IsEmpty() {
		t.Fatal("zero Qualifiers should be empty")
	}
	if got := (Qualifiers{IsConst: true}).String(); got != "const" {
		t.Fatalf("String() = %q, want %q", got, "const")
	}
	if got := (Qualifiers{IsVolatile: true}).String(); got != "volatile" {
		t.Fatalf("String() = %q, want %q", got, "volatile")
	}
	if got := (Qualifiers{IsConst: true, IsVolatile: true}).String(); got != "const volatile" {
		t.Fatalf("String() = %q, want %q", got, "const volatile")
	}
}
