// Package parser implements the recursive-descent parser for the Borland
// C++ name mangling scheme. It consumes the mangled string left to right
// with no backtracking and produces an AST, or fails into a single
// terminal error state.
package parser

import (
	"strings"

	"github.com/skdltmxn/borland-go/ast"
	"github.com/skdltmxn/borland-go/internal/cursor"
)

// Status is the tri-state parse status. It is monotonic: once a parse
// reaches StatusInvalid no further production may succeed.
type Status int

const (
	StatusInProgress Status = iota
	StatusSuccess
	StatusInvalid
)

// maxDepth bounds grammar nesting (pointers to pointers, nested
// templates). Input is attacker-influenceable, so exhausting the call
// stack must surface as an ordinary invalid name instead.
const maxDepth = 512

// Parser parses one mangled name. It is single-shot: create one per
// input with New and call Parse once.
type Parser struct {
	cur    cursor.Cursor
	ctx    *ast.Context
	status Status
	depth  int
	root   ast.Node
}

// New creates a parser over the given mangled name. Nodes are allocated
// through ctx.
func New(ctx *ast.Context, mangled string) *Parser {
	return &Parser{
		cur: cursor.New(mangled),
		ctx: ctx,
	}
}

// Parse runs the grammar's top production. It returns the AST root on
// success and nil otherwise; Status reports which.
//
//	<mangled-name> ::= @ <qualified-name> $ <type-info>
func (p *Parser) Parse() ast.Node {
	if p.status != StatusInProgress {
		return p.root
	}

	// This grammar covers mangled functions only; anything without the
	// leading sigil is rejected, never partially parsed.
	if !p.cur.PeekIs('@') {
		p.fail()
		return nil
	}

	p.parseFunction()

	if p.status == StatusSuccess && !p.cur.Empty() {
		p.status = StatusInvalid
		p.root = nil
	}

	return p.root
}

// Status returns the current parse status.
func (p *Parser) Status() Status {
	return p.status
}

// AST returns the parse result, or nil unless the parse succeeded.
func (p *Parser) AST() ast.Node {
	if p.status != StatusSuccess {
		return nil
	}
	return p.root
}

// Offset returns how many input bytes have been consumed.
func (p *Parser) Offset() int {
	return p.cur.Offset()
}

// Status plumbing. The first failure wins; every production checks the
// status on entry and after each fallible sub-parse, so a failed parser
// consumes nothing further.

func (p *Parser) statusOK() bool {
	return p.status == StatusInProgress
}

func (p *Parser) fail() {
	p.status = StatusInvalid
}

// checkResult treats a nil node as a failure even if no sub-parse
// reported one; a nil result with the status still in progress has no
// valid meaning.
func (p *Parser) checkResult(node ast.Node) bool {
	if node == nil || p.status == StatusInvalid {
		p.status = StatusInvalid
		return false
	}
	return true
}

func (p *Parser) consume(b byte) bool {
	if !p.cur.ConsumeFront(b) {
		p.fail()
		return false
	}
	return true
}

func (p *Parser) enter() bool {
	if !p.statusOK() {
		return false
	}
	if p.depth >= maxDepth {
		p.fail()
		return false
	}
	p.depth++
	return true
}

func (p *Parser) leave() {
	p.depth--
}

// parseFunction parses the whole function production.
//
//	<mangled-function> ::= @ <qualified-name> $ <qualifiers> <function-type>
func (p *Parser) parseFunction() {
	p.consume('@')

	name := p.parseFuncName()
	if !p.checkResult(name) {
		return
	}

	if !p.consume('$') {
		return
	}

	quals := p.parseQualifiers()
	funcType := p.parseFuncType(quals)
	if funcType == nil || !p.statusOK() {
		p.fail()
		return
	}

	if !p.cur.Empty() {
		p.fail()
		return
	}

	p.status = StatusSuccess
	p.root = p.ctx.NewFunction(name, funcType)
}

// parseFuncName parses a qualified name in unbounded mode: segments
// separated by '@' and terminated by the start of the type suffix
// ('$', '%' or another '@').
func (p *Parser) parseFuncName() ast.Node {
	var name ast.Node

	for {
		seg, ok := p.cur.CutUntilAny("$%@")
		if !ok {
			p.fail()
			return nil
		}
		if seg != "" {
			name = p.foldName(name, p.ctx.NewName(seg))
		}
		if !p.cur.ConsumeFront('@') {
			break
		}
	}

	if p.cur.PeekIs('%') {
		name = p.parseTemplate(name)
	}

	p.checkResult(name)
	return name
}

// parseName parses a qualified name in bounded mode: it must consume
// exactly the bytes up to the absolute offset end. Only '@' and '%' act
// as sigils here; the remainder at the boundary becomes the final
// segment. Returns nil without failing the status when nothing valid
// was found; the caller decides.
func (p *Parser) parseName(end int) ast.Node {
	var name ast.Node

	for p.cur.Offset() < end {
		window := p.cur.Remaining()[:end-p.cur.Offset()]
		idx := strings.IndexAny(window, "@%")
		if idx < 0 {
			seg, _ := p.cur.Advance(len(window))
			name = p.foldName(name, p.ctx.NewName(seg))
			break
		}

		if idx > 0 {
			seg, _ := p.cur.Advance(idx)
			name = p.foldName(name, p.ctx.NewName(seg))
		}
		if !p.cur.ConsumeFront('@') {
			break
		}
	}

	if p.cur.PeekIs('%') && p.cur.Offset() != end {
		name = p.parseTemplateBounded(name, end)
	}

	return name
}

func (p *Parser) foldName(left, right ast.Node) ast.Node {
	if left == nil {
		return right
	}
	return p.ctx.NewNestedName(left, right)
}

// parseTemplate parses a template instantiation in unbounded mode.
//
//	<template> ::= % <name> $ <template-args> %
func (p *Parser) parseTemplate(namespace ast.Node) ast.Node {
	if !p.consume('%') {
		return nil
	}

	templateName, ok := p.cur.CutUntil('$')
	if !ok || templateName == "" {
		p.fail()
		return nil
	}
	nameNode := p.foldName(namespace, p.ctx.NewName(templateName))

	if !p.consume('$') {
		return nil
	}

	args := p.parseTemplateArgs()
	if !p.checkResult(args) {
		return nil
	}

	if !p.consume('%') {
		return nil
	}

	return p.ctx.NewTemplate(nameNode, args)
}

// parseTemplateArgs collects template arguments until the closing '%'.
// Back-reference scope is local to this argument list.
func (p *Parser) parseTemplateArgs() *ast.NodeArray {
	args := p.ctx.NewNodeArray()

	for !p.cur.PeekIs('%') {
		if p.cur.Empty() {
			p.fail()
			return nil
		}

		if p.cur.ConsumeFront('t') {
			backref := p.cur.PeekNumber()
			if backref > 0 && backref <= uint(args.Size()) {
				p.parseNumber()
				args.Append(args.Get(int(backref - 1)))
				continue
			}
			// Out of range: the 't' stays consumed and the rest is
			// parsed as a type.
		}

		arg, ok := p.parseMaybeType()
		if !p.statusOK() {
			return nil
		}
		if !ok {
			break
		}
		args.Append(arg)
	}

	if args.Empty() {
		return nil
	}
	return args
}

// parseTemplateBounded parses a template instantiation that must land
// exactly on the caller-supplied boundary.
func (p *Parser) parseTemplateBounded(namespace ast.Node, end int) ast.Node {
	if !p.consume('%') {
		return nil
	}

	templateName, ok := p.cur.CutUntil('$')
	if !ok || templateName == "" {
		p.fail()
		return nil
	}
	nameNode := p.foldName(namespace, p.ctx.NewName(templateName))

	if !p.consume('$') {
		return nil
	}

	args := p.ctx.NewNodeArray()
	for !p.cur.PeekIs('%') {
		if p.cur.Empty() {
			p.fail()
			return nil
		}

		if p.cur.ConsumeFront('t') {
			backref := p.cur.PeekNumber()
			if backref > 0 && backref <= uint(args.Size()) {
				p.parseNumber()
				args.Append(args.Get(int(backref - 1)))
				continue
			}
		}

		arg, ok := p.parseMaybeType()
		if !p.statusOK() {
			return nil
		}
		if !ok {
			break
		}
		args.Append(arg)
	}

	if !p.consume('%') {
		return nil
	}

	if p.cur.Offset() != end {
		p.fail()
		return nil
	}

	return p.ctx.NewTemplate(nameNode, args)
}

// parseQualifiers consumes the optional qualifier letters, at most one
// of each, in the fixed order volatile then const.
func (p *Parser) parseQualifiers() ast.Qualifiers {
	isVolatile := p.cur.ConsumeFront('w')
	isConst := p.cur.ConsumeFront('x')

	return ast.Qualifiers{IsVolatile: isVolatile, IsConst: isConst}
}

// parseCallConv dispatches the calling convention codes. The bare 'q'
// covers conventions the scheme does not uniquely encode.
func (p *Parser) parseCallConv() ast.CallConv {
	switch {
	case p.cur.ConsumeFrontString("qqr"):
		return ast.CallConvFastcall
	case p.cur.ConsumeFrontString("qqs"):
		return ast.CallConvStdcall
	case p.cur.ConsumeFront('q'):
		return ast.CallConvUnknown
	default:
		p.fail()
		return ast.CallConvUnknown
	}
}

// parseFuncType parses a function signature: calling convention,
// parameters, optional '$'-introduced return type.
func (p *Parser) parseFuncType(quals ast.Qualifiers) *ast.FunctionType {
	if !p.enter() {
		return nil
	}
	defer p.leave()

	callConv := p.parseCallConv()
	if !p.statusOK() {
		return nil
	}

	params := p.parseFuncParams()
	if !p.statusOK() {
		return nil
	}

	var retType ast.Node
	if p.cur.ConsumeFront('$') {
		retType = p.parseTypeRequired()
		if !p.checkResult(retType) {
			return nil
		}
	}

	return p.ctx.NewFunctionType(callConv, params, retType, quals)
}

// parseFuncParams collects parameter types until a '$' or the end of
// input. A 't' introduces a positional back-reference into the
// parameters collected so far at this nesting level; the shared node is
// appended, never a copy. An empty list is returned as nil, meaning
// "no parameters".
func (p *Parser) parseFuncParams() *ast.NodeArray {
	params := p.ctx.NewNodeArray()

	for !p.cur.Empty() && p.statusOK() && !p.cur.PeekIs('$') {
		if p.cur.ConsumeFront('t') {
			backref := p.parseNumber()
			if backref == 0 || backref > uint(params.Size()) || !p.statusOK() {
				p.fail()
				return nil
			}
			params.Append(params.Get(int(backref - 1)))
			continue
		}

		param, ok := p.parseMaybeType()
		if !p.statusOK() {
			return nil
		}
		if !ok {
			// Not a type: the parameter list ends here. Whatever byte
			// stopped it is judged by the driver's trailing-input check.
			break
		}
		params.Append(param)
	}

	if params.Empty() {
		return nil
	}
	return params
}

// parseMaybeType parses one type production. The boolean distinguishes
// "no type consumed" (false with the status intact) from a parsed type;
// hard grammar errors fail the status as usual.
func (p *Parser) parseMaybeType() (ast.Node, bool) {
	if !p.enter() {
		return nil, false
	}
	defer p.leave()

	quals := p.parseQualifiers()

	if p.cur.ConsumeFront('p') {
		n := p.parsePointer(quals)
		return n, n != nil
	}

	if p.cur.ConsumeFront('r') {
		// A reference itself is never cv-qualified.
		if !quals.IsEmpty() {
			p.fail()
			return nil, false
		}
		n := p.parseReference()
		return n, n != nil
	}

	if p.cur.ConsumeFront('h') {
		if !quals.IsEmpty() {
			p.fail()
			return nil, false
		}
		n := p.parseRValueReference()
		return n, n != nil
	}

	if p.cur.ConsumeFront('a') {
		n := p.parseArray(quals)
		return n, n != nil
	}

	if p.cur.PeekIs('q') {
		n := p.parseFuncType(quals)
		if n == nil {
			return nil, false
		}
		return n, true
	}

	// A nonzero decimal length introduces a named type over exactly
	// that many bytes.
	length := p.parseNumber()
	if !p.statusOK() {
		return nil, false
	}
	if length > 0 {
		n := p.parseNamedType(length, quals)
		return n, n != nil
	}

	return p.parseBuiltInType(quals)
}

// parseTypeRequired parses a type where "no type" is not acceptable.
func (p *Parser) parseTypeRequired() ast.Node {
	n, ok := p.parseMaybeType()
	if !ok || n == nil {
		p.fail()
		return nil
	}
	return n
}

func (p *Parser) parsePointer(quals ast.Qualifiers) ast.Node {
	pointee := p.parseTypeRequired()
	if !p.checkResult(pointee) {
		return nil
	}

	return p.ctx.NewPointerType(pointee, quals)
}

func (p *Parser) parseReference() ast.Node {
	if p.cur.ConsumeFront('$') {
		// Reference to function type; such a function type cannot
		// itself be qualified.
		funcType := p.parseFuncType(ast.Qualifiers{})
		if funcType == nil || !p.statusOK() {
			p.fail()
			return nil
		}
		return p.ctx.NewReferenceType(funcType)
	}

	referent := p.parseTypeRequired()
	if !p.checkResult(referent) {
		return nil
	}
	if referent.Kind() == ast.KindReferenceType || referent.Kind() == ast.KindRValueReferenceType {
		p.fail()
		return nil
	}

	return p.ctx.NewReferenceType(referent)
}

func (p *Parser) parseRValueReference() ast.Node {
	if p.cur.ConsumeFront('$') {
		funcType := p.parseFuncType(ast.Qualifiers{})
		if funcType == nil || !p.statusOK() {
			p.fail()
			return nil
		}
		return p.ctx.NewRValueReferenceType(funcType)
	}

	referent := p.parseTypeRequired()
	if !p.checkResult(referent) {
		return nil
	}
	// Only a plain-reference referent is rejected here; the grammar's
	// check is one-directional.
	if referent.Kind() == ast.KindReferenceType {
		p.fail()
		return nil
	}

	return p.ctx.NewRValueReferenceType(referent)
}

func (p *Parser) parseArray(quals ast.Qualifiers) ast.Node {
	length := p.parseNumber()
	if length == 0 {
		// Arrays of size zero are not encodable.
		p.fail()
		return nil
	}

	if !p.consume('$') {
		return nil
	}

	element := p.parseTypeRequired()
	if !p.checkResult(element) {
		return nil
	}

	return p.ctx.NewArrayType(element, length, quals)
}

// parseNamedType parses a user type whose qualified name spans exactly
// nameLen bytes.
func (p *Parser) parseNamedType(nameLen uint, quals ast.Qualifiers) ast.Node {
	if uint(p.cur.Len()) < nameLen {
		p.fail()
		return nil
	}
	end := p.cur.Offset() + int(nameLen)

	name := p.parseName(end)
	if name == nil {
		p.fail()
		return nil
	}
	if !p.checkResult(name) {
		return nil
	}

	return p.ctx.NewNamedType(name, quals)
}

// parseBuiltInType dispatches the built-in type codes. Two-character
// codes are tried before their one-character prefixes. A dangling 'u'
// with no integral code is a hard error; otherwise "no match" is the
// explicit not-a-type outcome, which parameter lists treat as their
// terminator.
func (p *Parser) parseBuiltInType(quals ast.Qualifiers) (ast.Node, bool) {
	switch {
	case p.cur.ConsumeFront('o'):
		return p.ctx.NewBuiltInType("bool", quals), true
	case p.cur.ConsumeFront('b'):
		return p.ctx.NewBuiltInType("wchar_t", quals), true
	case p.cur.ConsumeFront('v'):
		return p.ctx.NewBuiltInType("void", quals), true
	}

	switch {
	case p.cur.ConsumeFrontString("zc"):
		return p.ctx.NewCharType(ast.SignednessSigned, quals), true
	case p.cur.ConsumeFrontString("uc"):
		return p.ctx.NewCharType(ast.SignednessUnsigned, quals), true
	case p.cur.ConsumeFront('c'):
		return p.ctx.NewCharType(ast.SignednessNoPrefix, quals), true
	}

	isUnsigned := p.cur.ConsumeFront('u')
	switch {
	case p.cur.ConsumeFront('s'):
		return p.ctx.NewIntegralType("short", isUnsigned, quals), true
	case p.cur.ConsumeFront('i'):
		return p.ctx.NewIntegralType("int", isUnsigned, quals), true
	case p.cur.ConsumeFront('l'):
		return p.ctx.NewIntegralType("long", isUnsigned, quals), true
	case p.cur.ConsumeFront('j'):
		return p.ctx.NewIntegralType("long long", isUnsigned, quals), true
	}
	if isUnsigned {
		p.fail()
		return nil, false
	}

	switch {
	case p.cur.ConsumeFront('f'):
		return p.ctx.NewFloatType("float", quals), true
	case p.cur.ConsumeFront('d'):
		return p.ctx.NewFloatType("double", quals), true
	case p.cur.ConsumeFront('g'):
		return p.ctx.NewFloatType("long double", quals), true
	}

	return nil, false
}

// parseNumber consumes a decimal number. A number may not start with
// '0'; absent digits yield 0 without failing, which type dispatch uses
// to tell named types from built-ins.
func (p *Parser) parseNumber() uint {
	if p.cur.Empty() {
		return 0
	}

	if p.cur.PeekIs('0') {
		p.fail()
		return 0
	}

	var acc uint
	for !p.cur.Empty() {
		b := p.cur.Peek()
		if b < '0' || b > '9' {
			break
		}
		p.cur.PopFront()
		acc = 10*acc + uint(b-'0')
	}
	return acc
}
