package cursor

import "testing"

func TestPeekAndPop(t *testing.T) {
	c := New("abc")

	if c.Peek() != 'a' {
		t.Fatalf("Peek() = %q, want 'a'", c.Peek())
	}
	if c.Offset() != 0 {
		t.Fatalf("Peek consumed input: offset %d", c.Offset())
	}
	if !c.PeekIs('a') || c.PeekIs('b') {
		t.Fatal("PeekIs mismatch")
	}

	if b := c.PopFront(); b != 'a' {
		t.Fatalf("PopFront() = %q, want 'a'", b)
	}
	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
}

func TestEmptyIsNotAFault(t *testing.T) {
	c := New("")

	if !c.Empty() {
		t.Fatal("empty cursor not Empty")
	}
	if c.Peek() != 0 {
		t.Fatalf("Peek() on empty = %q, want 0", c.Peek())
	}
	if c.PopFront() != 0 {
		t.Fatal("PopFront() on empty should return 0")
	}
	if c.ConsumeFront('x') {
		t.Fatal("ConsumeFront on empty should fail")
	}
	if c.Remaining() != "" {
		t.Fatalf("Remaining() = %q, want empty", c.Remaining())
	}
}

func TestConsumeFront(t *testing.T) {
	c := New("qqri")

	if c.ConsumeFront('x') {
		t.Fatal("ConsumeFront('x') should not match")
	}
	if c.Offset() != 0 {
		t.Fatal("failed ConsumeFront consumed input")
	}
	if !c.ConsumeFrontString("qqr") {
		t.Fatal("ConsumeFrontString(\"qqr\") should match")
	}
	if c.ConsumeFrontString("int") {
		t.Fatal("ConsumeFrontString(\"int\") should not match")
	}
	if !c.ConsumeFront('i') || !c.Empty() {
		t.Fatal("cursor should be empty after consuming all input")
	}
}

func TestAdvance(t *testing.T) {
	c := New("hello")

	s, ok := c.Advance(3)
	if !ok || s != "hel" {
		t.Fatalf("Advance(3) = %q, %v", s, ok)
	}

	if _, ok := c.Advance(5); ok {
		t.Fatal("Advance past end should fail")
	}
	if c.Offset() != 3 {
		t.Fatal("failed Advance moved the cursor")
	}
}

func TestCutUntil(t *testing.T) {
	c := New("vec$i%")

	s, ok := c.CutUntil('$')
	if !ok || s != "vec" {
		t.Fatalf("CutUntil('$') = %q, %v", s, ok)
	}
	if !c.PeekIs('$') {
		t.Fatal("cursor should rest on the delimiter")
	}

	if _, ok := c.CutUntil('?'); ok {
		t.Fatal("CutUntil with absent delimiter should fail")
	}
	if c.Remaining() != "$i%" {
		t.Fatalf("failed CutUntil consumed input: %q", c.Remaining())
	}
}

func TestCutUntilAny(t *testing.T) {
	c := New("foo@bar$q")

	s, ok := c.CutUntilAny("$%@")
	if !ok || s != "foo" {
		t.Fatalf("CutUntilAny = %q, %v", s, ok)
	}
	if !c.ConsumeFront('@') {
		t.Fatal("cursor should rest on '@'")
	}

	s, ok = c.CutUntilAny("$%@")
	if !ok || s != "bar" {
		t.Fatalf("CutUntilAny = %q, %v", s, ok)
	}

	c2 := New("nodelim")
	if _, ok := c2.CutUntilAny("$%@"); ok {
		t.Fatal("CutUntilAny with no delimiter should fail")
	}
}

func TestPeekNumber(t *testing.T) {
	cases := []struct {
		in   string
		want uint
	}{
		{"123abc", 123},
		{"7", 7},
		{"0abc", 0},
		{"abc", 0},
		{"", 0},
	}

	for _, tc := range cases {
		c := New(tc.in)
		if got := c.PeekNumber(); got != tc.want {
			t.Errorf("PeekNumber(%q) = %d, want %d", tc.in, got, tc.want)
		}
		if c.Offset() != 0 {
			t.Errorf("PeekNumber(%q) consumed input", tc.in)
		}
	}
}
