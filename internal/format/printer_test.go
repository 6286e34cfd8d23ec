package format

import (
	"testing"

	"github.com/aeon-lang/aeon/internal/parser"
)

func TestPrintModule(t *testing.T) {
	ast, err := parser.ParseSource("module m { x := 42 }")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	expected := "module m {\n  x := 42\n}\n"
	if got := Print(ast); got != expected {
		t.Errorf("output wrong.\nexpected=%q\ngot=%q", expected, got)
	}
}

func TestPrintFunction(t *testing.T) {
	ast, err := parser.ParseSource(`fn add(a: Int, b: Int) Int { return a + b }`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	expected := "fn add(a: Int, b: Int) Int {\n  return a + b\n}\n"
	if got := Print(ast); got != expected {
		t.Errorf("output wrong.\nexpected=%q\ngot=%q", expected, got)
	}
}

func TestPrintStruct(t *testing.T) {
	ast, err := parser.ParseSource(`module Node {
  struct {
    value: Int,
    next: ?*Self,
  }
}`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	expected := "module Node {\n  struct {\n    value: Int,\n    next: ?*Self,\n  }\n}\n"
	if got := Print(ast); got != expected {
		t.Errorf("output wrong.\nexpected=%q\ngot=%q", expected, got)
	}
}

func TestPrintBlankLineBetweenKinds(t *testing.T) {
	ast, err := parser.ParseSource(`module m {
  import "std/io"
  x := 1
  fn f() {
  }
}`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	expected := "module m {\n  import \"std/io\"\n\n  x := 1\n\n  fn f() {\n  }\n}\n"
	if got := Print(ast); got != expected {
		t.Errorf("output wrong.\nexpected=%q\ngot=%q", expected, got)
	}
}

func TestPrintStringEscapes(t *testing.T) {
	ast, err := parser.ParseSource(`s := "line\nquote\"tab\tback\\"`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	expected := "s := \"line\\nquote\\\"tab\\tback\\\\\"\n"
	if got := Print(ast); got != expected {
		t.Errorf("output wrong.\nexpected=%q\ngot=%q", expected, got)
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []string{
		"x := 42",
		"x :mut = 0",
		"x := 1 + 2 * 3",
		"x := (1 + 2) * 3",
		"x := -a.len()",
		"x := 0xFF + 0b1010 + 0o17",
		`s := "hello\nworld"`,
		"n := Node { value: 1, next: null }",
		"e := Empty {}",
		"q := List::Node { value: 1 }",
		`module m { x := 42 }`,
		`module main

fn main() {
  x := 1
}`,
		`module LinkedList {
  module Node {
    struct {
      value: Int,
      next: ?*Self,
    }
  }

  fn push_mut(value: Int) {
    node := Node { value: value, next: head }
    head = &node
  }

  fn len() Int {
    count :mut = 0
    return count
  }
}`,
		`fn classify(n: Int) Int {
  if n < 0 {
    return -1
  } else if n == 0 {
    return 0
  } else {
    return 1
  }
}`,
		`fn f() {
  a = b = c
  list.items[0] = ?maybe
  if (Point { x: 0 }).valid && !done {
    go()
  }
}`,
		`module app {
  import "std/io"

  struct Config {
    name: String,
    verbose: Bool,
  }

  fn load(path: String) ?*Config {
    return null
  }
}`,
	}

	for i, src := range tests {
		first, err := parser.ParseSource(src)
		if err != nil {
			t.Fatalf("tests[%d] - parse failed: %v", i, err)
		}

		printed := Print(first)
		second, err := parser.ParseSource(printed)
		if err != nil {
			t.Fatalf("tests[%d] - reparse failed: %v\nprinted:\n%s", i, err, printed)
		}
		if !parser.Equal(first, second) {
			t.Fatalf("tests[%d] - round trip not structural identity.\nprinted:\n%s", i, printed)
		}
	}
}

func TestPrintIsIdempotent(t *testing.T) {
	src := `module m {
  fn f(x: ?Int) {
    if x != null {
      y := x + 1
    }
  }
}`

	ast, err := parser.ParseSource(src)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	once := Print(ast)
	reparsed, err := parser.ParseSource(once)
	if err != nil {
		t.Fatalf("reparse failed: %v", err)
	}
	twice := Print(reparsed)

	if once != twice {
		t.Errorf("printing not idempotent.\nfirst=%q\nsecond=%q", once, twice)
	}
}
