package parser

import "testing"

func TestContextQualifiedName(t *testing.T) {
	ctx := NewContext()

	if got := ctx.QualifiedName("main"); got != "main" {
		t.Errorf("empty context name wrong. expected=%q, got=%q", "main", got)
	}

	ctx.Enter(FrameModule, "LinkedList")
	if got := ctx.QualifiedName("push"); got != "LinkedList.push" {
		t.Errorf("module-scoped name wrong. expected=%q, got=%q", "LinkedList.push", got)
	}

	ctx.Enter(FrameModule, "Node")
	if got := ctx.QualifiedName("next"); got != "LinkedList.Node.next" {
		t.Errorf("nested name wrong. expected=%q, got=%q", "LinkedList.Node.next", got)
	}

	ctx.Leave()
	ctx.Enter(FrameFunction, "push")
	if got := ctx.QualifiedName("node"); got != "LinkedList.push.node" {
		t.Errorf("function-scoped name wrong. expected=%q, got=%q", "LinkedList.push.node", got)
	}
}

func TestContextEnterLeaveBalance(t *testing.T) {
	ctx := NewContext()
	ctx.Enter(FrameModule, "a")
	ctx.Enter(FrameFunction, "b")

	if ctx.Depth() != 2 {
		t.Fatalf("depth wrong. expected=2, got=%d", ctx.Depth())
	}

	ctx.Leave()
	ctx.Leave()
	if ctx.Depth() != 0 {
		t.Fatalf("depth wrong after leaving. expected=0, got=%d", ctx.Depth())
	}
}

func TestContextLeaveEmptyPanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("leave on empty stack did not panic")
		}
		perr, ok := r.(*ParseError)
		if !ok {
			t.Fatalf("panic value wrong type: %T", r)
		}
		if perr.Kind != KindUnbalancedScope {
			t.Errorf("panic kind wrong. expected=%q, got=%q", KindUnbalancedScope, perr.Kind)
		}
	}()

	NewContext().Leave()
}

func TestContextEnclosingModule(t *testing.T) {
	ctx := NewContext()

	if _, ok := ctx.EnclosingModule(); ok {
		t.Errorf("empty context reported an enclosing module")
	}

	ctx.Enter(FrameModule, "List")
	ctx.Enter(FrameFunction, "push")

	// Self inside a method still resolves to the module
	name, ok := ctx.EnclosingModule()
	if !ok || name != "List" {
		t.Errorf("enclosing module wrong. expected=%q, got=%q (ok=%v)", "List", name, ok)
	}

	ctx.Leave()
	ctx.Enter(FrameModule, "Node")
	name, _ = ctx.EnclosingModule()
	if name != "Node" {
		t.Errorf("nearest module wrong. expected=%q, got=%q", "Node", name)
	}
}

func TestContextNamesNotCached(t *testing.T) {
	ctx := NewContext()
	ctx.Enter(FrameModule, "A")
	first := ctx.QualifiedName("x")
	ctx.Leave()
	ctx.Enter(FrameModule, "B")
	second := ctx.QualifiedName("x")

	if first != "A.x" || second != "B.x" {
		t.Errorf("qualified names stale. got %q then %q", first, second)
	}
}
