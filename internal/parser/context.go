package parser

import "strings"

// FrameKind identifies what kind of scope a context frame represents
type FrameKind int

const (
	FrameModule FrameKind = iota
	FrameFunction
)

// String returns a string representation of the frame kind
func (k FrameKind) String() string {
	if k == FrameFunction {
		return "function"
	}
	return "module"
}

// Frame is one entry in the scope stack
type Frame struct {
	Kind FrameKind
	Name string
}

// Context tracks the stack of enclosing scopes (modules and functions) while
// parsing. Frames are pushed on entering a body and popped on leaving it;
// the stack is strictly nested.
type Context struct {
	frames []Frame
}

// NewContext creates an empty parsing context
func NewContext() *Context {
	return &Context{}
}

// Enter pushes a scope frame
func (c *Context) Enter(kind FrameKind, name string) {
	c.frames = append(c.frames, Frame{Kind: kind, Name: name})
}

// Leave pops the innermost scope frame. Leaving with an empty stack is a
// programming-logic fault in the parser itself, never a user-facing error,
// so it panics rather than returning.
func (c *Context) Leave() {
	if len(c.frames) == 0 {
		panic(&ParseError{Kind: KindUnbalancedScope})
	}
	c.frames = c.frames[:len(c.frames)-1]
}

// Depth returns the number of open frames
func (c *Context) Depth() int {
	return len(c.frames)
}

// QualifiedName joins the names of the open frames and the given local name
// with dots. Computed on demand; never cached.
func (c *Context) QualifiedName(local string) string {
	if len(c.frames) == 0 {
		return local
	}
	parts := make([]string, 0, len(c.frames)+1)
	for _, f := range c.frames {
		parts = append(parts, f.Name)
	}
	parts = append(parts, local)
	return strings.Join(parts, ".")
}

// Path returns the dot-joined names of the open frames. It is the
// qualified identity of the innermost scope itself, used by the anonymous
// default struct which takes its enclosing module's name.
func (c *Context) Path() string {
	parts := make([]string, 0, len(c.frames))
	for _, f := range c.frames {
		parts = append(parts, f.Name)
	}
	return strings.Join(parts, ".")
}

// EnclosingModule returns the local name of the nearest enclosing module
// frame, which is what the contextual type name Self denotes.
func (c *Context) EnclosingModule() (string, bool) {
	for i := len(c.frames) - 1; i >= 0; i-- {
		if c.frames[i].Kind == FrameModule {
			return c.frames[i].Name, true
		}
	}
	return "", false
}
