package parser

// Equal reports whether two parsed files are structurally identical,
// ignoring spans. It is the comparison used to verify that printing a file
// and reparsing the output yields the same tree.
func Equal(a, b *Ast) bool {
	if a == nil || b == nil {
		return a == b
	}
	if !moduleEqual(a.Root, b.Root) {
		return false
	}
	return bodyEqual(&a.Decls, &b.Decls)
}

func bodyEqual(a, b *Body) bool {
	if len(a.Imports) != len(b.Imports) ||
		len(a.Modules) != len(b.Modules) ||
		len(a.Functions) != len(b.Functions) ||
		len(a.Structs) != len(b.Structs) ||
		len(a.Variables) != len(b.Variables) {
		return false
	}
	for i := range a.Imports {
		if a.Imports[i].Path != b.Imports[i].Path {
			return false
		}
	}
	for i := range a.Modules {
		if !moduleEqual(a.Modules[i], b.Modules[i]) {
			return false
		}
	}
	for i := range a.Functions {
		if !functionEqual(a.Functions[i], b.Functions[i]) {
			return false
		}
	}
	for i := range a.Structs {
		if !structEqual(a.Structs[i], b.Structs[i]) {
			return false
		}
	}
	for i := range a.Variables {
		if !varDeclEqual(a.Variables[i], b.Variables[i]) {
			return false
		}
	}
	return true
}

func moduleEqual(a, b *Module) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Name != b.Name || a.QualifiedName != b.QualifiedName {
		return false
	}
	return bodyEqual(&a.Body, &b.Body)
}

func functionEqual(a, b *Function) bool {
	if a.Name != b.Name || a.QualifiedName != b.QualifiedName || a.SelfMut != b.SelfMut {
		return false
	}
	if len(a.Parameters) != len(b.Parameters) {
		return false
	}
	for i := range a.Parameters {
		p, q := a.Parameters[i], b.Parameters[i]
		if p.Name != q.Name || !typeRefEqual(p.Type, q.Type) {
			return false
		}
	}
	if !typeRefEqual(a.ReturnType, b.ReturnType) {
		return false
	}
	return blockEqual(a.Body, b.Body)
}

func structEqual(a, b *StructDecl) bool {
	if a.Name != b.Name || a.QualifiedName != b.QualifiedName || a.IsDefault != b.IsDefault {
		return false
	}
	if len(a.Fields) != len(b.Fields) {
		return false
	}
	for i := range a.Fields {
		if a.Fields[i].Name != b.Fields[i].Name || !typeRefEqual(a.Fields[i].Type, b.Fields[i].Type) {
			return false
		}
	}
	return true
}

func typeRefEqual(a, b *TypeRef) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Name == b.Name && a.Optional == b.Optional &&
		a.Pointer == b.Pointer && a.IsSelf == b.IsSelf
}

func varDeclEqual(a, b *VarDecl) bool {
	return a.Name == b.Name && a.QualifiedName == b.QualifiedName &&
		a.Mutable == b.Mutable && exprEqual(a.Value, b.Value)
}

func blockEqual(a, b *Block) bool {
	if a == nil || b == nil {
		return a == b
	}
	if len(a.Statements) != len(b.Statements) {
		return false
	}
	for i := range a.Statements {
		if !statementEqual(a.Statements[i], b.Statements[i]) {
			return false
		}
	}
	return true
}

func statementEqual(a, b Statement) bool {
	switch sa := a.(type) {
	case *VarDecl:
		sb, ok := b.(*VarDecl)
		return ok && varDeclEqual(sa, sb)
	case *ExprStatement:
		sb, ok := b.(*ExprStatement)
		return ok && exprEqual(sa.Expr, sb.Expr)
	case *Return:
		sb, ok := b.(*Return)
		if !ok {
			return false
		}
		if sa.Value == nil || sb.Value == nil {
			return sa.Value == nil && sb.Value == nil
		}
		return exprEqual(sa.Value, sb.Value)
	case *Block:
		sb, ok := b.(*Block)
		return ok && blockEqual(sa, sb)
	case *If:
		sb, ok := b.(*If)
		if !ok {
			return false
		}
		if !exprEqual(sa.Cond, sb.Cond) || !blockEqual(sa.Then, sb.Then) {
			return false
		}
		if sa.Else == nil || sb.Else == nil {
			return sa.Else == nil && sb.Else == nil
		}
		return statementEqual(sa.Else, sb.Else)
	}
	return false
}

func exprEqual(a, b Expression) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch ea := a.(type) {
	case *Literal:
		eb, ok := b.(*Literal)
		return ok && ea.Kind == eb.Kind && ea.Value == eb.Value
	case *Identifier:
		eb, ok := b.(*Identifier)
		return ok && ea.Name == eb.Name
	case *Binary:
		eb, ok := b.(*Binary)
		return ok && ea.Op == eb.Op && exprEqual(ea.Left, eb.Left) && exprEqual(ea.Right, eb.Right)
	case *Unary:
		eb, ok := b.(*Unary)
		return ok && ea.Op == eb.Op && exprEqual(ea.Operand, eb.Operand)
	case *AddressOf:
		eb, ok := b.(*AddressOf)
		return ok && exprEqual(ea.Operand, eb.Operand)
	case *Grouping:
		eb, ok := b.(*Grouping)
		return ok && exprEqual(ea.Inner, eb.Inner)
	case *FieldAccess:
		eb, ok := b.(*FieldAccess)
		return ok && ea.Field == eb.Field && exprEqual(ea.Receiver, eb.Receiver)
	case *Call:
		eb, ok := b.(*Call)
		if !ok || !exprEqual(ea.Callee, eb.Callee) || len(ea.Args) != len(eb.Args) {
			return false
		}
		for i := range ea.Args {
			if !exprEqual(ea.Args[i], eb.Args[i]) {
				return false
			}
		}
		return true
	case *Index:
		eb, ok := b.(*Index)
		return ok && exprEqual(ea.Receiver, eb.Receiver) && exprEqual(ea.Index, eb.Index)
	case *StructLiteral:
		eb, ok := b.(*StructLiteral)
		if !ok || ea.TypeName != eb.TypeName || len(ea.Fields) != len(eb.Fields) {
			return false
		}
		for i := range ea.Fields {
			if ea.Fields[i].Name != eb.Fields[i].Name || !exprEqual(ea.Fields[i].Value, eb.Fields[i].Value) {
				return false
			}
		}
		return true
	case *Assign:
		eb, ok := b.(*Assign)
		return ok && exprEqual(ea.Target, eb.Target) && exprEqual(ea.Value, eb.Value)
	}
	return false
}
