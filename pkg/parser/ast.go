package parser

// Statement represents a SQL statement. It is implemented by *SelectStmt,
// *InsertStmt and *CreateTableStmt only.
type Statement interface {
	Kind() StmtKind
	stmtNode()
}

// Expr represents an expression in SQL. The only expression today is *Literal.
type Expr interface {
	Kind() ExprKind
	exprNode()
}

// StmtKind tags the statement variants.
type StmtKind int

// Statement kinds.
const (
	SelectKind StmtKind = iota
	InsertKind
	CreateTableKind
)

// String returns the SQL name of the statement kind.
func (k StmtKind) String() string {
	switch k {
	case SelectKind:
		return "select"
	case InsertKind:
		return "insert"
	case CreateTableKind:
		return "create table"
	}
	return "unknown"
}

// ExprKind tags expression variants.
type ExprKind int

// Expression kinds.
const (
	LiteralExpr ExprKind = iota
)

// String returns the name of the expression kind.
func (k ExprKind) String() string {
	if k == LiteralExpr {
		return "literal"
	}
	return "unknown"
}

// Program is the result of a successful parse: statements in source order.
type Program struct {
	Statements []Statement
}

// ---------- Statement Types ----------

// SelectStmt represents SELECT item, ... [FROM table].
type SelectStmt struct {
	Pos   Position // position of the SELECT keyword
	Items []Expr
	From  *Token // nil when there is no FROM clause
}

func (*SelectStmt) stmtNode() {}

// Kind returns SelectKind.
func (*SelectStmt) Kind() StmtKind { return SelectKind }

// InsertStmt represents INSERT INTO table VALUES (expr, ...).
type InsertStmt struct {
	Pos    Position // position of the INSERT keyword
	Table  Token
	Values []Expr
}

func (*InsertStmt) stmtNode() {}

// Kind returns InsertKind.
func (*InsertStmt) Kind() StmtKind { return InsertKind }

// CreateTableStmt represents CREATE TABLE name (column type, ...).
type CreateTableStmt struct {
	Pos     Position // position of the CREATE keyword
	Name    Token
	Columns []*ColumnDef
}

func (*CreateTableStmt) stmtNode() {}

// Kind returns CreateTableKind.
func (*CreateTableStmt) Kind() StmtKind { return CreateTableKind }

// ColumnDef is a column name and its datatype keyword.
type ColumnDef struct {
	Name Token
	Type Token
}

// ---------- Expression Types ----------

// Literal is a single identifier, numeric or string token.
type Literal struct {
	Token Token
}

func (*Literal) exprNode() {}

// Kind returns LiteralExpr.
func (*Literal) Kind() ExprKind { return LiteralExpr }
