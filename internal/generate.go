package internal

//go:generate sh -c "go run ../cmd/astgen Expr > expr.go"
//go:generate sh -c "go run ../cmd/astgen Stmt > stmt.go"
