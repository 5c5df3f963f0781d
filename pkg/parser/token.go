package parser

import "github.com/leapstack-labs/minisql/pkg/token"

// Token is an alias for token.Token.
type Token = token.Token

// Position is an alias for token.Position.
type Position = token.Position

// Tokens the parser compares against. Comparison is by value and kind.
var (
	selectTok    = token.KeywordToken(token.Select)
	fromTok      = token.KeywordToken(token.From)
	insertTok    = token.KeywordToken(token.Insert)
	intoTok      = token.KeywordToken(token.Into)
	valuesTok    = token.KeywordToken(token.Values)
	createTok    = token.KeywordToken(token.Create)
	tableTok     = token.KeywordToken(token.Table)
	semicolonTok = token.SymbolToken(token.Semicolon)
	commaTok     = token.SymbolToken(token.Comma)
	lparenTok    = token.SymbolToken(token.LParen)
	rparenTok    = token.SymbolToken(token.RParen)
)
