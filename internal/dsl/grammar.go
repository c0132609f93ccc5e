// Package dsl wires internal/grammar and internal/lex into a concrete
// instance for the simulation language of spec.md §6: its token set, its
// productions (elided-to-essentials there, expanded here to a full
// precedence tower), and the Constructor that turns a parse into an
// internal/dslast tree.
//
// Grounded on original_source/interpreter/_dsl_gen.py, which builds the
// source language's own grammar the same way (symbol_emit for terminals in
// priority order, algebraic productions with left-recursive list
// accumulation for *List non-terminals). The `my.`/`market.` reserved
// prefixes and their AttrRes productions have no analog there -- that
// file's AttrRes.parent is an arbitrary bound identifier, not a reserved
// prefix -- so those productions are built directly from spec.md §6's
// elided grammar instead.
package dsl

import "github.com/lassiter/cryptolang/internal/grammar"

// Terminal names, in the order Grammar() registers them -- this order is
// also the lexer's rule-priority order (see LexerTable), so keywords and
// multi-character operators are listed ahead of the identifier/single-char
// rules they would otherwise be shadowed by.
const (
	tWS      = "WS"
	tComment = "COMMENT"

	tKwFunc   = "KW_FUNC"
	tKwIf     = "KW_IF"
	tKwElse   = "KW_ELSE"
	tKwWhile  = "KW_WHILE"
	tKwRet    = "KW_RET"
	tKwCoin   = "KW_COIN"
	tKwTrader = "KW_TRADER"

	tMyDot     = "MY_DOT"
	tMarketDot = "MARKET_DOT"

	tNumber = "NUMBER"
	tString = "STRING"
	tIdent  = "IDENT"

	tEqEq     = "EQEQ"
	tNeq      = "NEQ"
	tLe       = "LE"
	tGe       = "GE"
	tFloorDiv = "FLOORDIV"
	tLt       = "LT"
	tGt       = "GT"
	tPlus     = "PLUS"
	tMinus    = "MINUS"
	tStar     = "STAR"
	tSlash    = "SLASH"
	tPercent  = "PERCENT"
	tCaret    = "CARET"
	tAmp      = "AMP"
	tPipe     = "PIPE"
	tBang     = "BANG"
	tAssign   = "ASSIGN"

	tLParen   = "LPAREN"
	tRParen   = "RPAREN"
	tLBracket = "LBRACKET"
	tRBracket = "RBRACKET"
	tLBrace   = "LBRACE"
	tRBrace   = "RBRACE"
	tComma    = "COMMA"
	tColon    = "COLON"
	tSemi     = "SEMI"
)

// Non-terminal names.
const (
	nProgram      = "Program"
	nTopLevelList = "TopLevelList"
	nTopLevelItem = "TopLevelItem"
	nFunDef       = "FunDef"
	nParamListOpt = "ParamListOpt"
	nParamList    = "ParamList"
	nAgentDec     = "AgentDec"
	nOptListOpt   = "OptListOpt"
	nOptList      = "OptList"
	nOpt          = "Opt"
	nBehaviorList = "BehaviorList"
	nBehaviorListOpt = "BehaviorListOpt"
	nBehavior     = "Behavior"
	nStmtList     = "StmtList"
	nStmt         = "Stmt"
	nAssign       = "Assign"
	nIf           = "If"
	nWhile        = "While"
	nExpr         = "Expr"   // logical tier: & |
	nCmpExpr      = "CmpExpr" // == != < <= > >=
	nArithExpr    = "ArithExpr" // + -
	nTerm         = "Term"   // * / // %
	nUnary        = "Unary"  // unary - !
	nPow          = "Pow"    // ^ (right-assoc, tighter than unary)
	nAtom         = "Atom"
	nFunCall      = "FunCall"
	nArgListOpt   = "ArgListOpt"
	nArgList      = "ArgList"
	nAttrRes      = "AttrRes"
)

// Grammar builds the full simulation-language grammar of spec.md §6,
// ready for internal/parse.Generate.
func Grammar() *grammar.Grammar {
	g := grammar.New(nProgram)

	registerTerminals(g)
	registerTopLevel(g)
	registerAgents(g)
	registerStatements(g)
	registerExpressions(g)

	return g
}

func registerTerminals(g *grammar.Grammar) {
	g.AddTerminal(tWS, `[ \t\r\n]+`, true)
	g.AddTerminal(tComment, `#[^\n]*`, true)

	g.AddTerminal(tKwFunc, "func", false)
	g.AddTerminal(tKwIf, "if", false)
	g.AddTerminal(tKwElse, "else", false)
	g.AddTerminal(tKwWhile, "while", false)
	g.AddTerminal(tKwRet, "ret", false)
	g.AddTerminal(tKwCoin, "coin", false)
	g.AddTerminal(tKwTrader, "trader", false)

	g.AddTerminal(tMyDot, `my\.`, false)
	g.AddTerminal(tMarketDot, `market\.`, false)

	g.AddTerminal(tNumber, `[0-9]+(\.[0-9]+)?`, false)
	g.AddTerminal(tString, `'[^']*'`, false)
	g.AddTerminal(tIdent, `[A-Za-z_][A-Za-z0-9_]*`, false)

	g.AddTerminal(tEqEq, `==`, false)
	g.AddTerminal(tNeq, `!=`, false)
	g.AddTerminal(tLe, `<=`, false)
	g.AddTerminal(tGe, `>=`, false)
	g.AddTerminal(tFloorDiv, `//`, false)
	g.AddTerminal(tLt, `<`, false)
	g.AddTerminal(tGt, `>`, false)
	g.AddTerminal(tPlus, `\+`, false)
	g.AddTerminal(tMinus, `-`, false)
	g.AddTerminal(tStar, `\*`, false)
	g.AddTerminal(tSlash, `/`, false)
	g.AddTerminal(tPercent, `%`, false)
	g.AddTerminal(tCaret, `\^`, false)
	g.AddTerminal(tAmp, `&`, false)
	g.AddTerminal(tPipe, `\|`, false)
	g.AddTerminal(tBang, `!`, false)
	g.AddTerminal(tAssign, `=`, false)

	g.AddTerminal(tLParen, `\(`, false)
	g.AddTerminal(tRParen, `\)`, false)
	g.AddTerminal(tLBracket, `\[`, false)
	g.AddTerminal(tRBracket, `\]`, false)
	g.AddTerminal(tLBrace, `\{`, false)
	g.AddTerminal(tRBrace, `\}`, false)
	g.AddTerminal(tComma, `,`, false)
	g.AddTerminal(tColon, `:`, false)
	g.AddTerminal(tSemi, `;`, false)
}

func registerTopLevel(g *grammar.Grammar) {
	g.AddProduction(nProgram, []string{nTopLevelList}, grammar.Construct(ctorSimulation, 0))

	g.AddProduction(nTopLevelList, []string{nTopLevelList, nTopLevelItem}, grammar.Construct(ctorListAppend, 0, 1))
	g.AddProduction(nTopLevelList, []string{nTopLevelItem}, grammar.Construct(ctorListStart, 0))

	g.AddProduction(nTopLevelItem, []string{nFunDef}, grammar.Project(0))
	g.AddProduction(nTopLevelItem, []string{nAgentDec}, grammar.Project(0))

	g.AddProduction(nFunDef, []string{tKwFunc, tIdent, tLParen, nParamListOpt, tRParen, tLBrace, nStmtList, tRBrace},
		grammar.Construct(ctorFunDef, 1, 3, 6))

	g.AddProduction(nParamListOpt, []string{nParamList}, grammar.Project(0))
	g.AddProduction(nParamListOpt, []string{}, grammar.Construct(ctorEmptyList))
	g.AddProduction(nParamList, []string{nParamList, tComma, tIdent}, grammar.Construct(ctorListAppend, 0, 2))
	g.AddProduction(nParamList, []string{tIdent}, grammar.Construct(ctorListStart, 0))
}

func registerAgents(g *grammar.Grammar) {
	g.AddProduction(nAgentDec, []string{tKwCoin, tIdent, tColon, tIdent, tLBracket, nOptListOpt, tRBracket, tLBrace, nBehaviorListOpt, tRBrace},
		grammar.Construct(ctorAgentDecCoin, 1, 3, 5, 8))
	g.AddProduction(nAgentDec, []string{tKwTrader, tIdent, tColon, tIdent, tLBracket, nOptListOpt, tRBracket, tLBrace, nBehaviorListOpt, tRBrace},
		grammar.Construct(ctorAgentDecTrader, 1, 3, 5, 8))

	g.AddProduction(nOptListOpt, []string{nOptList}, grammar.Project(0))
	g.AddProduction(nOptListOpt, []string{}, grammar.Construct(ctorEmptyList))
	g.AddProduction(nOptList, []string{nOptList, tComma, nOpt}, grammar.Construct(ctorListAppend, 0, 2))
	g.AddProduction(nOptList, []string{nOpt}, grammar.Construct(ctorListStart, 0))
	g.AddProduction(nOpt, []string{tIdent, tAssign, nExpr}, grammar.Construct(ctorOpt, 0, 2))

	g.AddProduction(nBehaviorListOpt, []string{nBehaviorList}, grammar.Project(0))
	g.AddProduction(nBehaviorListOpt, []string{}, grammar.Construct(ctorEmptyList))
	g.AddProduction(nBehaviorList, []string{nBehaviorList, nBehavior}, grammar.Construct(ctorListAppend, 0, 1))
	g.AddProduction(nBehaviorList, []string{nBehavior}, grammar.Construct(ctorListStart, 0))
	g.AddProduction(nBehavior, []string{tIdent, tLBrace, nStmtList, tRBrace}, grammar.Construct(ctorBehavior, 0, 2))
}

func registerStatements(g *grammar.Grammar) {
	g.AddProduction(nStmtList, []string{nStmtList, nStmt}, grammar.Construct(ctorListAppend, 0, 1))
	g.AddProduction(nStmtList, []string{nStmt}, grammar.Construct(ctorListStart, 0))

	g.AddProduction(nStmt, []string{nExpr, tSemi}, grammar.Project(0))
	g.AddProduction(nStmt, []string{nAssign, tSemi}, grammar.Project(0))
	g.AddProduction(nStmt, []string{tKwRet, nExpr, tSemi}, grammar.Construct(ctorRet, 1))
	g.AddProduction(nStmt, []string{tKwRet, tSemi}, grammar.Construct(ctorRetBare))
	g.AddProduction(nStmt, []string{nIf}, grammar.Project(0))
	g.AddProduction(nStmt, []string{nWhile}, grammar.Project(0))

	g.AddProduction(nAssign, []string{tIdent, tAssign, nExpr}, grammar.Construct(ctorAssignIdent, 0, 2))
	g.AddProduction(nAssign, []string{nAttrRes, tAssign, nExpr}, grammar.Construct(ctorAssignAttr, 0, 2))

	g.AddProduction(nIf, []string{tKwIf, nExpr, tLBrace, nStmtList, tRBrace}, grammar.Construct(ctorIfNoElse, 1, 3))
	g.AddProduction(nIf, []string{tKwIf, nExpr, tLBrace, nStmtList, tRBrace, tKwElse, tLBrace, nStmtList, tRBrace}, grammar.Construct(ctorIfElse, 1, 3, 7))

	g.AddProduction(nWhile, []string{tKwWhile, nExpr, tLBrace, nStmtList, tRBrace}, grammar.Construct(ctorWhile, 1, 3))
}

func registerExpressions(g *grammar.Grammar) {
	g.AddProduction(nExpr, []string{nExpr, tAmp, nCmpExpr}, grammar.Construct(ctorBinOp, 0, 1, 2))
	g.AddProduction(nExpr, []string{nExpr, tPipe, nCmpExpr}, grammar.Construct(ctorBinOp, 0, 1, 2))
	g.AddProduction(nExpr, []string{nCmpExpr}, grammar.Project(0))

	g.AddProduction(nCmpExpr, []string{nCmpExpr, tEqEq, nArithExpr}, grammar.Construct(ctorBinOp, 0, 1, 2))
	g.AddProduction(nCmpExpr, []string{nCmpExpr, tNeq, nArithExpr}, grammar.Construct(ctorBinOp, 0, 1, 2))
	g.AddProduction(nCmpExpr, []string{nCmpExpr, tLt, nArithExpr}, grammar.Construct(ctorBinOp, 0, 1, 2))
	g.AddProduction(nCmpExpr, []string{nCmpExpr, tLe, nArithExpr}, grammar.Construct(ctorBinOp, 0, 1, 2))
	g.AddProduction(nCmpExpr, []string{nCmpExpr, tGt, nArithExpr}, grammar.Construct(ctorBinOp, 0, 1, 2))
	g.AddProduction(nCmpExpr, []string{nCmpExpr, tGe, nArithExpr}, grammar.Construct(ctorBinOp, 0, 1, 2))
	g.AddProduction(nCmpExpr, []string{nArithExpr}, grammar.Project(0))

	g.AddProduction(nArithExpr, []string{nArithExpr, tPlus, nTerm}, grammar.Construct(ctorBinOp, 0, 1, 2))
	g.AddProduction(nArithExpr, []string{nArithExpr, tMinus, nTerm}, grammar.Construct(ctorBinOp, 0, 1, 2))
	g.AddProduction(nArithExpr, []string{nTerm}, grammar.Project(0))

	g.AddProduction(nTerm, []string{nTerm, tStar, nUnary}, grammar.Construct(ctorBinOp, 0, 1, 2))
	g.AddProduction(nTerm, []string{nTerm, tSlash, nUnary}, grammar.Construct(ctorBinOp, 0, 1, 2))
	g.AddProduction(nTerm, []string{nTerm, tFloorDiv, nUnary}, grammar.Construct(ctorBinOp, 0, 1, 2))
	g.AddProduction(nTerm, []string{nTerm, tPercent, nUnary}, grammar.Construct(ctorBinOp, 0, 1, 2))
	g.AddProduction(nTerm, []string{nUnary}, grammar.Project(0))

	// Unary sits above Pow so that `-2^2` parses as `-(2^2)` (^ binds
	// tighter than unary minus), while Pow's right operand is itself a
	// Unary so that `2^-2` still parses (^ is right-associative and
	// accepts a unary expression on its right).
	g.AddProduction(nUnary, []string{tMinus, nUnary}, grammar.Construct(ctorUnaryOp, 0, 1))
	g.AddProduction(nUnary, []string{tBang, nUnary}, grammar.Construct(ctorUnaryOp, 0, 1))
	g.AddProduction(nUnary, []string{nPow}, grammar.Project(0))

	g.AddProduction(nPow, []string{nAtom, tCaret, nUnary}, grammar.Construct(ctorBinOp, 0, 1, 2))
	g.AddProduction(nPow, []string{nAtom}, grammar.Project(0))

	g.AddProduction(nAtom, []string{tLParen, nExpr, tRParen}, grammar.Project(1))
	g.AddProduction(nAtom, []string{tNumber}, grammar.Construct(ctorNumber, 0))
	g.AddProduction(nAtom, []string{tString}, grammar.Construct(ctorString, 0))
	g.AddProduction(nAtom, []string{tIdent}, grammar.Construct(ctorIdentifier, 0))
	g.AddProduction(nAtom, []string{nFunCall}, grammar.Project(0))
	g.AddProduction(nAtom, []string{nAttrRes}, grammar.Project(0))

	g.AddProduction(nFunCall, []string{tIdent, tLParen, nArgListOpt, tRParen}, grammar.Construct(ctorFunCall, 0, 2))

	g.AddProduction(nArgListOpt, []string{nArgList}, grammar.Project(0))
	g.AddProduction(nArgListOpt, []string{}, grammar.Construct(ctorEmptyList))
	g.AddProduction(nArgList, []string{nArgList, tComma, nExpr}, grammar.Construct(ctorListAppend, 0, 2))
	g.AddProduction(nArgList, []string{nExpr}, grammar.Construct(ctorListStart, 0))

	g.AddProduction(nAttrRes, []string{tMyDot, tIdent}, grammar.Construct(ctorAttrMy, 1))
	g.AddProduction(nAttrRes, []string{tMyDot, tIdent, tLParen, nArgListOpt, tRParen}, grammar.Construct(ctorAttrMyCall, 1, 3))
	g.AddProduction(nAttrRes, []string{tMarketDot, tIdent}, grammar.Construct(ctorAttrMarket, 1))
	g.AddProduction(nAttrRes, []string{tMarketDot, tIdent, tLParen, nArgListOpt, tRParen}, grammar.Construct(ctorAttrMarketCall, 1, 3))
}
