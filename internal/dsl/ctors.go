package dsl

// Constructor names used in grammar.Construct calls. Kept as named
// constants (rather than inline string literals scattered across
// grammar.go and constructor.go) so a typo shows up as an unresolved
// identifier at compile time instead of a silent mismatch at parse time.
const (
	// Generic list accumulation, reused by every left-recursive *List
	// non-terminal (statements, params, options, behaviors, args,
	// top-level items): ctorListStart wraps a single element, ctorListAppend
	// appends to an existing list, ctorEmptyList produces an empty one for
	// the epsilon alternative of a *ListOpt non-terminal.
	ctorListStart  = "ListStart"
	ctorListAppend = "ListAppend"
	ctorEmptyList  = "EmptyList"

	ctorSimulation = "Simulation"
	ctorFunDef     = "FunDef"

	ctorAgentDecCoin   = "AgentDecCoin"
	ctorAgentDecTrader = "AgentDecTrader"
	ctorOpt            = "Opt"
	ctorBehavior        = "Behavior"

	ctorRet     = "Ret"
	ctorRetBare = "RetBare"

	ctorAssignIdent = "AssignIdent"
	ctorAssignAttr  = "AssignAttr"

	ctorIfNoElse = "IfNoElse"
	ctorIfElse   = "IfElse"
	ctorWhile    = "While"

	// ctorBinOp is shared by every binary-operator production (&, |, ==,
	// !=, <, <=, >, >=, +, -, *, /, //, %, ^): its children are always
	// (left, operator-token, right), and BinaryOp.Op is set from the
	// token's rule name, so one constructor suffices for all of them.
	ctorBinOp   = "BinOp"
	ctorUnaryOp = "UnaryOp"

	ctorNumber     = "Number"
	ctorString     = "String"
	ctorIdentifier = "Identifier"

	ctorFunCall = "FunCall"

	ctorAttrMy         = "AttrMy"
	ctorAttrMyCall     = "AttrMyCall"
	ctorAttrMarket     = "AttrMarket"
	ctorAttrMarketCall = "AttrMarketCall"
)
