package ast

// Kind tags every node with the grammar production it came from. Several
// node types carry more than one kind, e.g. a VarDecl is Var, Let or Const.
type Kind int

// Node kinds.
const (
	KindInvalid Kind = iota

	// statements
	KindScript
	KindBlock
	KindIf
	KindFor
	KindForIn
	KindWhile
	KindDoWhile
	KindSwitch
	KindCase
	KindDefault
	KindTry
	KindCatch
	KindThrow
	KindBreak
	KindContinue
	KindReturn
	KindWith
	KindLabel
	KindVar
	KindLet
	KindConst
	KindDeclarator
	KindLetBlock
	KindSemicolon
	KindDebugger

	// functions
	KindFunction

	// expressions
	KindYield
	KindComma
	KindAssign
	KindHook
	KindBinary
	KindUnary
	KindUpdate
	KindCall
	KindNew
	KindNewWithArgs
	KindDot
	KindSuperDot
	KindIndex
	KindSuperIndex
	KindExtend
	KindProto
	KindArrayInit
	KindObjectInit
	KindPropertyInit
	KindGetter
	KindSetter
	KindMethodInit
	KindArrayComp
	KindGenerator
	KindCompTail
	KindList
	KindIdentifier
	KindNumber
	KindString
	KindRegExp
	KindNull
	KindTrue
	KindFalse
	KindThis
	KindSuper
)

var kindNames = [...]string{
	KindInvalid:      "INVALID",
	KindScript:       "SCRIPT",
	KindBlock:        "BLOCK",
	KindIf:           "IF",
	KindFor:          "FOR",
	KindForIn:        "FOR_IN",
	KindWhile:        "WHILE",
	KindDoWhile:      "DO",
	KindSwitch:       "SWITCH",
	KindCase:         "CASE",
	KindDefault:      "DEFAULT",
	KindTry:          "TRY",
	KindCatch:        "CATCH",
	KindThrow:        "THROW",
	KindBreak:        "BREAK",
	KindContinue:     "CONTINUE",
	KindReturn:       "RETURN",
	KindWith:         "WITH",
	KindLabel:        "LABEL",
	KindVar:          "VAR",
	KindLet:          "LET",
	KindConst:        "CONST",
	KindDeclarator:   "DECLARATOR",
	KindLetBlock:     "LET_BLOCK",
	KindSemicolon:    "SEMICOLON",
	KindDebugger:     "DEBUGGER",
	KindFunction:     "FUNCTION",
	KindYield:        "YIELD",
	KindComma:        "COMMA",
	KindAssign:       "ASSIGN",
	KindHook:         "HOOK",
	KindBinary:       "BINARY",
	KindUnary:        "UNARY",
	KindUpdate:       "UPDATE",
	KindCall:         "CALL",
	KindNew:          "NEW",
	KindNewWithArgs:  "NEW_WITH_ARGS",
	KindDot:          "DOT",
	KindSuperDot:     "SUPER_DOT",
	KindIndex:        "INDEX",
	KindSuperIndex:   "SUPER_INDEX",
	KindExtend:       "EXTEND",
	KindProto:        "PROTO",
	KindArrayInit:    "ARRAY_INIT",
	KindObjectInit:   "OBJECT_INIT",
	KindPropertyInit: "PROPERTY_INIT",
	KindGetter:       "GETTER",
	KindSetter:       "SETTER",
	KindMethodInit:   "METHOD_INIT",
	KindArrayComp:    "ARRAY_COMP",
	KindGenerator:    "GENERATOR",
	KindCompTail:     "COMP_TAIL",
	KindList:         "LIST",
	KindIdentifier:   "IDENTIFIER",
	KindNumber:       "NUMBER",
	KindString:       "STRING",
	KindRegExp:       "REGEXP",
	KindNull:         "NULL",
	KindTrue:         "TRUE",
	KindFalse:        "FALSE",
	KindThis:         "THIS",
	KindSuper:        "SUPER",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "INVALID"
}

// IsLoop reports whether break and continue may target a statement of this kind.
func (k Kind) IsLoop() bool {
	switch k {
	case KindFor, KindForIn, KindWhile, KindDoWhile:
		return true
	}
	return false
}
