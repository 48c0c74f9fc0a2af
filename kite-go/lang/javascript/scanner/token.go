package scanner

import "strconv"

// Token is the set of lexical tokens of the language.
type Token int

// The list of tokens.
const (
	// Special tokens
	Illegal Token = iota
	EOF
	// Newline is never scanned; the tokenizer reports it from PeekOnSameLine
	// when a line terminator separates the current token from the next one.
	Newline

	literalBegin
	Identifier
	Number
	String
	RegExp
	literalEnd

	operatorBegin
	Semicolon    // ;
	Comma        // ,
	Assign       // = and every compound assignment, see Word.AssignOp
	Hook         // ?
	Colon        // :
	Or           // ||
	And          // &&
	BitOr        // |
	BitXor       // ^
	BitAnd       // &
	Eq           // ==
	Ne           // !=
	StrictEq     // ===
	StrictNe     // !==
	Lt           // <
	Le           // <=
	Ge           // >=
	Gt           // >
	Lsh          // <<
	Rsh          // >>
	Ursh         // >>>
	Plus         // +
	Minus        // -
	Mul          // *
	Div          // /
	Mod          // %
	Not          // !
	BitNot       // ~
	Increment    // ++
	Decrement    // --
	Dot          // .
	LeftBracket  // [
	RightBracket // ]
	LeftCurly    // {
	RightCurly   // }
	LeftParen    // (
	RightParen   // )
	Proto        // <|
	operatorEnd

	keywordBegin
	Break
	Case
	Catch
	Const
	Continue
	Debugger
	Default
	Delete
	Do
	Else
	False
	Finally
	For
	Function
	If
	In
	Instanceof
	Let
	New
	Null
	Return
	Super
	Switch
	This
	Throw
	True
	Try
	Typeof
	Var
	Void
	While
	With
	Yield
	keywordEnd
)

var tokens = [...]string{
	Illegal: "ILLEGAL",
	EOF:     "END",
	Newline: "NEWLINE",

	Identifier: "IDENTIFIER",
	Number:     "NUMBER",
	String:     "STRING",
	RegExp:     "REGEXP",

	Semicolon:    ";",
	Comma:        ",",
	Assign:       "=",
	Hook:         "?",
	Colon:        ":",
	Or:           "||",
	And:          "&&",
	BitOr:        "|",
	BitXor:       "^",
	BitAnd:       "&",
	Eq:           "==",
	Ne:           "!=",
	StrictEq:     "===",
	StrictNe:     "!==",
	Lt:           "<",
	Le:           "<=",
	Ge:           ">=",
	Gt:           ">",
	Lsh:          "<<",
	Rsh:          ">>",
	Ursh:         ">>>",
	Plus:         "+",
	Minus:        "-",
	Mul:          "*",
	Div:          "/",
	Mod:          "%",
	Not:          "!",
	BitNot:       "~",
	Increment:    "++",
	Decrement:    "--",
	Dot:          ".",
	LeftBracket:  "[",
	RightBracket: "]",
	LeftCurly:    "{",
	RightCurly:   "}",
	LeftParen:    "(",
	RightParen:   ")",
	Proto:        "<|",

	Break:      "break",
	Case:       "case",
	Catch:      "catch",
	Const:      "const",
	Continue:   "continue",
	Debugger:   "debugger",
	Default:    "default",
	Delete:     "delete",
	Do:         "do",
	Else:       "else",
	False:      "false",
	Finally:    "finally",
	For:        "for",
	Function:   "function",
	If:         "if",
	In:         "in",
	Instanceof: "instanceof",
	Let:        "let",
	New:        "new",
	Null:       "null",
	Return:     "return",
	Super:      "super",
	Switch:     "switch",
	This:       "this",
	Throw:      "throw",
	True:       "true",
	Try:        "try",
	Typeof:     "typeof",
	Var:        "var",
	Void:       "void",
	While:      "while",
	With:       "with",
	Yield:      "yield",
}

// String returns the string corresponding to the token tok.
// For operators, delimiters, and keywords the string is the actual
// token character sequence (e.g., for the token Plus, the string is
// "+"). For all other tokens the string corresponds to the token
// constant name (e.g. for the token Identifier, the string is "IDENTIFIER").
func (tok Token) String() string {
	s := ""
	if 0 <= tok && tok < Token(len(tokens)) {
		s = tokens[tok]
	}
	if s == "" {
		s = "token(" + strconv.Itoa(int(tok)) + ")"
	}
	return s
}

var keywords map[string]Token

func init() {
	keywords = make(map[string]Token)
	for i := keywordBegin + 1; i < keywordEnd; i++ {
		keywords[tokens[i]] = i
	}
}

// Lookup maps an identifier to its keyword token or Identifier (if not a keyword).
func Lookup(ident string) Token {
	if tok, isKeyword := keywords[ident]; isKeyword {
		return tok
	}
	return Identifier
}

// IsLiteral returns true for tokens corresponding to identifiers
// and basic type literals; it returns false otherwise.
func (tok Token) IsLiteral() bool { return literalBegin < tok && tok < literalEnd }

// IsOperator returns true for tokens corresponding to operators and
// delimiters; it returns false otherwise.
func (tok Token) IsOperator() bool { return operatorBegin < tok && tok < operatorEnd }

// IsKeyword returns true for tokens corresponding to keywords;
// it returns false otherwise.
func (tok Token) IsKeyword() bool { return keywordBegin < tok && tok < keywordEnd }

// CanAssign reports whether op may be combined with = into a compound assignment.
func (tok Token) CanAssign() bool {
	switch tok {
	case BitOr, BitXor, BitAnd, Lsh, Rsh, Ursh, Plus, Minus, Mul, Div, Mod:
		return true
	}
	return false
}
