package token

import "fmt"

// Token is a lexeme produced by the lexer.  Tokens are never modified after
// they are emitted.
type Token struct {
	Type   Type
	Text   string
	Source *Location
}

func (tok *Token) String() string {
	switch tok.Type {
	case EOF:
		return "end of input"
	case KEYWORD, IDENT, OPERATOR, PAREN_L, PAREN_R, BRACE_L, BRACE_R, COMMA:
		return fmt.Sprintf("%q", tok.Text)
	case NUMBER, STRING:
		return fmt.Sprintf("%s %s", tok.Type, tok.Text)
	default:
		return fmt.Sprintf("%s %q", tok.Type, tok.Text)
	}
}

// Literal returns the decoded value of a STRING token, its text without the
// enclosing quotes.  No escape sequences are interpreted.  For any other token
// type Literal returns tok.Text.
func (tok *Token) Literal() string {
	if tok.Type == STRING && len(tok.Text) >= 2 {
		return tok.Text[1 : len(tok.Text)-1]
	}
	return tok.Text
}

// Is returns true if tok has type typ and its text is one of text.  When no
// text is given only the type is compared.
func (tok *Token) Is(typ Type, text ...string) bool {
	if tok == nil || tok.Type != typ {
		return false
	}
	if len(text) == 0 {
		return true
	}
	for _, s := range text {
		if tok.Text == s {
			return true
		}
	}
	return false
}

// IsKeyword returns true if tok is one of the given keywords.
func (tok *Token) IsKeyword(kw ...string) bool {
	return tok.Is(KEYWORD, kw...)
}

type Type uint

// Type constants used for the smodr lexer/parser.
const (
	INVALID Type = iota
	ERROR
	EOF

	// Literals and names
	KEYWORD
	IDENT
	NUMBER
	STRING

	// Operators: = == != <= >= < > + - * /
	OPERATOR

	// Delimiters
	PAREN_L
	PAREN_R
	BRACE_L
	BRACE_R
	COMMA

	numTokenTypes
)

func (typ Type) String() string {
	typeStrings := [numTokenTypes]string{
		INVALID:  "invalid",
		ERROR:    "error",
		EOF:      "EOF",
		KEYWORD:  "keyword",
		IDENT:    "identifier",
		NUMBER:   "number",
		STRING:   "string",
		OPERATOR: "operator",
		PAREN_L:  "(",
		PAREN_R:  ")",
		BRACE_L:  "{",
		BRACE_R:  "}",
		COMMA:    ",",
	}
	if typ >= numTokenTypes {
		return typeStrings[INVALID]
	}
	return typeStrings[typ]
}

// Keywords reserved by the language.  Keyword recognition is case-sensitive.
const (
	DEFINE  = "DEFINE"
	IF      = "IF"
	THEN    = "THEN"
	ELSE    = "ELSE"
	END     = "END"
	WHILE   = "WHILE"
	DO      = "DO"
	RETURN  = "RETURN"
	RECURSE = "RECURSE"
	MODIFY  = "MODIFY"
)

// StopWords are the reserved keywords which parse as statements but have no
// effect when executed.
var StopWords = []string{
	"STOP", "WORDS", "WAIT", "WATCH", "LISTEN", "PAUSE",
	"CONTEMPLATE", "EAT", "DRINK", "SLEEP", "REST", "OBEY",
}

var keywords = map[string]bool{
	DEFINE:  true,
	IF:      true,
	THEN:    true,
	ELSE:    true,
	END:     true,
	WHILE:   true,
	DO:      true,
	RETURN:  true,
	RECURSE: true,
	MODIFY:  true,
}

var stopWords = make(map[string]bool, len(StopWords))

func init() {
	for _, w := range StopWords {
		stopWords[w] = true
		keywords[w] = true
	}
}

// IsKeyword returns true if word is a reserved keyword.
func IsKeyword(word string) bool {
	return keywords[word]
}

// IsStopWord returns true if word belongs to the no-op keyword vocabulary.
func IsStopWord(word string) bool {
	return stopWords[word]
}

type Location struct {
	File string
	Pos  int
	Line int // line number (starting at 1 when tracked)
	Col  int // line column number (starting at 1 when tracked)
}

func (loc *Location) String() string {
	if loc == nil {
		return "<unknown>"
	}
	file := loc.File
	if file == "" {
		file = "<input>"
	}
	switch {
	case loc.Line == 0:
		return fmt.Sprintf("%s[%d]", file, loc.Pos)
	case loc.Col == 0:
		return fmt.Sprintf("%s:%d", file, loc.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", file, loc.Line, loc.Col)
	}
}
