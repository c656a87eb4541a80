package phpser

import "fmt"

// TokenType represents the kind of a scanner token.
type TokenType uint8

const (
	TokenInt        TokenType = iota // i:123;
	TokenString                      // s:5:"hello";
	TokenBool                        // b:1;
	TokenArrayOpen                   // a:2:{
	TokenArrayClose                  // }
)

// String returns the token type name.
func (t TokenType) String() string {
	switch t {
	case TokenInt:
		return "INT"
	case TokenString:
		return "STRING"
	case TokenBool:
		return "BOOL"
	case TokenArrayOpen:
		return "ARRAY_OPEN"
	case TokenArrayClose:
		return "ARRAY_CLOSE"
	default:
		return "UNKNOWN"
	}
}

// Token is a single lexical token. Raw holds the exact matched span and Pos
// its start offset. For scalar kinds Value holds the decoded payload: the
// digits for TokenInt, "0" or "1" for TokenBool, and the bytes between the
// quotes for TokenString.
type Token struct {
	Type  TokenType
	Raw   string
	Value string
	Pos   int
}

// String returns a debug representation of the token.
func (t Token) String() string {
	if t.Value == "" {
		return t.Type.String()
	}
	return fmt.Sprintf("%s(%q)", t.Type, t.Value)
}

// Scanner produces tokens lazily from the front of a serialized line. It
// owns its cursor; callers never thread a buffer offset between calls.
type Scanner struct {
	input string
	pos   int
}

// NewScanner creates a scanner over the given input.
func NewScanner(input string) *Scanner {
	return &Scanner{input: input}
}

// AtEnd reports whether the whole input has been consumed.
func (s *Scanner) AtEnd() bool {
	return s.pos >= len(s.input)
}

// Offset returns the current byte offset into the input.
func (s *Scanner) Offset() int {
	return s.pos
}

// Next returns the next token, or a *MalformedTokenError when no grammar
// rule matches at the current position.
func (s *Scanner) Next() (Token, error) {
	start := s.pos
	if s.AtEnd() {
		return Token{}, s.fail(start)
	}

	switch s.input[s.pos] {
	case 'i':
		return s.scanInt(start)
	case 's':
		return s.scanString(start)
	case 'b':
		return s.scanBool(start)
	case 'a':
		return s.scanArrayOpen(start)
	case '}':
		s.pos++
		return s.token(TokenArrayClose, start, ""), nil
	}
	return Token{}, s.fail(start)
}

// scanInt scans i:<digits> with an optional trailing semicolon.
func (s *Scanner) scanInt(start int) (Token, error) {
	s.pos++
	if !s.expect(':') {
		return Token{}, s.fail(start)
	}
	val, ok := s.digits()
	if !ok {
		return Token{}, s.fail(start)
	}
	s.expect(';')
	return s.token(TokenInt, start, val), nil
}

// scanString scans s:<length>:"<payload>" with an optional trailing
// semicolon. The declared length is informational; the payload is whatever
// sits between the quotes, so it cannot itself contain a quote.
func (s *Scanner) scanString(start int) (Token, error) {
	s.pos++
	if !s.expect(':') {
		return Token{}, s.fail(start)
	}
	if _, ok := s.digits(); !ok {
		return Token{}, s.fail(start)
	}
	if !s.expect(':') || !s.expect('"') {
		return Token{}, s.fail(start)
	}
	payloadStart := s.pos
	for s.pos < len(s.input) && s.input[s.pos] != '"' {
		s.pos++
	}
	if s.pos >= len(s.input) {
		return Token{}, s.fail(start)
	}
	val := s.input[payloadStart:s.pos]
	s.pos++ // closing quote
	s.expect(';')
	return s.token(TokenString, start, val), nil
}

// scanBool scans b:<0|1> with an optional trailing semicolon.
func (s *Scanner) scanBool(start int) (Token, error) {
	s.pos++
	if !s.expect(':') {
		return Token{}, s.fail(start)
	}
	if s.pos >= len(s.input) || (s.input[s.pos] != '0' && s.input[s.pos] != '1') {
		return Token{}, s.fail(start)
	}
	val := s.input[s.pos : s.pos+1]
	s.pos++
	s.expect(';')
	return s.token(TokenBool, start, val), nil
}

// scanArrayOpen scans a:<count>:{ . The declared count is informational;
// only the close marker terminates an array.
func (s *Scanner) scanArrayOpen(start int) (Token, error) {
	s.pos++
	if !s.expect(':') {
		return Token{}, s.fail(start)
	}
	if _, ok := s.digits(); !ok {
		return Token{}, s.fail(start)
	}
	if !s.expect(':') || !s.expect('{') {
		return Token{}, s.fail(start)
	}
	return s.token(TokenArrayOpen, start, ""), nil
}

// expect consumes ch if it is next and reports whether it did.
func (s *Scanner) expect(ch byte) bool {
	if s.pos < len(s.input) && s.input[s.pos] == ch {
		s.pos++
		return true
	}
	return false
}

// digits consumes a run of at least one decimal digit.
func (s *Scanner) digits() (string, bool) {
	start := s.pos
	for s.pos < len(s.input) && s.input[s.pos] >= '0' && s.input[s.pos] <= '9' {
		s.pos++
	}
	if s.pos == start {
		return "", false
	}
	return s.input[start:s.pos], true
}

func (s *Scanner) token(typ TokenType, start int, val string) Token {
	return Token{Type: typ, Raw: s.input[start:s.pos], Value: val, Pos: start}
}

// fail resets the cursor to the start of the failed token and builds the
// error with a snippet of the unconsumed input.
func (s *Scanner) fail(start int) error {
	s.pos = start
	return &MalformedTokenError{
		Reason:  "no token matches",
		Offset:  start,
		Snippet: snippet(s.input[start:]),
	}
}

// maxSnippet bounds how much of the remaining input an error reproduces.
const maxSnippet = 40

func snippet(rest string) string {
	if len(rest) > maxSnippet {
		return rest[:maxSnippet] + "..."
	}
	return rest
}
