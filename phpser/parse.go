package phpser

import (
	"bufio"
	"os"
	"strconv"
)

// MaxDepth bounds array nesting before decoding fails with *NestingError,
// well inside what the goroutine stack can absorb.
const MaxDepth = 10000

// node is the intermediate form between the token stream and the Record: a
// scalar or an ordered list of nodes. Never exposed to callers.
type node struct {
	list   []node
	val    Value
	isList bool
	pos    int // start offset of the producing token
}

// parser assembles nodes from a scanner's token stream.
type parser struct {
	sc *Scanner
}

// Decode reads the first line of the key file at path and decodes it.
// A file that cannot be opened or read fails with *SourceError.
func Decode(path string) (*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &SourceError{Path: path, Err: err}
	}
	defer f.Close()

	// Schedule lines are usually short, but nothing enforces that.
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var line string
	if sc.Scan() {
		line = sc.Text()
	} else if err := sc.Err(); err != nil {
		return nil, &SourceError{Path: path, Err: err}
	}
	return DecodeString(line)
}

// DecodeString decodes one serialized line into a Record. The line must
// hold exactly one top-level array.
func DecodeString(input string) (*Record, error) {
	p := &parser{sc: NewScanner(input)}
	top, err := p.parseList(0)
	if err != nil {
		return nil, err
	}
	if len(top) != 1 {
		return nil, &MalformedTokenError{
			Reason:  "document is not a single top-level array",
			Snippet: snippet(input),
		}
	}
	root := top[0]
	if !root.isList {
		return nil, &MalformedTokenError{
			Reason: "top-level value is not an array",
			Offset: root.pos,
		}
	}
	return convert(root.list)
}

// parseList consumes tokens until the current array closes. Depth 0 is the
// top level, which ends at end of input instead of a close marker.
func (p *parser) parseList(depth int) ([]node, error) {
	if depth > MaxDepth {
		return nil, &NestingError{Depth: depth}
	}
	var items []node
	for {
		if p.sc.AtEnd() {
			if depth > 0 {
				return nil, &UnexpectedEOFError{Depth: depth}
			}
			return items, nil
		}
		tok, err := p.sc.Next()
		if err != nil {
			return nil, err
		}
		switch tok.Type {
		case TokenArrayOpen:
			child, err := p.parseList(depth + 1)
			if err != nil {
				return nil, err
			}
			items = append(items, node{list: child, isList: true, pos: tok.Pos})
		case TokenArrayClose:
			if depth == 0 {
				return nil, &MalformedTokenError{Reason: "unbalanced close marker", Offset: tok.Pos}
			}
			return items, nil
		case TokenInt:
			v, err := strconv.ParseInt(tok.Value, 10, 64)
			if err != nil {
				return nil, &MalformedTokenError{Reason: "integer out of range", Offset: tok.Pos, Snippet: tok.Raw}
			}
			items = append(items, node{val: Int(v), pos: tok.Pos})
		case TokenString:
			items = append(items, node{val: Str(tok.Value), pos: tok.Pos})
		case TokenBool:
			// The digit decides. Treating the payload's mere presence as
			// truth would turn b:0; into true.
			items = append(items, node{val: Bool(tok.Value == "1"), pos: tok.Pos})
		}
	}
}

// convert folds an alternating key/value list into a Record. Element 2k is
// the key and element 2k+1 its value; a trailing key with no value is
// dropped. Nested lists in value position become nested Records.
func convert(items []node) (*Record, error) {
	rec := &Record{}
	for i := 0; i+1 < len(items); i += 2 {
		key, val := items[i], items[i+1]
		if key.isList {
			return nil, &MalformedTokenError{Reason: "array in key position", Offset: key.pos}
		}
		if val.isList {
			child, err := convert(val.list)
			if err != nil {
				return nil, err
			}
			rec.set(key.val, RecordVal(child))
		} else {
			rec.set(key.val, val.val)
		}
	}
	return rec, nil
}
