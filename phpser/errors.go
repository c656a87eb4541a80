package phpser

import "fmt"

// MalformedTokenError reports input that matches no grammar rule, or a
// violated wrapper invariant (such as a document whose top level is not a
// single array). Offset is the byte position where decoding stopped;
// Snippet, when present, reproduces a bounded piece of the offending input.
type MalformedTokenError struct {
	Reason  string
	Offset  int
	Snippet string
}

func (e *MalformedTokenError) Error() string {
	if e.Snippet == "" {
		return fmt.Sprintf("phpser: %s at offset %d", e.Reason, e.Offset)
	}
	return fmt.Sprintf("phpser: %s at offset %d: %q", e.Reason, e.Offset, e.Snippet)
}

// UnexpectedEOFError reports input that ended while at least one array was
// still open.
type UnexpectedEOFError struct {
	Depth int // number of arrays still open
}

func (e *UnexpectedEOFError) Error() string {
	return fmt.Sprintf("phpser: input ended with %d unclosed array(s)", e.Depth)
}

// NestingError reports array nesting beyond MaxDepth.
type NestingError struct {
	Depth int
}

func (e *NestingError) Error() string {
	return fmt.Sprintf("phpser: array nesting exceeds %d levels", e.Depth)
}

// SourceError reports an input source that could not be read. It unwraps to
// the underlying failure, so errors.Is(err, fs.ErrNotExist) works for a
// missing key file.
type SourceError struct {
	Path string
	Err  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("phpser: read %s: %v", e.Path, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }
