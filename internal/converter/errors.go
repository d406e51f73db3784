package converter

import "fmt"

// UnsupportedFormatError is returned when a file's extension is neither csv nor xlsx.
type UnsupportedFormatError struct {
	Filename  string
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	ext := e.Extension
	if ext == "" {
		ext = "(none)"
	}
	return prefix(e.Filename) + "unsupported file type: " + ext
}

// ParseError wraps any failure to read the bytes of a supported file as a table.
type ParseError struct {
	Filename string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%sparse: %v", prefix(e.Filename), e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// SerializationError wraps a failure to encode or write an export.
type SerializationError struct {
	Filename string
	Format   string
	Err      error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("%swrite %s: %v", prefix(e.Filename), e.Format, e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}

func prefix(filename string) string {
	if filename == "" {
		return ""
	}
	return filename + ": "
}
