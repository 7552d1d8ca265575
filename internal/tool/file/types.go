package file

import (
	"fmt"
)

// MaxReadChars is the number of characters a read returns before truncating.
const MaxReadChars = 10000

// ReadFileRequest names the file to read.
type ReadFileRequest struct {
	FilePath string `mapstructure:"file_path"`
}

// ReadFileResponse contains the result of a ReadFile operation.
type ReadFileResponse struct {
	AbsolutePath string
	Content      string
	Truncated    bool
}

// String returns the content, followed by a marker when it was truncated.
func (r *ReadFileResponse) String() string {
	if !r.Truncated {
		return r.Content
	}
	return fmt.Sprintf("%s\n[...File \"%s\" truncated at %d characters]", r.Content, r.AbsolutePath, MaxReadChars)
}

// WriteFileRequest names the file to write and its full new content.
type WriteFileRequest struct {
	FilePath string `mapstructure:"file_path"`
	Content  string `mapstructure:"content"`
}

// WriteFileResponse contains the result of a WriteFile operation.
type WriteFileResponse struct {
	AbsolutePath string
	CharsWritten int
}

// String renders the write receipt.
func (r *WriteFileResponse) String() string {
	return fmt.Sprintf("Successfully wrote to \"%s\" (%d characters written)", r.AbsolutePath, r.CharsWritten)
}
