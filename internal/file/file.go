package file

import (
	"io"
	"os"
)

// Append writes data to the end of path, creating the file if needed
func Append(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0600)
	if err != nil {
		return err
	}

	n, err := f.Write(data)
	if err != nil {
		_ = f.Close()
		return err
	}
	if n < len(data) {
		_ = f.Close()
		return io.ErrShortWrite
	}

	return f.Close()
}

func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
