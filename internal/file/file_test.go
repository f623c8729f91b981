package file

import (
	"io/ioutil"
	"path/filepath"
	"testing"
)

func TestAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "melody-buzzer.log")
	if Exists(path) {
		t.Fatalf("%v should not exist yet", path)
	}

	for _, line := range []string{"one\n", "two\n"} {
		if err := Append(path, []byte(line)); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := ioutil.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "one\ntwo\n" {
		t.Errorf("got %q", got)
	}
	if !Exists(path) {
		t.Errorf("%v should exist", path)
	}
}

func TestAppendMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "x.log")
	if err := Append(path, []byte("x")); err == nil {
		t.Error("expected an error for a missing directory")
	}
}
