package domain

import (
	"errors"
	"fmt"
)

var ErrIndexOutOfRange = errors.New("episode index out of range")

// UnknownShowError: le hash référence une série absente du registre.
type UnknownShowError struct {
	Name string
}

func (e *UnknownShowError) Error() string {
	return fmt.Sprintf("unknown show %q", e.Name)
}

type FetchError struct {
	Show string
	URL  string
	Err  error
}

func (e *FetchError) Error() string {
	if e.Show == "" {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %q (%s): %v", e.Show, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// FeedParseError couvre un document illisible ou un item sans champ requis
// (title, link, pubDate, enclosure).
type FeedParseError struct {
	Show string
	Err  error
}

func (e *FeedParseError) Error() string {
	if e.Show == "" {
		return fmt.Sprintf("parse feed: %v", e.Err)
	}
	return fmt.Sprintf("parse feed %q: %v", e.Show, e.Err)
}

func (e *FeedParseError) Unwrap() error { return e.Err }

type ClipboardWriteError struct {
	Err error
}

func (e *ClipboardWriteError) Error() string {
	return "clipboard write: " + e.Err.Error()
}

func (e *ClipboardWriteError) Unwrap() error { return e.Err }

type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
