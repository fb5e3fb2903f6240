package main

import (
	"fmt"
	"io"
	"sync"

	jsoniter "github.com/json-iterator/go"
)

var (
	json     jsoniter.API
	jsonSync sync.Once
)

// JSONLibrary provides a "encoding/json" compatible API
func JSONLibrary() jsoniter.API {
	jsonSync.Do(func() {
		json = jsoniter.ConfigCompatibleWithStandardLibrary
	})
	return json
}

// writeJSONLine writes v as a single line of JSON.
func writeJSONLine(w io.Writer, v interface{}) error {
	b, err := JSONLibrary().Marshal(v)
	if err != nil {
		return fmt.Errorf("JSON encoding error: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
