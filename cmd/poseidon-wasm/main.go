//go:build js && wasm

// Command poseidon-wasm exposes the hash to JavaScript.
//
// To compile use
// GOOS=js GOARCH=wasm go build -o poseidon.wasm ./cmd/poseidon-wasm
//
// It registers four functions on the global object. Integer arguments are
// arrays of numbers, BigInts or decimal strings; integer results are arrays of
// decimal strings because JavaScript numbers cannot hold 64-bit words. Byte
// arguments and results are Uint8Arrays. Failures are returned as Error
// values.
//
//	poseidonU64(words)              -> string[4]
//	poseidonU64Bytes(bytes)         -> string[4]
//	poseidonU64ForBytes(words)      -> Uint8Array(32)
//	poseidonU64BytesForBytes(bytes) -> Uint8Array(32)
package main

import (
	"strconv"
	"syscall/js"

	"github.com/pkg/errors"

	poseidon "github.com/Giulio2002/faster_poseidon"
)

func main() {
	funcs := map[string]js.Func{
		"poseidonU64":              js.FuncOf(poseidonU64),
		"poseidonU64Bytes":         js.FuncOf(poseidonU64Bytes),
		"poseidonU64ForBytes":      js.FuncOf(poseidonU64ForBytes),
		"poseidonU64BytesForBytes": js.FuncOf(poseidonU64BytesForBytes),
	}
	for name, f := range funcs {
		js.Global().Set(name, f)
	}
	// The functions stay callable for the lifetime of the page, so they are
	// never released.
	select {}
}

func poseidonU64(_ js.Value, args []js.Value) interface{} {
	words, err := wordsArg(args)
	if err != nil {
		return jsError(err)
	}
	d, err := poseidon.Sum(words)
	if err != nil {
		return jsError(err)
	}
	return digestWords(d)
}

func poseidonU64Bytes(_ js.Value, args []js.Value) interface{} {
	data, err := bytesArg(args)
	if err != nil {
		return jsError(err)
	}
	d, err := poseidon.SumBytes(data)
	if err != nil {
		return jsError(err)
	}
	return digestWords(d)
}

func poseidonU64ForBytes(_ js.Value, args []js.Value) interface{} {
	words, err := wordsArg(args)
	if err != nil {
		return jsError(err)
	}
	b, err := poseidon.SumToBytes(words)
	if err != nil {
		return jsError(err)
	}
	return uint8Array(b[:])
}

func poseidonU64BytesForBytes(_ js.Value, args []js.Value) interface{} {
	data, err := bytesArg(args)
	if err != nil {
		return jsError(err)
	}
	b, err := poseidon.SumBytesToBytes(data)
	if err != nil {
		return jsError(err)
	}
	return uint8Array(b[:])
}

func wordsArg(args []js.Value) ([]uint64, error) {
	if len(args) != 1 {
		return nil, errors.Errorf("expected 1 argument, got %d", len(args))
	}
	arr := args[0]
	if !js.Global().Get("Array").Call("isArray", arr).Bool() {
		return nil, errors.New("expected an array of words")
	}
	words := make([]uint64, arr.Length())
	for i := range words {
		// String() of a Go js.Value only converts strings, so use the
		// JavaScript conversion to accept numbers and BigInts too.
		s := js.Global().Call("String", arr.Index(i)).String()
		w, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "word %d", i)
		}
		words[i] = w
	}
	return words, nil
}

func bytesArg(args []js.Value) ([]byte, error) {
	if len(args) != 1 {
		return nil, errors.Errorf("expected 1 argument, got %d", len(args))
	}
	if !args[0].InstanceOf(js.Global().Get("Uint8Array")) {
		return nil, errors.New("expected a Uint8Array")
	}
	data := make([]byte, args[0].Length())
	js.CopyBytesToGo(data, args[0])
	return data, nil
}

func digestWords(d [poseidon.DigestSize]uint64) interface{} {
	out := make([]interface{}, len(d))
	for i, w := range d {
		out[i] = strconv.FormatUint(w, 10)
	}
	return out
}

func uint8Array(b []byte) js.Value {
	arr := js.Global().Get("Uint8Array").New(len(b))
	js.CopyBytesToJS(arr, b)
	return arr
}

func jsError(err error) js.Value {
	return js.Global().Get("Error").New(err.Error())
}
