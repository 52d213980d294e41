//go:build js && wasm

// Run with: GOOS=js GOARCH=wasm go test ./clients/wasm/
// (needs node and $(go env GOROOT)/lib/wasm on PATH)
package main

import (
	"encoding/base64"
	"strings"
	"syscall/js"
	"testing"

	"github.com/xob0t/PixelVault/pkg/stego"
)

func call(fn func(js.Value, []js.Value) interface{}, args ...interface{}) js.Value {
	vals := make([]js.Value, len(args))
	for i, a := range args {
		vals[i] = js.ValueOf(a)
	}
	return fn(js.Undefined(), vals).(js.Value)
}

func TestEmbed_ArgumentTypes(t *testing.T) {
	tests := []struct {
		name string
		args []interface{}
	}{
		{"no args", nil},
		{"numeric password", []interface{}{42}},
		{"string width", []interface{}{"pw", "wide", 10}},
		{"null height", []interface{}{"pw", 10, nil}},
		{"bool size", []interface{}{"pw", true, false}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := call(embed, tt.args...)
			if got.Type() != js.TypeString || !strings.HasPrefix(got.String(), "error:") {
				t.Fatalf("embed(%v) = %v, want an error string", tt.args, got)
			}
		})
	}
}

func TestEmbedExtract(t *testing.T) {
	b64 := call(embed, "hunter2", 24, 16)
	if strings.HasPrefix(b64.String(), "error:") {
		t.Fatalf("embed: %s", b64.String())
	}
	data, err := base64.StdEncoding.DecodeString(b64.String())
	if err != nil {
		t.Fatalf("decode base64: %v", err)
	}
	if got, err := stego.Extract(data); err != nil || got != "hunter2" {
		t.Fatalf("Extract = %q, %v", got, err)
	}

	res := call(extract, b64.String())
	if res.Type() != js.TypeObject || !res.Get("found").Bool() || res.Get("password").String() != "hunter2" {
		t.Errorf("extract = %v", res)
	}
}

func TestExtract_ArgumentTypes(t *testing.T) {
	for _, arg := range []interface{}{7, nil, true} {
		got := call(extract, arg)
		if got.Type() != js.TypeString || !strings.HasPrefix(got.String(), "error:") {
			t.Errorf("extract(%v) = %v, want an error string", arg, got)
		}
	}
}

func TestGeneratePassword(t *testing.T) {
	if got := call(generatePassword, 24).String(); len(got) != 24 {
		t.Errorf("goPassword(24) length = %d", len(got))
	}
	if got := call(generatePassword, "24").String(); len(got) != 16 {
		t.Errorf("goPassword(\"24\") length = %d, want default 16", len(got))
	}
}
