//go:build js && wasm

// PixelVault WASM: client-side embed and extract.
// Compiled with: GOOS=js GOARCH=wasm go build -o pixelvault.wasm ./clients/wasm/
package main

import (
	"encoding/base64"
	"fmt"
	"syscall/js"

	"github.com/xob0t/PixelVault/pkg/carrier"
	"github.com/xob0t/PixelVault/pkg/password"
	"github.com/xob0t/PixelVault/pkg/stego"
)

func main() {
	fmt.Println("PixelVault WASM loaded")

	js.Global().Set("goEmbed", js.FuncOf(embed))
	js.Global().Set("goExtract", js.FuncOf(extract))
	js.Global().Set("goPassword", js.FuncOf(generatePassword))
	js.Global().Set("goReady", js.ValueOf(true))

	// Block forever (WASM must not exit).
	select {}
}

// goEmbed(password, width, height) returns a base64 PNG.
func embed(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf("error: need password")
	}
	if args[0].Type() != js.TypeString {
		return js.ValueOf("error: password must be a string")
	}
	cfg := carrier.Config{}
	if len(args) >= 3 {
		if args[1].Type() != js.TypeNumber || args[2].Type() != js.TypeNumber {
			return js.ValueOf("error: width and height must be numbers")
		}
		cfg.Width = args[1].Int()
		cfg.Height = args[2].Int()
	}

	data, err := stego.Embed(args[0].String(), cfg)
	if err != nil {
		return js.ValueOf("error: " + err.Error())
	}
	return js.ValueOf(base64.StdEncoding.EncodeToString(data))
}

// goExtract(base64Image) returns {found, password}.
func extract(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf("error: need base64Image")
	}
	if args[0].Type() != js.TypeString {
		return js.ValueOf("error: base64Image must be a string")
	}
	data, err := base64.StdEncoding.DecodeString(args[0].String())
	if err != nil {
		return js.ValueOf("error: invalid base64: " + err.Error())
	}

	pw, err := stego.Extract(data)
	switch {
	case stego.IsNotFound(err):
		return js.ValueOf(map[string]interface{}{"found": false, "password": ""})
	case err != nil:
		return js.ValueOf("error: " + err.Error())
	}
	return js.ValueOf(map[string]interface{}{"found": true, "password": pw})
}

// goPassword(length) returns a random password.
func generatePassword(this js.Value, args []js.Value) interface{} {
	length := password.DefaultLength
	if len(args) >= 1 && args[0].Type() == js.TypeNumber {
		length = args[0].Int()
	}
	pw, err := password.Generate(nil, length)
	if err != nil {
		return js.ValueOf("error: " + err.Error())
	}
	return js.ValueOf(pw)
}
