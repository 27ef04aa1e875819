//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/voxelsplace/voxland/api"
	"github.com/voxelsplace/voxland/codec"
)

func toJSBytes(b []byte) js.Value {
	uint8arr := js.Global().Get("Uint8Array").New(len(b))
	js.CopyBytesToJS(uint8arr, b)
	return uint8arr
}

func landToGLB(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing land text")
	}
	out, err := api.LandToGLB([]byte(args[0].String()))
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return toJSBytes(out)
}

func landToMap(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing land text")
	}
	out, _, err := api.LandToMapBytes([]byte(args[0].String()), codec.CompZstd)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return toJSBytes(out)
}

func mapToGLB(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing map bytes")
	}
	buf := make([]byte, args[0].Get("length").Int())
	js.CopyBytesToGo(buf, args[0])
	out, err := api.MapToGLB(buf)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return toJSBytes(out)
}

func main() {
	js.Global().Set("landToGLB", js.FuncOf(landToGLB))
	js.Global().Set("landToMap", js.FuncOf(landToMap))
	js.Global().Set("mapToGLB", js.FuncOf(mapToGLB))
	select {}
}
