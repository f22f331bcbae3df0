//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/cwbudde/algo-noise/internal/webscope"
)

var (
	engine *webscope.Engine
	funcs  []js.Func
)

func main() {
	api := js.Global().Get("Object").New()
	api.Set("init", export(func(args []js.Value) any {
		sr := 48000.0
		if len(args) > 0 {
			sr = args[0].Float()
		}
		e, err := webscope.NewEngine(sr)
		if err != nil {
			return err.Error()
		}
		engine = e
		return js.Null()
	}))

	api.Set("render", export(func(args []js.Value) any {
		if engine == nil || len(args) < 1 {
			return js.Null()
		}
		n := args[0].Int()
		left := make([]float32, n)
		right := make([]float32, n)
		engine.Render(left, right)
		return stereoToJS(left, right)
	}))

	api.Set("waveform", export(func(args []js.Value) any {
		if engine == nil {
			return js.Null()
		}
		left := make([]float32, webscope.DisplayBlock)
		right := make([]float32, webscope.DisplayBlock)
		engine.Waveform(left, right)
		return stereoToJS(left, right)
	}))

	api.Set("spectrum", export(func(args []js.Value) any {
		if engine == nil || len(args) < 1 {
			return js.Global().Get("Float32Array").New(0)
		}
		input := args[0]
		freqs := make([]float64, input.Length())
		for i := 0; i < input.Length(); i++ {
			freqs[i] = input.Index(i).Float()
		}
		curve := engine.SpectrumCurveDB(freqs)
		arr := js.Global().Get("Float32Array").New(len(curve))
		for i := range curve {
			arr.SetIndex(i, curve[i])
		}
		return arr
	}))

	js.Global().Set("AlgoNoiseDemo", api)
	select {}
}

func stereoToJS(left, right []float32) js.Value {
	out := js.Global().Get("Object").New()
	l := js.Global().Get("Float32Array").New(len(left))
	r := js.Global().Get("Float32Array").New(len(right))
	for i := range left {
		l.SetIndex(i, left[i])
		r.SetIndex(i, right[i])
	}
	out.Set("left", l)
	out.Set("right", r)
	return out
}

func export(fn func([]js.Value) any) js.Func {
	f := js.FuncOf(func(_ js.Value, args []js.Value) any {
		return fn(args)
	})
	funcs = append(funcs, f)
	return f
}
