//go:build js && wasm
// +build js,wasm

package main

import (
	"fmt"
	"syscall/js"

	"github.com/vedicmetrics/ChandasDNA/internal/meter"
	"github.com/vedicmetrics/ChandasDNA/internal/model"
	"github.com/vedicmetrics/ChandasDNA/internal/scan"
	"github.com/vedicmetrics/ChandasDNA/internal/verse"
)

// Error codes returned to JavaScript
const (
	ErrorNone = iota
	ErrorInvalidArgs
	ErrorCatalogue
	ErrorEmptyVerse
)

// catalogue is built once from the embedded seed; the browser build has no
// database behind it.
var catalogue *meter.Catalogue

// Identifies the meter of a verse.
// Returns: {error: number, data: object | string}
func identifyVerse(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return makeErrorResponse(ErrorInvalidArgs, "Expected at least 1 argument: verse text")
	}
	if args[0].Type() != js.TypeString {
		return makeErrorResponse(ErrorInvalidArgs, "verse must be a string")
	}
	shloka := args[0].String()

	hint := ""
	if len(args) > 1 && args[1].Type() == js.TypeString {
		hint = args[1].String()
	}

	quarters := verse.Quarters(shloka)
	if len(quarters) == 0 {
		return makeErrorResponse(ErrorEmptyVerse, "No metrical content after normalization")
	}

	var (
		weights  [][]model.Weight
		patterns []string
	)
	syllables := js.Global().Get("Array").New()
	idx := 0
	for qi, q := range quarters {
		sylls := scan.Scan(q)
		for pi, syl := range sylls {
			obj := js.Global().Get("Object").New()
			obj.Set("syllable", syl.Surface)
			obj.Set("weight", syl.Weight.String())
			obj.Set("quarter", qi+1)
			obj.Set("position", pi+1)
			syllables.SetIndex(idx, obj)
			idx++
		}
		weights = append(weights, model.Weights(sylls))
		patterns = append(patterns, model.Pattern(sylls))
	}

	opts := meter.DefaultOptions()
	res := catalogue.Match(weights, hint, opts)

	data := js.Global().Get("Object").New()
	data.Set("verdict", string(res.Verdict))
	data.Set("detected", res.Verdict != meter.Unidentified)
	data.Set("explanation", meter.Explain(&res, weights, opts))
	data.Set("syllable_breakdown", syllables)

	patternArr := js.Global().Get("Array").New()
	ganaArr := js.Global().Get("Array").New()
	for i, p := range patterns {
		patternArr.SetIndex(i, p)
		ganaArr.SetIndex(i, meter.GanaPattern(p))
	}
	data.Set("laghu_guru_pattern", patternArr)
	data.Set("gana_pattern", ganaArr)

	if best := res.Best(); best != nil {
		data.Set("confidence", best.Score)
		if res.Verdict != meter.Unidentified {
			data.Set("chandas_name", best.Definition.Name)
		}
	}

	nearest := js.Global().Get("Array").New()
	if res.Verdict == meter.Unidentified {
		for i, c := range res.Nearest(3) {
			obj := js.Global().Get("Object").New()
			obj.Set("name", c.Definition.Name)
			obj.Set("score", c.Score)
			nearest.SetIndex(i, obj)
		}
	}
	data.Set("nearest_candidates", nearest)

	result := js.Global().Get("Object").New()
	result.Set("error", ErrorNone)
	result.Set("data", data)
	return result
}

// Lists the embedded meter catalogue.
// Returns: {error: number, data: array | string}
func listMeters(this js.Value, args []js.Value) interface{} {
	arr := js.Global().Get("Array").New()
	for i, def := range catalogue.Definitions() {
		obj := js.Global().Get("Object").New()
		obj.Set("name", def.Name)
		obj.Set("family", string(def.Family))
		obj.Set("pattern", def.Pattern)
		if def.EvenPattern != "" {
			obj.Set("even_pattern", def.EvenPattern)
		}
		obj.Set("gana_pattern", meter.GanaPattern(def.Pattern))
		arr.SetIndex(i, obj)
	}

	result := js.Global().Get("Object").New()
	result.Set("error", ErrorNone)
	result.Set("data", arr)
	return result
}

func makeErrorResponse(errorCode int, message string) js.Value {
	result := js.Global().Get("Object").New()
	result.Set("error", errorCode)
	result.Set("data", message)
	return result
}

func main() {
	console := js.Global().Get("console")
	if !console.IsUndefined() {
		console.Call("log", "🔧 ChandasDNA WASM module initializing...")
	}

	var err error
	catalogue, err = meter.BuiltinCatalogue()
	if err != nil {
		if !console.IsUndefined() {
			console.Call("error", fmt.Sprintf("❌ Failed to load meter catalogue: %v", err))
		}
		return
	}

	done := make(chan struct{})

	js.Global().Set("identifyVerse", js.FuncOf(identifyVerse))
	js.Global().Set("listMeters", js.FuncOf(listMeters))

	if !console.IsUndefined() {
		console.Call("log", "📝 identifyVerse and listMeters functions registered")
	}

	window := js.Global().Get("window")
	if !window.IsUndefined() {
		eventInit := js.Global().Get("Object").New()
		event := js.Global().Get("CustomEvent").New("wasmReady", eventInit)
		window.Call("dispatchEvent", event)
	}

	if !console.IsUndefined() {
		console.Call("log", fmt.Sprintf("✅ ChandasDNA WASM module loaded with %d meters", catalogue.Len()))
	}

	<-done
}
