//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/inamate/drawkit/internal/drawing"
	"github.com/inamate/drawkit/internal/engine"
)

const historySize = 100

var eng *engine.Engine

func main() {
	eng = engine.NewEngine(drawing.New(), historySize)

	// Create the engine API object
	drawkit := js.Global().Get("Object").New()

	// --- Commands (frontend → engine) ---
	drawkit.Set("apply", js.FuncOf(apply))
	drawkit.Set("undo", js.FuncOf(undo))
	drawkit.Set("redo", js.FuncOf(redo))
	drawkit.Set("subscribe", js.FuncOf(subscribe))

	// --- Queries (frontend ← engine) ---
	drawkit.Set("render", js.FuncOf(render))
	drawkit.Set("hitTest", js.FuncOf(hitTest))
	drawkit.Set("getSelectionBounds", js.FuncOf(getSelectionBounds))
	drawkit.Set("getState", js.FuncOf(getState))
	drawkit.Set("getFigures", js.FuncOf(getFigures))

	// Register on global scope
	js.Global().Set("drawkitEngine", drawkit)

	// Signal that WASM is ready
	js.Global().Set("drawkitWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

func result(err error) interface{} {
	if err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return js.ValueOf(map[string]interface{}{"ok": true})
}

// --- Command Handlers ---

func apply(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing operation JSON"})
	}
	return result(eng.ApplyJSON([]byte(args[0].String())))
}

func undo(this js.Value, args []js.Value) interface{} {
	return result(eng.Undo())
}

func redo(this js.Value, args []js.Value) interface{} {
	return result(eng.Redo())
}

// subscribe calls the given JS function with the new version after every
// model change and returns a function that unsubscribes.
func subscribe(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || args[0].Type() != js.TypeFunction {
		return js.Undefined()
	}
	fn := args[0]
	cancel := eng.Drawing().Subscribe(func(version uint64) {
		fn.Invoke(float64(version))
	})
	var unsubscribe js.Func
	unsubscribe = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		cancel()
		unsubscribe.Release()
		return nil
	})
	return unsubscribe
}

// --- Query Handlers ---

func render(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.RenderJSON())
}

func hitTest(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf("")
	}
	x := args[0].Float()
	y := args[1].Float()
	return js.ValueOf(eng.HitTest(x, y))
}

func getSelectionBounds(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(engine.RectToJSON(eng.SelectionBounds()))
}

func getState(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.StateJSON())
}

func getFigures(this js.Value, args []js.Value) interface{} {
	data, err := json.Marshal(eng.Info())
	if err != nil {
		return js.ValueOf("[]")
	}
	return js.ValueOf(string(data))
}
