//go:build js && wasm

// Command filterwasm runs the project filter and the key-sequence listener in
// the browser. `go generate ./internal/site` builds it into the embedded
// static assets together with wasm_exec.js.
package main

import (
	"encoding/json"
	"syscall/js"

	"cmhac.dev/internal/filter"
	"cmhac.dev/internal/konami"
	"cmhac.dev/internal/models"
)

func main() {
	doc := js.Global().Get("document")

	if url := doc.Get("body").Get("dataset").Get("easterEgg"); url.Truthy() {
		bindKeys(doc, url.String())
	}
	if index := doc.Call("getElementById", "project-index"); index.Truthy() {
		if err := bindFilter(doc, index.Get("textContent").String()); err != nil {
			js.Global().Get("console").Call("error", "project filter: "+err.Error())
		}
	}

	select {}
}

func bindKeys(doc js.Value, url string) {
	listener := konami.New()
	doc.Call("addEventListener", "keydown", js.FuncOf(func(this js.Value, args []js.Value) any {
		if listener.Press(args[0].Get("key").String()) {
			js.Global().Call("open", url, "_blank")
		}
		return nil
	}))
}

// listing holds the DOM nodes the filter drives
type listing struct {
	state   *filter.State
	search  js.Value
	buttons []js.Value
	cards   []js.Value
}

func bindFilter(doc js.Value, raw string) error {
	var index models.ProjectList
	if err := json.Unmarshal([]byte(raw), &index); err != nil {
		return err
	}

	l := &listing{
		state:   filter.NewState(index.Projects),
		search:  doc.Call("getElementById", "project-search"),
		buttons: all(doc, "#tech-filter [data-tech]"),
		cards:   all(doc, "#projects-list [data-slug]"),
	}

	// start from whatever the server rendered
	if l.search.Truthy() {
		l.state.Search(l.search.Get("value").String())
	}
	for _, b := range l.buttons {
		if b.Get("classList").Call("contains", "selected").Bool() {
			l.state.Select(b.Get("dataset").Get("tech").String())
		}
	}

	if l.search.Truthy() {
		l.search.Call("addEventListener", "input", js.FuncOf(func(this js.Value, args []js.Value) any {
			l.state.Search(l.search.Get("value").String())
			l.render()
			return nil
		}))
		if form := l.search.Get("form"); form.Truthy() {
			form.Call("addEventListener", "submit", js.FuncOf(func(this js.Value, args []js.Value) any {
				args[0].Call("preventDefault")
				return nil
			}))
		}
	}
	for _, b := range l.buttons {
		tech := b.Get("dataset").Get("tech").String()
		b.Call("addEventListener", "click", js.FuncOf(func(this js.Value, args []js.Value) any {
			args[0].Call("preventDefault")
			l.state.Select(tech)
			l.render()
			return nil
		}))
	}

	l.render()
	return nil
}

func (l *listing) render() {
	for _, card := range l.cards {
		slug := card.Get("dataset").Get("slug").String()
		card.Set("hidden", !l.state.IsVisible(slug))
	}
	selected := l.state.Selection().Technology
	for _, b := range l.buttons {
		b.Get("classList").Call("toggle", "selected", b.Get("dataset").Get("tech").String() == selected)
	}
}

func all(doc js.Value, selector string) []js.Value {
	nodes := doc.Call("querySelectorAll", selector)
	out := make([]js.Value, nodes.Length())
	for i := range out {
		out[i] = nodes.Index(i)
	}
	return out
}
