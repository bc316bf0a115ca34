package site

// The browser filter is embedded with the rest of static/. Run
// `go generate ./internal/site` before building cmd/generate or cmd/server.

//go:generate env GOOS=js GOARCH=wasm go build -o static/filter.wasm cmhac.dev/cmd/filterwasm
//go:generate cp $GOROOT/lib/wasm/wasm_exec.js static/wasm_exec.js
