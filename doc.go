// Package citymap is an interactive city road map: pick two cities, get the
// shortest route between them drawn on the map, and read the trip's distance,
// travel time and cost off a small panel. Each city can carry a list of
// photos that are opened with the operating system's default viewer.
//
// The root package holds no code. Everything lives in subpackages:
//
//	core/      — thread-safe weighted graph: vertices, edges, adjacency
//	dijkstra/  — single-source shortest paths over core.Graph
//	bfs/       — unweighted walks: fewest-roads routes, connected components
//	atlas/     — the city dataset (built-in or YAML) and route queries
//	trip/      — tariff (speed, cost per unit, currency) and route summaries
//	hud/       — bitmap glyph font, viewport math, path-panel layout
//	render/    — draws a Scene to an RGBA image or PNG (fogleman/gg)
//	gallery/   — per-city photo lists, file URIs, the platform opener
//	viewer/    — click-to-route session state and key commands
//	window/    — the ebiten window driving a viewer.Session
//	config/    — viper settings (file, CITYMAP_* env, flags) and zap logger
//	server/    — HTTP API: cities, routes, map.png, Prometheus metrics
//	cmd/citymap — cobra CLI: view, route, render, images, serve
//
// Quick start:
//
//	go run ./cmd/citymap view
//	go run ./cmd/citymap route Rajshahi Chittagong
//	go run ./cmd/citymap render --from Rangpur --to Barishal -o route.png
//	go run ./cmd/citymap serve --serve-addr :8080
package citymap
