// Package pkg provides the core libraries for graphdeck.
//
// # Overview
//
// Graphdeck generates synthetic sample graphs and serves an interactive
// dashboard for exploring them. The pkg directory is organized into:
//
//  1. [graph] - Graph model, JSON serialization, random generation
//  2. [session] - Per-user selection and filter state with pluggable stores
//  3. [scene] - Combines graph and session state into render-ready scenes
//  4. [render] - Static SVG/PNG/DOT export via Graphviz
//  5. [errors] - Structured error codes shared across packages
//  6. [config] - TOML configuration for the serve command
//  7. [observability] - Optional instrumentation hooks
//
// # Architecture
//
// The typical data flow:
//
//	Graph file (JSON)
//	         ↓
//	    [graph] package (decode + validate)
//	         ↓
//	    [session] package (selection, filter, layout, color state)
//	         ↓
//	    [scene] package (per-node visual state + legend)
//	         ↓
//	    Dashboard widget or [render] static export
//
// The dashboard itself lives under internal/dashboard; these packages hold
// everything reusable outside the HTTP surface.
package pkg
