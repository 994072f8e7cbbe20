// Package designmat builds design matrices for regression-based
// deconvolution of overlapping event-related responses.
//
// 🚀 What is designmat?
//
//	A small, deterministic library that brings together:
//		• Formulas: Wilkinson notation with cat() and spl() extensions
//		• Events: typed attribute tables with per-type masking
//		• Coding: reference or effects coding, interactions by product
//		• Splines: B-spline bases with quantile/linear/log knot spacing
//		• Groups: one formula per event-type group, merged without name clashes
//
// ✨ Why choose designmat?
//
//   - Structured names – columns are (predictor, level) factors, never strings to patch
//   - Fail-fast – every error names the pipeline stage and wraps a sentinel
//   - gonum inside – matrices are *mat.Dense, ready for any solver
//
// Under the hood, everything is organized in small subpackages:
//
//	model/   — Column, Variable, Factor and the naming rules
//	formula/ — term expansion and cat()/spl() extraction
//	events/  — Event, Value and the masked attribute Table
//	coding/  — categorical and continuous coding, interactions
//	spline/  — spline-basis Service and the default BSpline
//	design/  — Build, BuildGroups and Record.AppendColumn
//
// Command cmd/designmat wraps design.BuildGroups for YAML/JSON inputs.
package designmat
