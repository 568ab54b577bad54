// Package pipeline composes decoding, spectrum analysis, filter design,
// filtering and persistence into the two operations the CLI exposes:
// AnalyzeFile and FilterFile.
//
// A Pipeline is built once from functional options and is synchronous:
// each call decodes the input, runs the numeric stages in order and
// returns a report, or the first error wrapped with context. Collaborators
// (decoder, encoder, renderers) default to the real implementations and
// can be injected for testing.
package pipeline
