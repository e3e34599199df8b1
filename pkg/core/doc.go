// Package core defines the shared domain types for FieldMap: the closed
// enumerations for data types, business groups and resolution tiers, the
// FieldMapping and QualityScore records produced by the engine, and the
// error taxonomy.
//
// The package is dependency-free by design so that both the resolution
// engine (pkg/mapping) and the quality validator (pkg/quality) can share
// types without import cycles.
package core
