// Package query builds declarative filter predicates and pagination windows
// for the delivery dataset.
//
// Each filter key compiles to an independent, immutable Predicate fragment;
// fragments are combined by an explicit conjunction step rather than by
// mutating a shared query builder, so filter order can never change results.
// Predicates use "?" placeholders and are renumbered to PostgreSQL "$n"
// placeholders when rendered by the repository layer.
package query
