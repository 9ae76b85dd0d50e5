// Package sactorium provides the domain logic for a small import-resale
// business: a product catalog, a sales ledger, and an import-duty cost
// estimator for goods brought in via Paraguay.
//
// The core functionalities include:
//   - Tax Schedule Store: NCM customs classifications with up to five
//     configurable taxes per code, plus the Paraguay customs defaults,
//     persisted as a single JSON file rewritten atomically on every
//     mutation.
//   - Import Cost Calculator: a pure transform from a cost input bundle
//     and an NCM record to a layered breakdown (CIF, NCM taxes, IVA,
//     broker fees, landed unit cost) and two candidate resale prices.
//   - Catalog and Sales Ledger: product records with stock tracking and
//     a most-recent-first sales listing joined with product names.
//   - Bulk Import: delimited-file product import with per-row error
//     collection.
//
// All monetary arithmetic is exact, built on shopspring/decimal. This
// package serves as the foundational logic for the `sct` command-line
// tool.
package sactorium
