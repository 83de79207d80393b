// Package apura computes average-cost basis holdings and Brazilian
// capital-gains figures (IRPF) from a chronological ledger of account splits.
//
// The package is organized around two components:
//
//   - the position tracker (Track) folds one account's split history into an
//     ending Holding and the list of Disposal events realized within a
//     reporting window, using a continuously updated weighted-average cost;
//   - the tax aggregator (NewTaxReport) reduces a year's disposals into
//     per-stream monthly buckets, applying the monthly exemption thresholds,
//     the transaction levy and the applicable tax rates.
//
// All monetary arithmetic is exact decimal arithmetic; values are rounded to
// two places only when rendered or exported.
package apura
