// Package cryptoval values a ledger of dated crypto withdrawals and deposits
// in a reporting currency.
//
// For each transaction date it resolves a historical daily price from a
// market data provider, going through a durable on-disk cache so that a
// given date is fetched over the network at most once, ever. Signed amounts
// are then converted and folded into per-category totals and a profit/loss
// figure.
//
// The package deliberately knows nothing about where transactions come from
// (see csvledger), how prices travel over the wire (see tradermade), or how
// reports are displayed (see renderer). It only defines the contracts:
// [Transaction] in, [QuoteProvider] underneath, [ValuationReport] out.
package cryptoval
