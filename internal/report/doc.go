// Package report holds the read-side aggregations of the ledger: balances,
// ranking, category mix, peak hours, dashboard totals and the monthly
// spreadsheet export.
//
// Every function is pure. Callers load rows from storage and pass them in;
// nothing here touches a database or the clock.
package report
