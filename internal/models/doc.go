// Package models defines the core domain models for billdesk.
//
// # Models
//
//   - Bill: a persisted sale with a customer, a timestamp and a total
//   - BillItem: one product line of a saved bill
//   - CartLine: a pending product selection, never persisted on its own
//   - Product: an entry of the fixed shop catalog
//
// # Design Principles
//
// 1. **Exact amounts**: prices and totals are decimal.Decimal, never float64
// 2. **Store-owned identity**: bill IDs come from the database
// 3. **Avoid circular references**: items point at their bill by ID only
// 4. **Write once**: a bill and its items are created together and never edited
package models
