// Package models defines the core domain models for tripsplit.
//
// # Models
//
//   - Group: a set of people sharing expenses over a period (e.g., a trip)
//   - Person: a member of a group's roster
//   - Transaction: one recorded expense (payer, amount, beneficiaries)
//   - Debt: a derived, netted, rounded amount one person owes another
//   - MemberBalance: a derived per-person summary of paid vs. owed
//   - Settlement: a repayment between two people, recorded as a Transaction
//   - User: a registered account that can create groups and be linked to a Person
//
// # Design Principles
//
// 1. **Identity by ID**: people and transactions reference each other by ID strings, never pointers
// 2. **Decimal money**: amounts are decimal.Decimal so accumulation never drifts
// 3. **Derived values are not stored**: Debt and MemberBalance are recomputed on every query
// 4. **JSON shape**: tags match the persisted "groups" collection so exports can be re-imported
package models
