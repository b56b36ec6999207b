// Package order provides domain entities and business logic for order management
// in the rental platform. It implements the Order aggregate root with lifecycle
// management, state transitions, and the append-only audit trail.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, properties, and lifecycle
//   - Status: A state machine that enforces valid order status transitions
//   - OrderLog: An append-only audit record of a single status transition
//
// Key business rules:
//   - Orders must reference a positive user id and item id and carry a rental period
//   - Order status follows a defined workflow: pending -> active -> returned
//   - Only pending orders can be cancelled; only pending orders can be confirmed
//   - returned and cancelled are terminal: no outgoing transitions at all
//   - Every transition produces exactly one audit record, creation included
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
