// Package history translates between Pagio's logical navigation state and
// the host-visible address, and keeps the two synchronized.
//
// The logical path can be carried in the address three ways, chosen once
// at setup and fixed for the application's lifetime:
//
//	EncodingPath      /app/user/42?tab=posts
//	EncodingQuery     /app?page=%2Fuser%2F42&tab=posts
//	EncodingFragment  /app#/user/42?tab=posts
//
// Encode and Decode round-trip: for every reachable state s,
// Decode(Encode(s)) reproduces s's path and query (route params are
// re-derived by the matcher and are not part of the address contract).
//
// Commit writes the encoded address to the host: push for user-initiated
// navigation, replace for internally corrective navigation. Mixing these
// up causes back-button loops, which is the primary hazard this package
// defends against. A re-entrancy flag keeps the synchronizer's own commit
// from re-triggering navigation through the host's change callback.
package history
