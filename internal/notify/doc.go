// Package notify defines notification kinds and renders push messages from
// task snapshots.
//
// Build is a pure function: given a kind, a task, and the presentation
// options shared with the mobile client, it produces the complete message.
// Resolution and delivery live elsewhere; this package never performs I/O.
package notify
