// Package dispatch drives notification delivery.
//
// Two entry points feed a shared resolve-build-send pipeline: Events handles
// task change-feed events (creation and the open-to-completed transition),
// and Scanner runs the recurring due-soon window scan. Dispatches are
// independent of one another; every failure is absorbed into an Outcome so
// the worst result of any single problem is one missed notification.
package dispatch
