// Package push delivers rendered notification messages to the external push
// provider.
//
// The gateway sends exactly one message per call and folds every failure
// (bad tokens, provider rejections, transport errors) into a Result instead
// of an error so one bad delivery can never abort sibling dispatches. There
// is no retry here and none is wanted; the worst outcome of a failure is a
// single missed notification.
package push
