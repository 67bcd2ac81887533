// Package document models the host page the theme controller runs in: a root
// element carrying a class list and a named-event dispatcher whose handlers run
// one at a time, in dispatch order.
package document
