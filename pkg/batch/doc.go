// Package batch drives a generation run: every course goes from pending to either
// emitted or failed, one course at a time, and the run always reaches the end.
package batch
