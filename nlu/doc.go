// Package nlu contains the stateless text-understanding helpers consumed by
// the dialogue engine: intent classification, topic keyword extraction and
// language inference. All functions are pure; they hold no state and perform
// no I/O.
package nlu
