/*
Package weavetest provides test doubles for the application interfaces:
transactions, messages, handlers, decorators and authenticators, plus key
helpers. Handler and decorator doubles count their calls so that tests can
assert which part of a chain was executed.
*/
package weavetest
