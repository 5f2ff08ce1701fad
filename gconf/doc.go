/*
Package gconf implements a configuration store intended to be used as a
global, in-database configuration.

Each extension keeps at most one configuration object, stored under a key
derived from the extension name. The configuration is loaded from the genesis
"conf" section and can be read by handlers at any time.
*/
package gconf
