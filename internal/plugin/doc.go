// Package plugin defines the plugin contract and the built-in plugins.
//
// A plugin registers typed handlers in a broadcast.Registry and may add
// refiner strategies. Registration happens once, before any input is parsed.
package plugin
