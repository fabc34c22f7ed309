// Package formats reads simulation snapshots: a model description and one
// state of that model, stored together in a YAML document.
package formats
