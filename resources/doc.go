// Package resources provides typed Cuenca API records and the generic
// retrieve, refresh and query operations they share. Every operation goes
// through an injected Transport; errors from the transport are returned
// unchanged.
package resources
