// Package manifest handles the human-maintained file that lists the records to generate
// field views for.
//
// Both YAML and TOML are accepted, chosen by file extension:
//
//	version: "1"
//	packages: ["./store"]
//	records:
//	  - type: store.Order
//	  - type: store.Customer
//	    name: Client
//	    members: [bool, int64, uint8, string, "*string", bool]
//	  - type: store.OrderItem
//	    readonly: true
//
// A record's members, when given, are Go type expressions evaluated in the record's
// package. They are checked against the record's real layout before any code is emitted.
package manifest
