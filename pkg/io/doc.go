// Package io provides JSON import of address space maps and export of the
// flattened document payload.
//
// # Input format
//
// The input is a single node object, nested recursively:
//
//	{
//	  "name": "SoC",
//	  "start": "0x0000_0000",
//	  "size": "0x1000_0000",
//	  "children": [
//	    {"name": "Boot ROM", "start": 0, "size": "0x20000"},
//	    {"name": "SRAM", "start": "0x2000_0000", "size": 262144}
//	  ]
//	}
//
// Numeric fields accept plain JSON integers, decimal strings, or hex strings
// with a 0x prefix; underscores in hex strings are ignored. Missing names
// default to "Unnamed". Children are sorted by start on import.
//
// Import performs decoding only. Callers run [memmap.Validate] before
// handing the tree to anything that renders; the layout engine must never
// see an unvalidated tree.
//
// # Output format
//
// [Export] produces the flat document payload that sinks embed, the server
// serves, and the store archives:
//
//	{
//	  "document_id": "3b1f...",
//	  "root": {"id": "...", "name": "SoC", "start": 0, "size": 268435456, "end": 268435456},
//	  "nodes": [ ...flattened nodes in pre-order... ]
//	}
//
// The node list is depth-first pre-order with stable hierarchical IDs; it
// round-trips through JSON and BSON identically.
package io
