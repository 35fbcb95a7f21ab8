// Package compiler assembles declaration ROM images from resource lists.
//
// Resources are encoded into their payload bytes, lists are assembled into a payload region
// followed by a record table, and the directory references every list.
// Compile appends the trailer and patches the checksum, producing the final image.
//
// All multi-byte values are big-endian. Record table entries hold 24 bit signed offsets,
// relative to the entry itself.
package compiler
