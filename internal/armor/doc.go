// Package armor reads and writes the jass envelope container format.
//
// A container is a sequence of named base64 blocks in the uuencode -m
// style:
//
//	begin-base64 600 message
//	U2FsdGVkX1/tZ250aGUgc2FsdHkgY2lwaGVydGV4dCBieXRlcyBoZXJlLi4u
//	====
//	begin-base64 600 d3:0a:74:41:99:f2:8e:12:21:95:77:a6:b7:b3:cf:b4
//	JyM3dGhlIHdyYXBwZWQgc2Vzc2lvbiBrZXkgZm9yIG9uZSByZWNpcGllbnQ=
//	====
//
// The block named "message" carries the symmetric payload; every other
// block is a wrapped session key, named by the MD5 fingerprint of the
// recipient key that can open it. uudecode(1) unpacks the blocks of a
// container unchanged.
//
// Decoding is deliberately forgiving: anything between blocks is skipped,
// and CRLF endings are accepted, because envelopes travel through mail
// clients and ticket systems that rewrap and decorate text. Structural
// damage inside a block is still an error.
package armor
