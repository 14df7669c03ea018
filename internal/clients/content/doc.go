// Package content builds requests for the generative content collaborator
// and turns its raw replies into validated records.
//
// A Request pairs an instruction prompt with the declared Schema of the
// expected reply. Builder is pure and performs no I/O. Client invokes a
// Provider exactly once per call and either returns a Record that conforms to
// the schema or fails with a classified error:
//
//   - UNAVAILABLE when the provider itself failed
//   - MALFORMED_RESPONSE when the reply could not be parsed or violated the schema
//   - CANCELED or DEADLINE_EXCEEDED when the caller's context ended
//
// Retrying is left to the caller.
package content
