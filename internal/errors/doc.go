// Package errors provides the structured error type shared by every layer of alter-ego.
//
// Errors carry a Code, a user-facing Message, an optional Cause and free-form Meta.
// Codes map onto both HTTP statuses and gRPC codes, so handlers never need to
// inspect error strings.
//
// # Game taxonomy
//
// The game distinguishes five failure families:
//
//	errors.InvalidArgument(...)   // ValidationError: caller must fix input, Meta carries fields
//	errors.RateLimited(...)       // RESOURCE_EXHAUSTED: show a cooldown, never retried
//	errors.Provider(err, ...)     // UNAVAILABLE: content collaborator failed, manual retry
//	errors.MalformedResponse(...) // collaborator broke the declared schema
//	errors.Persistence(err, ...)  // DATA_LOSS: local state unreadable, reset to fresh
//
// MalformedResponse is presented to players exactly like Provider but keeps its
// own code so logs and metrics can tell them apart.
//
// # Wrapping
//
//	if err := repo.Save(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to save game state")
//	}
//
// Wrap keeps the code of a wrapped *Error; plain errors become INTERNAL.
//
// # Validation
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRuneLength("name", input.Name, 1, 30, vb)
//	errors.ValidateEnum("destination", input.Destination, entities.DestinationNames(), vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
//
// FieldViolations(err) turns the result back into a sorted, machine-readable list.
package errors
