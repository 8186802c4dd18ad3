// Package campaign provides the business logic for encrypted campaign
// contact-list management.
//
// This package is the heart of the application, containing all domain logic
// independent of any UI or transport layer. It can be used by web handlers,
// CLI tools, or tests without modification.
//
// # Architecture
//
// The package is organized around four pieces:
//
//   - CSV parsing: a permissive single-pass line parser that tolerates the
//     malformed exports real campaign tools produce ([ParseLine], [SplitLines]).
//   - Field mapping: the fixed canonical contact schema ([Field]) and the
//     heuristic that proposes a mapping from arbitrary CSV headers ([AutoMap]).
//   - Timezone derivation: a static (state, country) lookup ([DeriveTimezone]).
//   - The ingestion pipeline: [Service.Ingest] normalizes rows, appends the
//     derived Time Zone attribute, and persists the result encrypted.
//
// # Collaborators
//
// The service depends on two injected interfaces and nothing else:
//
//   - [Store]: campaign and note persistence. Implemented by
//     internal/storage (Postgres via pgx, plus an in-memory store).
//   - [Cipher]: symmetric encryption of serialized campaign payloads.
//     Implemented by internal/secrets (AES-GCM).
//
// Campaign rows are never persisted in plaintext: the write path returns only
// a [Summary], and reads decrypt on demand via [Service.Campaign].
//
// # Error Handling
//
// Validation failures are detected before any persistence call is made, so a
// campaign is either fully written or not written at all:
//
//   - [ErrEmptyFile]: the upload had no non-blank lines
//   - [MissingRequiredFieldError]: the mapping omits First Name, Last Name, or Email
//   - [CorruptedCampaignError]: stored ciphertext failed to decrypt or decode
//
// Malformed individual lines (ragged field counts, unterminated quotes) are
// not errors; the parser degrades gracefully instead of rejecting the file.
package campaign
