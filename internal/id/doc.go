// Package id generates the identifiers the emulator hands out.
//
//   - RequestID: the x-amzn-RequestId of every API response (UUID v4)
//   - Token: opaque nextToken and sequence-token values (UUID v4)
//   - Sortable: request-history entry IDs; 26 Crockford base32 characters
//     that sort by creation time, strictly increasing within a process
package id
