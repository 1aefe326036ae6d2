// Package api provides the local control API of cgproxy.
//
// The API is served over a unix socket and lets local tools read and update
// the configuration without editing the file by hand:
//
//	GET   /api/v1/config           current configuration (ETag = fingerprint)
//	PATCH /api/v1/config           partial update, validated and persisted
//	POST  /api/v1/config/validate  dry-run validation
//	GET   /api/v1/env              exported environment variables
//	GET   /api/v1/health           liveness
//
// # Response Format
//
// Successful responses wrap data in a "data" field:
//
//	{
//	  "data": { /* response payload */ }
//	}
//
// Error responses use the following format:
//
//	{
//	  "error": {
//	    "code": "validation_failed",
//	    "message": "Human-readable error message",
//	    "details": { /* optional */ }
//	  }
//	}
//
// Mutating requests are accepted only from root or from the uid that runs the
// server; the peer is identified with SO_PEERCRED.
package api
