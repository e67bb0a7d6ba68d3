// Package audit records who ran what and when. A Log is an explicit,
// append-only handle: open it once, write events and scan records through
// it, and close it at shutdown. Operations that need auditing run through
// an Operation, which fires before, after and failure hooks around the call.
package audit
