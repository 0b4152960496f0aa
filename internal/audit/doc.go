// Package audit defines the audit event model and sink implementations used
// by the engine's asynchronous audit dispatcher.
package audit
