// Package propagation selects the inbound request headers that must travel
// with any call this service makes to another service in the mesh.
//
// The set covers request correlation, the tracing formats understood by the
// mesh sidecars (W3C Trace Context, B3, Datadog, Lightstep, Cloud Trace,
// gRPC binary, SkyWalking) and the identity headers used for routing rules:
//
//	fwd := propagation.Extract(r.Header)
//	fwd.Apply(outbound.Header)
//
// Values are opaque. Nothing here parses, creates or alters trace context.
package propagation
