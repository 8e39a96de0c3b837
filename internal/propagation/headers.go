package propagation

import (
	"net/http"
	"sort"
	"strings"
)

// allowlist holds the lowercase names of headers eligible for forwarding.
var allowlist = map[string]struct{}{
	// Request correlation, used by the mesh for access logs and sampling
	"x-request-id": {},

	// Lightstep
	"x-ot-span-context": {},

	// Datadog
	"x-datadog-trace-id":          {},
	"x-datadog-parent-id":         {},
	"x-datadog-sampling-priority": {},

	// W3C Trace Context
	"traceparent": {},
	"tracestate":  {},

	// Cloud Trace
	"x-cloud-trace-context": {},

	// gRPC binary trace context
	"grpc-trace-bin": {},

	// B3 (Zipkin)
	"x-b3-traceid":      {},
	"x-b3-spanid":       {},
	"x-b3-parentspanid": {},
	"x-b3-sampled":      {},
	"x-b3-flags":        {},

	// SkyWalking
	"sw8": {},

	// Application-specific
	"end-user":   {},
	"user-agent": {},

	// Session and credentials
	"cookie":        {},
	"authorization": {},
	"jwt":           {},
}

// Headers maps a lowercase header name to the value to forward.
type Headers map[string]string

// Allowlist returns the forwarded header names in sorted order.
func Allowlist() []string {
	names := make([]string, 0, len(allowlist))
	for name := range allowlist {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Allowed reports whether name may be forwarded. Matching ignores case.
func Allowed(name string) bool {
	_, ok := allowlist[strings.ToLower(name)]
	return ok
}

// Extract returns the allowlisted subset of h. Headers missing from h are
// omitted. A header sent more than once is folded into a single value.
func Extract(h http.Header) Headers {
	fwd := make(Headers)
	for key, values := range h {
		name := strings.ToLower(key)
		if _, ok := allowlist[name]; !ok || len(values) == 0 {
			continue
		}
		fwd[name] = strings.Join(values, separator(name))
	}
	return fwd
}

// separator returns the delimiter used when folding repeated header lines.
func separator(name string) string {
	if name == "cookie" {
		return "; "
	}
	return ", "
}

// Names returns the header names in sorted order.
func (h Headers) Names() []string {
	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply sets every header in h on dst, replacing existing values.
func (h Headers) Apply(dst http.Header) {
	for name, value := range h {
		dst.Set(name, value)
	}
}
