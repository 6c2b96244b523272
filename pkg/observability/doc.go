/*
Package observability provides Prometheus instrumentation for the stylemap
resolver.

It packages counters and histograms as resolver hooks, so metrics collection
stays an opt-in concern of the host application rather than a hard dependency
of the lookup path.
*/
package observability
