/*
Package observability turns generation hooks into metrics and logs.

Metrics feeds Prometheus collectors (nodes by kind, builds by result, tree size and
depth) and serves them over HTTP. LoggingHooks traces the same events through slog.
Both return domain.GenerationHooks, which can be combined with Merge.
*/
package observability
