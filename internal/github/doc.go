// Package github adapts the GitHub REST API (via google/go-github) to the
// search core: lazy code-search pagination, quota snapshots, blob content
// fetches and typed error mapping. HTTP, auth and the pagination protocol
// stay inside the SDK; this package only decides when pages and blobs are
// fetched.
package github
