// Package preflight validates the environment before content runs: directory
// access, API credentials, and the topic catalog. Checks report results
// instead of failing fast so the CLI can show everything at once.
package preflight
