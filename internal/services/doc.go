// Package services defines the shared error taxonomy consumed by the
// strategy chain and external tool clients.
//
// The exported sentinels classify every failure the generator can see:
// missing optional capabilities, attempted-but-errored strategies, and the
// one unrecoverable case of an unwritable output target. Wrap tags errors
// with a sentinel plus component/operation context so degraded-mode runs can
// be diagnosed from logs alone, and Fatal decides the process exit code.
package services
