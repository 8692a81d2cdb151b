// Package tailwrite extends prose with completions from a remote
// text-generation service. A Session owns a growing text buffer and a set
// of sampling parameters, sends the buffer to an injected Transport, and
// folds successful completions back into the buffer.
package tailwrite
