// Package inference is the HTTP transport for the hosted Inference API.
// It posts text and sampling parameters to a text-generation model and
// returns the decoded JSON reply for the caller to classify.
package inference
