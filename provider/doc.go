// Package provider talks to the hosted generative-language API.
//
// Only the content gateway calls a Generator. Gemini wraps the genai client;
// Unconfigured stands in when no API key is set so that cached content can
// still be served.
package provider
