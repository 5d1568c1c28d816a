// Package main runs the SOLID reviewer agent relay.
//
// # Overview
//
// The relay sits between the GitHub Copilot platform and the Copilot
// chat-completions API. Each inbound request carries a conversation and a
// delegated user token; the relay resolves the acting user, prepends the
// reviewer persona and a personalization instruction, forwards the augmented
// conversation upstream with streaming enabled, and pipes the raw streamed
// response back unmodified.
//
// # HTTP Surface
//
//   - GET /  : static plaintext greeting, no authentication, no upstream calls
//   - POST / : the relay pipeline; requires the X-GitHub-Token header
//
// The POST body is the Copilot agent payload:
//
//	{
//	  "messages": [
//	    {"role": "user", "content": "Review this type for me.",
//	     "copilot_references": [{"type": "file", "id": "main.go", "data": {...}}]}
//	  ],
//	  "temperature": 0.2,
//	  "top_p": 1,
//	  "max_tokens": 4096,
//	  "copilot_thread_id": "..."
//	}
//
// Generation parameters are forwarded verbatim; the upstream service is
// authoritative for validation and defaults. The response body is the
// upstream's own chunked streaming payload, forwarded as it arrives.
//
// # Upstream Collaborators
//
//   - Identity API: GET https://api.github.com/user, authorized with the
//     delegated token, provides the login used in the personalization turn.
//   - Completion API: POST https://api.githubcopilot.com/chat/completions,
//     authorized with the same delegated token, with "stream": true.
//
// # CLI Usage
//
// Running with no flags starts the HTTP server.
//
//	--mint-session="login"
//	  Mints a relay session token for the given GitHub login and exits.
//	  Requires RELAY_SESSION_SECRET to be set.
//
//	--disable-auth
//	  Disables the relay session gate, accepting all requests.
//
// # Environment Variables
//
//   - PORT: listen port (default 3000)
//   - LOG_MODE: request presentation mode (quiet, compact or full; default compact)
//   - LOG_LEVEL: process log level (default info)
//   - GITHUB_API_URL: identity API base override (tests, GHES)
//   - COPILOT_COMPLETION_URL: completion endpoint override
//   - RELAY_SESSION_SECRET: enables the relay session gate when set
//   - DISABLE_AUTH: "true" or "1" bypasses the session gate
//   - STRIPE_API_KEY, STRIPE_SUBSCRIPTION_ITEM: enable usage metering when both set
package main
