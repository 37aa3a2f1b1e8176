// Package wistia provides a client for the Wistia Data and Stats APIs.
//
// Every call follows the same pipeline: a Route names the endpoint, a
// RequestBuilder composes the URL and injects the API password, a Transport
// performs the round trip, and Decode turns the body into a typed model.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := wistia.NewClient(
//		"your-api-password",
//		wistia.WithLogger(logger),
//		wistia.WithTimeout(30*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	media, err := client.ShowMedia(ctx, "abcd123")
//	switch {
//	case err != nil:
//		// transport or decode failure
//	case media == nil:
//		// the API answered without a body
//	default:
//		hd := media.AssetsOfKind(wistia.AssetHdMP4)
//	}
//
// # Results
//
// Facade methods return (value, error). A nil value with a nil error is a
// valid outcome meaning there was no data to decode; it is distinct from a
// *DecodeError, which reports a body that did not match the expected shape.
// Decode exposes the same three states explicitly through Outcome.
//
// # Errors
//
//   - Transport errors (network failures, *APIError for non-2xx responses,
//     open circuit breaker) are returned unchanged.
//   - *DecodeError carries the JSON path, expected type and actual value.
//   - *URLError (matching ErrInvalidURL) reports a request that could not be
//     composed, such as an empty identifier or a malformed base URL.
//
// # Identifiers
//
// Identifiers are path-escaped when routes are rendered. Empty identifiers and
// dot segments are rejected by the builder.
//
// # Concurrency
//
// A Client holds only read-only configuration and may be shared between
// goroutines. Calls are independent and carry no ordering guarantee.
package wistia
