// Package szurubooru is a typed client for the szurubooru image board
// API.
//
// Construct a Client with NewWithToken, NewWithBasicAuth or
// NewAnonymous, then call endpoints through a Request:
//
//	client, err := szurubooru.NewWithToken("https://booru.example.com", "alice", "sz-token")
//	if err != nil {
//		...
//	}
//	posts, err := client.WithLimit(20).ListPosts(ctx, []szurubooru.QueryToken{
//		szurubooru.Token(szurubooru.PostTokenSafety, "safe"),
//		szurubooru.SortToken(szurubooru.PostSortRandom),
//	})
//
// Search endpoints take query tokens; build them with Token,
// SortToken and AnonymousToken so reserved characters are escaped the
// way the server expects. Content and thumbnail URLs on returned
// resources are rewritten to absolute URLs under the client's base
// URL.
//
// Server-reported failures are returned as *ServerError (the
// structured name/title/description shape), *ResponseError (anything
// else with an error status) or *DecodeError (a success status whose
// body did not match the expected resource). Arguments rejected
// before a request is sent produce *ValidationError.
package szurubooru
