package metaclient

import (
	"net/http"
	"net/url"
)

const accessTokenParam = "access_token"

// tokenTransport injeta o token de acesso atual em toda requisição para a Graph API
type tokenTransport struct {
	base   http.RoundTripper
	tokens TokenProvider
}

func newTokenTransport(base http.RoundTripper, tokens TokenProvider) *tokenTransport {
	return &tokenTransport{base: base, tokens: tokens}
}

func (t *tokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())

	query := clone.URL.Query()
	query.Set(accessTokenParam, t.tokens.AccessToken())
	clone.URL.RawQuery = query.Encode()

	return t.base.RoundTrip(clone)
}

// stripAccessToken remove o token dos links de paginação devolvidos pela API,
// para que ele não apareça em logs e mensagens de erro
func stripAccessToken(rawURL string) string {
	if rawURL == "" {
		return ""
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	query := parsed.Query()
	if !query.Has(accessTokenParam) {
		return rawURL
	}
	query.Del(accessTokenParam)
	parsed.RawQuery = query.Encode()

	return parsed.String()
}
