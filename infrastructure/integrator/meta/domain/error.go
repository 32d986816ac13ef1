package metadomain

import (
	"fmt"
	"net/http"
)

// ErrorResponse representa a estrutura de erro da API do Meta
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails contém os detalhes de erro da API do Meta
type ErrorDetails struct {
	Message        string      `json:"message"`
	Type           string      `json:"type"`
	Code           int         `json:"code"`
	ErrorSubcode   int         `json:"error_subcode,omitempty"`
	FBTraceID      string      `json:"fbtrace_id"`
	IsTransient    bool        `json:"is_transient,omitempty"`
	ErrorUserTitle string      `json:"error_user_title,omitempty"`
	ErrorData      interface{} `json:"error_data,omitempty"`
}

// IsTokenExpired verifica se o erro é de token expirado
func (e *ErrorResponse) IsTokenExpired() bool {
	// 190 = token inválido ou expirado; subcódigos 460, 463 e 467 também indicam sessão encerrada
	return e.Error.Code == 190 ||
		(e.Error.Type == "OAuthException" && (e.Error.ErrorSubcode == 460 || e.Error.ErrorSubcode == 463 || e.Error.ErrorSubcode == 467))
}

// códigos de erro temporário da Graph API (instabilidade e limites de chamada)
var transientCodes = map[int]struct{}{
	1:   {},
	2:   {},
	4:   {},
	17:  {},
	32:  {},
	341: {},
	613: {},
}

// RemoteRequestError é devolvido quando uma página da Graph API não pôde ser obtida ou lida
type RemoteRequestError struct {
	URL        string
	StatusCode int
	Code       int
	Subcode    int
	Message    string
	Transient  bool
	Err        error
}

func (e *RemoteRequestError) Error() string {
	switch {
	case e.Code != 0:
		return fmt.Sprintf("meta api request failed (status %d, code %d/%d): %s", e.StatusCode, e.Code, e.Subcode, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("meta api request failed (status %d): %s", e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("meta api request failed: %s", e.Message)
	}
}

func (e *RemoteRequestError) Unwrap() error {
	return e.Err
}

// Retryable indica se vale a pena repetir a requisição
func (e *RemoteRequestError) Retryable() bool {
	if e.Transient {
		return true
	}
	if _, ok := transientCodes[e.Code]; ok {
		return true
	}
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

// NewRemoteRequestError monta o erro a partir do corpo de erro da API, quando houver
func NewRemoteRequestError(url string, statusCode int, resp *ErrorResponse, fallbackMessage string) *RemoteRequestError {
	err := &RemoteRequestError{
		URL:        url,
		StatusCode: statusCode,
		Message:    fallbackMessage,
	}

	if resp != nil && resp.Error.Message != "" {
		err.Code = resp.Error.Code
		err.Subcode = resp.Error.ErrorSubcode
		err.Message = resp.Error.Message
		err.Transient = resp.Error.IsTransient
	}

	return err
}
