package http

import (
	"context"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-kit/kit/endpoint"
	kithttp "github.com/go-kit/kit/transport/http"
)

// MakeHandlerFunc adapts an endpoint to chi with the shared error encoder.
func MakeHandlerFunc(
	endpt endpoint.Endpoint,
	dec kithttp.DecodeRequestFunc,
	enc kithttp.EncodeResponseFunc,
) http.HandlerFunc {
	return kithttp.NewServer(
		endpt,
		dec,
		enc,
		kithttp.ServerErrorEncoder(ErrorResponse),
	).ServeHTTP
}

// DecodeRequest binds the request into a new *T through its render.Binder.
// The body is left to Bind; XML documents are read raw.
func DecodeRequest[T any, PT interface {
	*T
	render.Binder
}](_ context.Context, r *http.Request) (interface{}, error) {
	req := PT(new(T))

	if err := req.Bind(r); err != nil {
		return nil, err
	}

	return req, nil
}
